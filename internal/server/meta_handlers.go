package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"alertdeck/internal/core"
	"alertdeck/internal/metrics"
	"alertdeck/pkg/models"
)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return SendSuccess(c, fiber.StatusOK, fiber.Map{"status": "ok"})
}

func (s *Server) handleMetrics(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	metrics.WritePrometheus(c.Response().BodyWriter())
	return nil
}

func (s *Server) handleListTeams(c *fiber.Ctx) error {
	teams, err := core.ListTeams(c.Context(), s.store)
	if err != nil {
		s.log.Error("failed to list teams", "error", err)
		return SendErrorWithType(c, fiber.StatusInternalServerError, "Failed to list teams", models.GeneralErrorType)
	}
	return SendSuccess(c, fiber.StatusOK, teams)
}

func (s *Server) handleListUsers(c *fiber.Ctx) error {
	users, err := core.ListUsers(c.Context(), s.store)
	if err != nil {
		s.log.Error("failed to list users", "error", err)
		return SendErrorWithType(c, fiber.StatusInternalServerError, "Failed to list users", models.GeneralErrorType)
	}
	return SendSuccess(c, fiber.StatusOK, users)
}

func (s *Server) handleGetUser(c *fiber.Ctx) error {
	userID := models.UserID(c.Params("userID"))

	user, err := core.GetUser(c.Context(), s.store, userID)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return SendErrorWithType(c, fiber.StatusNotFound, "User not found", models.NotFoundErrorType)
		}
		s.log.Error("failed to get user", "user_id", userID, "error", err)
		return SendErrorWithType(c, fiber.StatusInternalServerError, "Failed to retrieve user", models.GeneralErrorType)
	}
	return SendSuccess(c, fiber.StatusOK, user)
}

func (s *Server) handleAnalytics(c *fiber.Ctx) error {
	analytics, err := core.ComputeAnalytics(c.Context(), s.store, time.Now())
	if err != nil {
		s.log.Error("failed to compute analytics", "error", err)
		return SendErrorWithType(c, fiber.StatusInternalServerError, "Failed to compute analytics", models.GeneralErrorType)
	}
	return SendSuccess(c, fiber.StatusOK, analytics)
}
