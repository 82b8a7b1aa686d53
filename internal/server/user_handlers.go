package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"alertdeck/internal/core"
	"alertdeck/internal/metrics"
	"alertdeck/pkg/models"
)

// User surface: visibility-filtered reads and preference mutations.

func (s *Server) handleAlertsForUser(c *fiber.Ctx) error {
	userID := models.UserID(c.Params("userID"))
	metrics.IncUserQuery()

	alerts, err := core.AlertsForUser(c.Context(), s.store, userID, time.Now())
	if err != nil {
		s.log.Error("failed to resolve alerts for user", "user_id", userID, "error", err)
		return SendErrorWithType(c, fiber.StatusInternalServerError, "Failed to retrieve alerts", models.GeneralErrorType)
	}
	return SendSuccess(c, fiber.StatusOK, alerts)
}

func (s *Server) handleAlertOverview(c *fiber.Ctx) error {
	userID := models.UserID(c.Params("userID"))
	metrics.IncUserQuery()

	overview, err := core.OverviewForUser(c.Context(), s.store, userID, time.Now())
	if err != nil {
		s.log.Error("failed to build alert overview", "user_id", userID, "error", err)
		return SendErrorWithType(c, fiber.StatusInternalServerError, "Failed to build alert overview", models.GeneralErrorType)
	}
	return SendSuccess(c, fiber.StatusOK, overview)
}

func (s *Server) handleMarkRead(c *fiber.Ctx) error {
	userID := models.UserID(c.Params("userID"))
	alertID := models.AlertID(c.Params("alertID"))

	req := models.MarkReadRequest{Read: true}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return SendErrorWithType(c, fiber.StatusBadRequest, "Invalid request body", models.ValidationErrorType)
		}
	}

	if _, err := core.GetAlert(c.Context(), s.store, alertID); err != nil {
		if errors.Is(err, core.ErrAlertNotFound) {
			return SendErrorWithType(c, fiber.StatusNotFound, "Alert not found", models.NotFoundErrorType)
		}
		s.log.Error("failed to get alert", "alert_id", alertID, "error", err)
		return SendErrorWithType(c, fiber.StatusInternalServerError, "Failed to retrieve alert", models.GeneralErrorType)
	}

	pref, err := core.MarkRead(c.Context(), s.store, s.log, userID, alertID, req.Read)
	if err != nil {
		s.log.Error("failed to update read state", "user_id", userID, "alert_id", alertID, "error", err)
		return SendErrorWithType(c, fiber.StatusInternalServerError, "Failed to update read state", models.GeneralErrorType)
	}
	return SendSuccess(c, fiber.StatusOK, pref)
}

func (s *Server) handleSnooze(c *fiber.Ctx) error {
	userID := models.UserID(c.Params("userID"))
	alertID := models.AlertID(c.Params("alertID"))

	if _, err := core.GetAlert(c.Context(), s.store, alertID); err != nil {
		if errors.Is(err, core.ErrAlertNotFound) {
			return SendErrorWithType(c, fiber.StatusNotFound, "Alert not found", models.NotFoundErrorType)
		}
		s.log.Error("failed to get alert", "alert_id", alertID, "error", err)
		return SendErrorWithType(c, fiber.StatusInternalServerError, "Failed to retrieve alert", models.GeneralErrorType)
	}

	pref, err := core.Snooze(c.Context(), s.store, s.log, userID, alertID, time.Now(), s.loc)
	if err != nil {
		s.log.Error("failed to snooze alert", "user_id", userID, "alert_id", alertID, "error", err)
		return SendErrorWithType(c, fiber.StatusInternalServerError, "Failed to snooze alert", models.GeneralErrorType)
	}
	return SendSuccess(c, fiber.StatusOK, pref)
}
