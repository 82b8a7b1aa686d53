package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"alertdeck/internal/core"
	"alertdeck/internal/metrics"
	"alertdeck/pkg/models"
)

// Admin surface: create, update, archive, and filtered listing.

func (s *Server) handleListAlerts(c *fiber.Ctx) error {
	filter := models.AlertFilter{
		Severity: models.AlertSeverity(c.Query("severity")),
		Status:   models.StatusFilter(c.Query("status")),
		Audience: models.AudienceFilter(c.Query("audience")),
	}

	alerts, err := core.ListAlerts(c.Context(), s.store, filter, time.Now())
	if err != nil {
		if errors.Is(err, core.ErrInvalidAlertConfiguration) {
			return SendErrorWithType(c, fiber.StatusBadRequest, err.Error(), models.ValidationErrorType)
		}
		s.log.Error("failed to list alerts", "error", err)
		return SendErrorWithType(c, fiber.StatusInternalServerError, "Failed to list alerts", models.GeneralErrorType)
	}
	return SendSuccess(c, fiber.StatusOK, alerts)
}

func (s *Server) handleCreateAlert(c *fiber.Ctx) error {
	var req models.CreateAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return SendErrorWithType(c, fiber.StatusBadRequest, "Invalid request body", models.ValidationErrorType)
	}

	alert, err := core.CreateAlert(c.Context(), s.store, s.log, &req)
	if err != nil {
		if errors.Is(err, core.ErrInvalidAlertConfiguration) {
			return SendErrorWithType(c, fiber.StatusBadRequest, err.Error(), models.ValidationErrorType)
		}
		s.log.Error("failed to create alert", "error", err)
		return SendErrorWithType(c, fiber.StatusInternalServerError, "Failed to create alert", models.GeneralErrorType)
	}
	metrics.IncAlertCreated(string(alert.Severity))

	// Fan out to configured channels. Dispatch only fails when targets
	// cannot be enumerated; individual channel failures are reported in
	// the per-attempt results.
	recipients, err := core.ResolveRecipients(c.Context(), s.store, alert)
	if err != nil {
		s.log.Error("failed to resolve delivery targets", "alert_id", alert.ID, "error", err)
		return SendErrorWithType(c, fiber.StatusInternalServerError, "Alert created but delivery targets could not be enumerated", models.GeneralErrorType)
	}
	attempts := s.dispatcher.Dispatch(c.Context(), alert, recipients)

	return SendSuccess(c, fiber.StatusCreated, fiber.Map{
		"alert":    alert,
		"delivery": attempts,
	})
}

func (s *Server) handleGetAlert(c *fiber.Ctx) error {
	alertID := models.AlertID(c.Params("alertID"))

	alert, err := core.GetAlert(c.Context(), s.store, alertID)
	if err != nil {
		if errors.Is(err, core.ErrAlertNotFound) {
			return SendErrorWithType(c, fiber.StatusNotFound, "Alert not found", models.NotFoundErrorType)
		}
		s.log.Error("failed to get alert", "alert_id", alertID, "error", err)
		return SendErrorWithType(c, fiber.StatusInternalServerError, "Failed to retrieve alert", models.GeneralErrorType)
	}
	return SendSuccess(c, fiber.StatusOK, alert)
}

func (s *Server) handleUpdateAlert(c *fiber.Ctx) error {
	alertID := models.AlertID(c.Params("alertID"))

	var req models.UpdateAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return SendErrorWithType(c, fiber.StatusBadRequest, "Invalid request body", models.ValidationErrorType)
	}

	updated, err := core.UpdateAlert(c.Context(), s.store, s.log, alertID, &req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidAlertConfiguration):
			return SendErrorWithType(c, fiber.StatusBadRequest, err.Error(), models.ValidationErrorType)
		case errors.Is(err, core.ErrAlertNotFound):
			return SendErrorWithType(c, fiber.StatusNotFound, "Alert not found", models.NotFoundErrorType)
		default:
			s.log.Error("failed to update alert", "alert_id", alertID, "error", err)
			return SendErrorWithType(c, fiber.StatusInternalServerError, "Failed to update alert", models.GeneralErrorType)
		}
	}
	return SendSuccess(c, fiber.StatusOK, updated)
}

func (s *Server) handleArchiveAlert(c *fiber.Ctx) error {
	alertID := models.AlertID(c.Params("alertID"))

	archived, err := core.ArchiveAlert(c.Context(), s.store, s.log, alertID)
	if err != nil {
		if errors.Is(err, core.ErrAlertNotFound) {
			return SendErrorWithType(c, fiber.StatusNotFound, "Alert not found", models.NotFoundErrorType)
		}
		s.log.Error("failed to archive alert", "alert_id", alertID, "error", err)
		return SendErrorWithType(c, fiber.StatusInternalServerError, "Failed to archive alert", models.GeneralErrorType)
	}
	return SendSuccess(c, fiber.StatusOK, archived)
}
