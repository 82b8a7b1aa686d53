package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"alertdeck/pkg/models"
)

var validSeverities = map[models.AlertSeverity]struct{}{
	models.AlertSeverityInfo:     {},
	models.AlertSeverityWarning:  {},
	models.AlertSeverityCritical: {},
}

var validStatusFilters = map[models.StatusFilter]struct{}{
	models.StatusFilterActive:   {},
	models.StatusFilterExpired:  {},
	models.StatusFilterArchived: {},
}

var validAudienceFilters = map[models.AudienceFilter]struct{}{
	models.AudienceFilterOrg:  {},
	models.AudienceFilterTeam: {},
	models.AudienceFilterUser: {},
}

func validateAlertRequest(req *models.CreateAlertRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(req.Message) == "" {
		return fmt.Errorf("message is required")
	}
	if _, ok := validSeverities[req.Severity]; !ok {
		return fmt.Errorf("invalid severity %q", req.Severity)
	}
	if req.Visibility.Empty() {
		return fmt.Errorf("visibility must target the org, at least one team, or at least one user")
	}
	if !req.StartTime.Before(req.ExpiryTime) {
		return fmt.Errorf("expiry_time must be after start_time")
	}
	if req.ReminderEnabled && req.ReminderFrequencyMinutes <= 0 {
		return fmt.Errorf("reminder_frequency_minutes must be greater than zero")
	}
	return nil
}

// CreateAlert validates and persists a new alert. Validation happens before
// any mutation: no partial alert is ever stored.
func CreateAlert(ctx context.Context, store AlertStore, log *slog.Logger, req *models.CreateAlertRequest) (*models.Alert, error) {
	if req == nil {
		return nil, ErrInvalidAlertConfiguration
	}
	if err := validateAlertRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAlertConfiguration, err)
	}

	alert := &models.Alert{
		ID:                       models.AlertID(uuid.NewString()),
		Title:                    strings.TrimSpace(req.Title),
		Message:                  strings.TrimSpace(req.Message),
		Severity:                 req.Severity,
		Visibility:               req.Visibility,
		DeliveryTypes:            req.DeliveryTypes,
		ReminderEnabled:          req.ReminderEnabled,
		ReminderFrequencyMinutes: req.ReminderFrequencyMinutes,
		StartTime:                req.StartTime,
		ExpiryTime:               req.ExpiryTime,
		CreatedBy:                req.CreatedBy,
	}

	if err := store.InsertAlert(ctx, alert); err != nil {
		log.Error("failed to create alert", "title", alert.Title, "error", err)
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}
	log.Info("alert created", "alert_id", alert.ID, "severity", alert.Severity, "created_by", alert.CreatedBy)
	return alert, nil
}

// GetAlert retrieves a single alert by ID.
func GetAlert(ctx context.Context, store AlertStore, id models.AlertID) (*models.Alert, error) {
	alert, err := store.GetAlert(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return alert, nil
}

// UpdateAlert applies a partial update to an existing alert, including
// archived toggling. The resulting record is re-validated before the write.
func UpdateAlert(ctx context.Context, store AlertStore, log *slog.Logger, id models.AlertID, req *models.UpdateAlertRequest) (*models.Alert, error) {
	if req == nil {
		return nil, ErrInvalidAlertConfiguration
	}

	existing, err := store.GetAlert(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to load alert: %w", err)
	}

	if req.Title != nil {
		existing.Title = strings.TrimSpace(*req.Title)
	}
	if req.Message != nil {
		existing.Message = strings.TrimSpace(*req.Message)
	}
	if req.Severity != nil {
		existing.Severity = *req.Severity
	}
	if req.Visibility != nil {
		existing.Visibility = *req.Visibility
	}
	if req.DeliveryTypes != nil {
		existing.DeliveryTypes = *req.DeliveryTypes
	}
	if req.ReminderEnabled != nil {
		existing.ReminderEnabled = *req.ReminderEnabled
	}
	if req.ReminderFrequencyMinutes != nil {
		existing.ReminderFrequencyMinutes = *req.ReminderFrequencyMinutes
	}
	if req.StartTime != nil {
		existing.StartTime = *req.StartTime
	}
	if req.ExpiryTime != nil {
		existing.ExpiryTime = *req.ExpiryTime
	}
	if req.Archived != nil {
		existing.Archived = *req.Archived
	}

	check := models.CreateAlertRequest{
		Title:                    existing.Title,
		Message:                  existing.Message,
		Severity:                 existing.Severity,
		Visibility:               existing.Visibility,
		ReminderEnabled:          existing.ReminderEnabled,
		ReminderFrequencyMinutes: existing.ReminderFrequencyMinutes,
		StartTime:                existing.StartTime,
		ExpiryTime:               existing.ExpiryTime,
	}
	if err := validateAlertRequest(&check); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAlertConfiguration, err)
	}

	if err := store.UpdateAlert(ctx, existing); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrAlertNotFound
		}
		log.Error("failed to update alert", "alert_id", id, "error", err)
		return nil, fmt.Errorf("failed to update alert: %w", err)
	}
	log.Info("alert updated", "alert_id", id, "archived", existing.Archived)
	return existing, nil
}

// ArchiveAlert soft-archives an alert. Archived alerts stay in the store and
// keep their history; they are simply never shown to users again.
func ArchiveAlert(ctx context.Context, store AlertStore, log *slog.Logger, id models.AlertID) (*models.Alert, error) {
	archived := true
	return UpdateAlert(ctx, store, log, id, &models.UpdateAlertRequest{Archived: &archived})
}

// AlertsForUser returns the alerts a user may currently see: not archived,
// inside their active window at now, and addressed to the user. An unknown
// user yields an empty result, not an error. Results are ordered newest
// first by creation time.
func AlertsForUser(ctx context.Context, store Store, userID models.UserID, now time.Time) ([]*models.Alert, error) {
	user, err := store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []*models.Alert{}, nil
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	alerts, err := store.ListAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	visible := make([]*models.Alert, 0, len(alerts))
	for _, alert := range alerts {
		if !IsActionable(alert, now) {
			continue
		}
		if !IsVisible(alert, user) {
			continue
		}
		visible = append(visible, alert)
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})
	return visible, nil
}

// ListAlerts answers admin queries over the full alert set. Filters are
// conjunctive; a zero-valued dimension is unconstrained. Unrecognized filter
// values are rejected rather than silently ignored.
func ListAlerts(ctx context.Context, store AlertStore, filter models.AlertFilter, now time.Time) ([]*models.Alert, error) {
	if filter.Severity != "" {
		if _, ok := validSeverities[filter.Severity]; !ok {
			return nil, fmt.Errorf("%w: invalid severity filter %q", ErrInvalidAlertConfiguration, filter.Severity)
		}
	}
	if filter.Status != "" {
		if _, ok := validStatusFilters[filter.Status]; !ok {
			return nil, fmt.Errorf("%w: invalid status filter %q", ErrInvalidAlertConfiguration, filter.Status)
		}
	}
	if filter.Audience != "" {
		if _, ok := validAudienceFilters[filter.Audience]; !ok {
			return nil, fmt.Errorf("%w: invalid audience filter %q", ErrInvalidAlertConfiguration, filter.Audience)
		}
	}

	alerts, err := store.ListAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	filtered := make([]*models.Alert, 0, len(alerts))
	for _, alert := range alerts {
		if filter.Severity != "" && alert.Severity != filter.Severity {
			continue
		}
		if filter.Status != "" && !matchesStatusFilter(alert, filter.Status, now) {
			continue
		}
		if filter.Audience != "" && !matchesAudienceFilter(alert, filter.Audience) {
			continue
		}
		filtered = append(filtered, alert)
	}
	return filtered, nil
}

func matchesStatusFilter(alert *models.Alert, status models.StatusFilter, now time.Time) bool {
	c := Classify(alert, now)
	switch status {
	case models.StatusFilterActive:
		return !c.Archived && c.Status == models.AlertStatusActive
	case models.StatusFilterExpired:
		// Archived alerts are excluded here outright, not just window-filtered.
		return !c.Archived && c.Status == models.AlertStatusExpired
	case models.StatusFilterArchived:
		return c.Archived
	default:
		return false
	}
}

// Audience matching keeps the loose non-empty-list semantics of the original
// product: "team" means the alert targets some teams, however many.
func matchesAudienceFilter(alert *models.Alert, audience models.AudienceFilter) bool {
	switch audience {
	case models.AudienceFilterOrg:
		return alert.Visibility.Org
	case models.AudienceFilterTeam:
		return len(alert.Visibility.Teams) > 0
	case models.AudienceFilterUser:
		return len(alert.Visibility.Users) > 0
	default:
		return false
	}
}

// OverviewForUser derives the three dashboard views from the user's visible
// alerts and preference state. Active and Snoozed split on the snooze
// predicate; History holds visible alerts the user has marked read. The
// views deliberately overlap: a read alert can also be snoozed.
func OverviewForUser(ctx context.Context, store Store, userID models.UserID, now time.Time) (*models.AlertOverview, error) {
	visible, err := AlertsForUser(ctx, store, userID, now)
	if err != nil {
		return nil, err
	}

	prefs, err := store.ListPreferences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	byAlert := make(map[models.AlertID]*models.UserAlertPreference, len(prefs))
	for _, pref := range prefs {
		byAlert[pref.AlertID] = pref
	}

	overview := &models.AlertOverview{
		Active:  []*models.Alert{},
		Snoozed: []*models.Alert{},
		History: []*models.Alert{},
	}
	for _, alert := range visible {
		pref := byAlert[alert.ID]
		if IsSnoozed(pref, now) {
			overview.Snoozed = append(overview.Snoozed, alert)
		} else {
			overview.Active = append(overview.Active, alert)
		}
		if pref != nil && pref.Read {
			overview.History = append(overview.History, alert)
		}
	}
	return overview, nil
}

// ResolveRecipients enumerates the users an alert is addressed to, for
// delivery fan-out.
func ResolveRecipients(ctx context.Context, store IdentityStore, alert *models.Alert) ([]*models.User, error) {
	users, err := store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate delivery targets: %w", err)
	}
	recipients := make([]*models.User, 0, len(users))
	for _, user := range users {
		if IsVisible(alert, user) {
			recipients = append(recipients, user)
		}
	}
	return recipients, nil
}
