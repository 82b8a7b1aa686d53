package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"alertdeck/pkg/models"
)

const snoozeDayFormat = "2006-01-02"

// GetPreference returns the stored preference for a (user, alert) pair, or
// ErrNotFound when the user has never interacted with the alert.
func GetPreference(ctx context.Context, store PreferenceStore, userID models.UserID, alertID models.AlertID) (*models.UserAlertPreference, error) {
	pref, err := store.GetPreference(ctx, userID, alertID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get preference: %w", err)
	}
	return pref, nil
}

// ListPreferences returns all preference records for a user.
func ListPreferences(ctx context.Context, store PreferenceStore, userID models.UserID) ([]*models.UserAlertPreference, error) {
	prefs, err := store.ListPreferences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	return prefs, nil
}

// UpsertPreference applies a partial update to the preference record for a
// (user, alert) pair, creating the record with defaults first if the user has
// never interacted with the alert. The store write is a single atomic upsert
// keyed on the pair, so at most one record ever exists per pair.
func UpsertPreference(ctx context.Context, store PreferenceStore, userID models.UserID, alertID models.AlertID, update models.PreferenceUpdate) (*models.UserAlertPreference, error) {
	pref, err := store.GetPreference(ctx, userID, alertID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("failed to load preference: %w", err)
		}
		pref = &models.UserAlertPreference{
			ID:      uuid.NewString(),
			AlertID: alertID,
			UserID:  userID,
		}
	}

	if update.Read != nil {
		pref.Read = *update.Read
	}
	if update.SnoozedUntil != nil {
		until := *update.SnoozedUntil
		pref.SnoozedUntil = &until
	}
	if update.LastSnoozedDay != nil {
		pref.LastSnoozedDay = *update.LastSnoozedDay
	}

	if err := store.UpsertPreference(ctx, pref); err != nil {
		return nil, fmt.Errorf("failed to upsert preference: %w", err)
	}
	return pref, nil
}

// Snooze suppresses an alert for the user until the end of the calendar day
// containing now, evaluated in loc. Snoozing is idempotent per day: a second
// snooze on the same day yields the same SnoozedUntil.
func Snooze(ctx context.Context, store PreferenceStore, log *slog.Logger, userID models.UserID, alertID models.AlertID, now time.Time, loc *time.Location) (*models.UserAlertPreference, error) {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	endOfDay := time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
	day := local.Format(snoozeDayFormat)

	pref, err := UpsertPreference(ctx, store, userID, alertID, models.PreferenceUpdate{
		SnoozedUntil:   &endOfDay,
		LastSnoozedDay: &day,
	})
	if err != nil {
		return nil, err
	}
	log.Info("alert snoozed", "user_id", userID, "alert_id", alertID, "snoozed_until", endOfDay)
	return pref, nil
}

// MarkRead sets the read flag for a (user, alert) pair. Snooze fields are
// never touched; the latest call always wins.
func MarkRead(ctx context.Context, store PreferenceStore, log *slog.Logger, userID models.UserID, alertID models.AlertID, read bool) (*models.UserAlertPreference, error) {
	pref, err := UpsertPreference(ctx, store, userID, alertID, models.PreferenceUpdate{Read: &read})
	if err != nil {
		return nil, err
	}
	log.Info("alert read flag updated", "user_id", userID, "alert_id", alertID, "read", read)
	return pref, nil
}

// IsSnoozed reports whether a preference currently suppresses its alert.
// SnoozedUntil, not LastSnoozedDay, is authoritative; a nil preference is
// never snoozed.
func IsSnoozed(pref *models.UserAlertPreference, now time.Time) bool {
	return pref != nil && pref.SnoozedUntil != nil && pref.SnoozedUntil.After(now)
}
