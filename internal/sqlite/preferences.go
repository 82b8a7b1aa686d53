package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"alertdeck/internal/core"
	"alertdeck/pkg/models"
)

const (
	selectPreferenceBase = `SELECT
    id,
    user_id,
    alert_id,
    is_read,
    snoozed_until,
    last_snoozed_day,
    created_at,
    updated_at
FROM user_alert_preferences`

	// The ON CONFLICT clause is what enforces the one-record-per-pair
	// invariant: concurrent writers for the same key collapse into a single
	// row, applied atomically on the serialized write connection.
	upsertPreferenceQuery = `INSERT INTO user_alert_preferences (
    id,
    user_id,
    alert_id,
    is_read,
    snoozed_until,
    last_snoozed_day
) VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (user_id, alert_id) DO UPDATE SET
    is_read = excluded.is_read,
    snoozed_until = excluded.snoozed_until,
    last_snoozed_day = excluded.last_snoozed_day,
    updated_at = datetime('now')
RETURNING id, created_at, updated_at`
)

// GetPreference retrieves the preference record for a (user, alert) pair.
// Returns core.ErrNotFound when the user has never interacted with the alert.
func (db *DB) GetPreference(ctx context.Context, userID models.UserID, alertID models.AlertID) (*models.UserAlertPreference, error) {
	row := db.readDB.QueryRowContext(ctx, selectPreferenceBase+" WHERE user_id = ? AND alert_id = ?", string(userID), string(alertID))
	return scanPreference(row)
}

// ListPreferences fetches all preference records for a user.
func (db *DB) ListPreferences(ctx context.Context, userID models.UserID) ([]*models.UserAlertPreference, error) {
	rows, err := db.readDB.QueryContext(ctx, selectPreferenceBase+" WHERE user_id = ?", string(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	defer rows.Close()

	var prefs []*models.UserAlertPreference
	for rows.Next() {
		pref, err := scanPreference(rows)
		if err != nil {
			return nil, err
		}
		prefs = append(prefs, pref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating preferences: %w", err)
	}
	return prefs, nil
}

// UpsertPreference writes the full preference record for its (user, alert)
// key in a single atomic statement. The row ID and timestamps are written
// back onto the model; on conflict the existing row's ID is kept.
func (db *DB) UpsertPreference(ctx context.Context, pref *models.UserAlertPreference) error {
	if pref == nil {
		return fmt.Errorf("preference payload is required")
	}

	var snoozedUntil sql.NullTime
	if pref.SnoozedUntil != nil {
		snoozedUntil = sql.NullTime{Time: pref.SnoozedUntil.UTC(), Valid: true}
	}
	var lastSnoozedDay sql.NullString
	if pref.LastSnoozedDay != "" {
		lastSnoozedDay = sql.NullString{String: pref.LastSnoozedDay, Valid: true}
	}

	row := db.writeDB.QueryRowContext(ctx, upsertPreferenceQuery,
		pref.ID,
		string(pref.UserID),
		string(pref.AlertID),
		boolToInt(pref.Read),
		snoozedUntil,
		lastSnoozedDay,
	)

	var (
		id                   string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &createdAt, &updatedAt); err != nil {
		return fmt.Errorf("failed to upsert preference: %w", err)
	}
	pref.ID = id
	pref.CreatedAt = createdAt
	pref.UpdatedAt = updatedAt
	return nil
}

func scanPreference(scanner interface{ Scan(dest ...any) error }) (*models.UserAlertPreference, error) {
	var (
		id             string
		userID         string
		alertID        string
		isRead         int64
		snoozedUntil   sql.NullTime
		lastSnoozedDay sql.NullString
		createdAt      time.Time
		updatedAt      time.Time
	)
	if err := scanner.Scan(&id, &userID, &alertID, &isRead, &snoozedUntil, &lastSnoozedDay, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan preference: %w", err)
	}

	pref := &models.UserAlertPreference{
		ID:             id,
		UserID:         models.UserID(userID),
		AlertID:        models.AlertID(alertID),
		Read:           isRead == 1,
		LastSnoozedDay: lastSnoozedDay.String,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
	if snoozedUntil.Valid {
		t := snoozedUntil.Time
		pref.SnoozedUntil = &t
	}
	return pref, nil
}
