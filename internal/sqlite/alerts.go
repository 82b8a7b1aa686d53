package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"alertdeck/internal/core"
	"alertdeck/pkg/models"
)

const (
	insertAlertQuery = `INSERT INTO alerts (
    id,
    title,
    message,
    severity,
    visibility_org,
    visibility_teams,
    visibility_users,
    delivery_types,
    reminder_enabled,
    reminder_frequency_minutes,
    start_time,
    expiry_time,
    archived,
    created_by
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING created_at, updated_at`

	selectAlertBase = `SELECT
    id,
    title,
    message,
    severity,
    visibility_org,
    visibility_teams,
    visibility_users,
    delivery_types,
    reminder_enabled,
    reminder_frequency_minutes,
    start_time,
    expiry_time,
    archived,
    created_by,
    created_at,
    updated_at
FROM alerts`

	updateAlertQuery = `UPDATE alerts
SET title = ?,
    message = ?,
    severity = ?,
    visibility_org = ?,
    visibility_teams = ?,
    visibility_users = ?,
    delivery_types = ?,
    reminder_enabled = ?,
    reminder_frequency_minutes = ?,
    start_time = ?,
    expiry_time = ?,
    archived = ?,
    updated_at = datetime('now')
WHERE id = ?`
)

// InsertAlert persists a new alert record. The store assigns the creation
// and update timestamps and writes them back onto the model.
func (db *DB) InsertAlert(ctx context.Context, alert *models.Alert) error {
	if alert == nil {
		return fmt.Errorf("alert payload is required")
	}

	teamsJSON, usersJSON, channelsJSON, err := marshalAlertLists(alert)
	if err != nil {
		return err
	}

	row := db.writeDB.QueryRowContext(ctx, insertAlertQuery,
		string(alert.ID),
		alert.Title,
		alert.Message,
		string(alert.Severity),
		boolToInt(alert.Visibility.Org),
		teamsJSON,
		usersJSON,
		channelsJSON,
		boolToInt(alert.ReminderEnabled),
		alert.ReminderFrequencyMinutes,
		alert.StartTime.UTC(),
		alert.ExpiryTime.UTC(),
		boolToInt(alert.Archived),
		string(alert.CreatedBy),
	)

	var createdAt, updatedAt time.Time
	if err := row.Scan(&createdAt, &updatedAt); err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}
	alert.CreatedAt = createdAt
	alert.UpdatedAt = updatedAt
	return nil
}

// UpdateAlert persists changes to an existing alert record.
func (db *DB) UpdateAlert(ctx context.Context, alert *models.Alert) error {
	if alert == nil {
		return fmt.Errorf("alert payload is required")
	}

	teamsJSON, usersJSON, channelsJSON, err := marshalAlertLists(alert)
	if err != nil {
		return err
	}

	res, err := db.writeDB.ExecContext(ctx, updateAlertQuery,
		alert.Title,
		alert.Message,
		string(alert.Severity),
		boolToInt(alert.Visibility.Org),
		teamsJSON,
		usersJSON,
		channelsJSON,
		boolToInt(alert.ReminderEnabled),
		alert.ReminderFrequencyMinutes,
		alert.StartTime.UTC(),
		alert.ExpiryTime.UTC(),
		boolToInt(alert.Archived),
		string(alert.ID),
	)
	if err != nil {
		return fmt.Errorf("failed to update alert: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return core.ErrNotFound
	}
	return nil
}

// GetAlert retrieves an alert by its identifier.
func (db *DB) GetAlert(ctx context.Context, id models.AlertID) (*models.Alert, error) {
	row := db.readDB.QueryRowContext(ctx, selectAlertBase+" WHERE id = ?", string(id))
	return scanAlert(row)
}

// ListAlerts fetches every alert record, newest first.
func (db *DB) ListAlerts(ctx context.Context) ([]*models.Alert, error) {
	rows, err := db.readDB.QueryContext(ctx, selectAlertBase+" ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*models.Alert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alerts: %w", err)
	}
	return alerts, nil
}

func marshalAlertLists(alert *models.Alert) (teams, users, channels string, err error) {
	teamsJSON, err := json.Marshal(emptyIfNilTeams(alert.Visibility.Teams))
	if err != nil {
		return "", "", "", fmt.Errorf("failed to marshal visibility teams: %w", err)
	}
	usersJSON, err := json.Marshal(emptyIfNilUsers(alert.Visibility.Users))
	if err != nil {
		return "", "", "", fmt.Errorf("failed to marshal visibility users: %w", err)
	}
	channelsJSON, err := json.Marshal(emptyIfNilChannels(alert.DeliveryTypes))
	if err != nil {
		return "", "", "", fmt.Errorf("failed to marshal delivery types: %w", err)
	}
	return string(teamsJSON), string(usersJSON), string(channelsJSON), nil
}

func emptyIfNilTeams(v []models.TeamID) []models.TeamID {
	if v == nil {
		return []models.TeamID{}
	}
	return v
}

func emptyIfNilUsers(v []models.UserID) []models.UserID {
	if v == nil {
		return []models.UserID{}
	}
	return v
}

func emptyIfNilChannels(v []models.ChannelType) []models.ChannelType {
	if v == nil {
		return []models.ChannelType{}
	}
	return v
}

func scanAlert(scanner interface{ Scan(dest ...any) error }) (*models.Alert, error) {
	var (
		id                       string
		title                    string
		message                  string
		severity                 string
		visibilityOrg            int64
		teamsJSON                string
		usersJSON                string
		channelsJSON             string
		reminderEnabled          int64
		reminderFrequencyMinutes int
		startTime                time.Time
		expiryTime               time.Time
		archived                 int64
		createdBy                string
		createdAt                time.Time
		updatedAt                time.Time
	)
	if err := scanner.Scan(&id, &title, &message, &severity, &visibilityOrg, &teamsJSON, &usersJSON, &channelsJSON, &reminderEnabled, &reminderFrequencyMinutes, &startTime, &expiryTime, &archived, &createdBy, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan alert: %w", err)
	}

	var teams []models.TeamID
	if err := json.Unmarshal([]byte(teamsJSON), &teams); err != nil {
		return nil, fmt.Errorf("failed to unmarshal visibility teams: %w", err)
	}
	var users []models.UserID
	if err := json.Unmarshal([]byte(usersJSON), &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal visibility users: %w", err)
	}
	var channels []models.ChannelType
	if err := json.Unmarshal([]byte(channelsJSON), &channels); err != nil {
		return nil, fmt.Errorf("failed to unmarshal delivery types: %w", err)
	}

	return &models.Alert{
		ID:       models.AlertID(id),
		Title:    title,
		Message:  message,
		Severity: models.AlertSeverity(severity),
		Visibility: models.Visibility{
			Org:   visibilityOrg == 1,
			Teams: teams,
			Users: users,
		},
		DeliveryTypes:            channels,
		ReminderEnabled:          reminderEnabled == 1,
		ReminderFrequencyMinutes: reminderFrequencyMinutes,
		StartTime:                startTime,
		ExpiryTime:               expiryTime,
		Archived:                 archived == 1,
		CreatedBy:                models.UserID(createdBy),
		CreatedAt:                createdAt,
		UpdatedAt:                updatedAt,
	}, nil
}
