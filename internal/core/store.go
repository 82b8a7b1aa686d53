package core

import (
	"context"

	"alertdeck/pkg/models"
)

// AlertStore is the durable-store contract for alert records. Alerts are only
// ever inserted or updated in place; archival is an update, never a delete.
type AlertStore interface {
	InsertAlert(ctx context.Context, alert *models.Alert) error
	UpdateAlert(ctx context.Context, alert *models.Alert) error
	GetAlert(ctx context.Context, id models.AlertID) (*models.Alert, error)
	ListAlerts(ctx context.Context) ([]*models.Alert, error)
}

// PreferenceStore is the durable-store contract for per-(user, alert)
// preference records. UpsertPreference must be an atomic write for its
// (user, alert) key so that two near-simultaneous calls cannot interleave
// partial field writes.
type PreferenceStore interface {
	GetPreference(ctx context.Context, userID models.UserID, alertID models.AlertID) (*models.UserAlertPreference, error)
	ListPreferences(ctx context.Context, userID models.UserID) ([]*models.UserAlertPreference, error)
	UpsertPreference(ctx context.Context, pref *models.UserAlertPreference) error
}

// IdentityStore exposes the read-only user and team directories owned by the
// identity collaborator.
type IdentityStore interface {
	GetUser(ctx context.Context, id models.UserID) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	ListTeams(ctx context.Context) ([]*models.Team, error)
}

// DeliveryStore records delivery receipts. Receipts are append-only.
type DeliveryStore interface {
	InsertDeliveryReceipt(ctx context.Context, receipt *models.DeliveryReceipt) error
	ListDeliveryReceipts(ctx context.Context) ([]*models.DeliveryReceipt, error)
}

// Store is the full durable-store surface the engine depends on. Production
// uses the sqlite implementation; tests inject an in-memory one.
type Store interface {
	AlertStore
	PreferenceStore
	IdentityStore
	DeliveryStore
}
