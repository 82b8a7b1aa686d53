package models

import "time"

// UserAlertPreference tracks per-(user, alert) read and snooze state. At most
// one record exists per pair; the record is created lazily on the first
// preference-changing action and is never deleted.
type UserAlertPreference struct {
	ID             string     `json:"id"`
	AlertID        AlertID    `json:"alert_id"`
	UserID         UserID     `json:"user_id"`
	Read           bool       `json:"read"`
	SnoozedUntil   *time.Time `json:"snoozed_until"`
	LastSnoozedDay string     `json:"last_snoozed_day,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// PreferenceUpdate is a partial update applied to a preference record. Nil
// fields are left untouched.
type PreferenceUpdate struct {
	Read           *bool      `json:"read"`
	SnoozedUntil   *time.Time `json:"snoozed_until"`
	LastSnoozedDay *string    `json:"last_snoozed_day"`
}

// MarkReadRequest is the payload for toggling the read flag.
type MarkReadRequest struct {
	Read bool `json:"read"`
}
