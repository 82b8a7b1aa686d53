package models

import "time"

// AlertID uniquely identifies an alert. Assigned at creation, never reused.
type AlertID string

// AlertSeverity is a display-level severity indicator. The engine never
// orders or ranks alerts by severity.
type AlertSeverity string

const (
	AlertSeverityInfo     AlertSeverity = "Info"
	AlertSeverityWarning  AlertSeverity = "Warning"
	AlertSeverityCritical AlertSeverity = "Critical"
)

// AlertStatus captures the temporal state of an alert relative to its
// start/expiry window.
type AlertStatus string

const (
	AlertStatusPending AlertStatus = "pending"
	AlertStatusActive  AlertStatus = "active"
	AlertStatusExpired AlertStatus = "expired"
)

// ChannelType enumerates delivery channels an alert can be sent over.
type ChannelType string

const (
	ChannelInApp ChannelType = "inapp"
	ChannelEmail ChannelType = "email"
	ChannelSMS   ChannelType = "sms"
)

// Visibility describes who an alert is addressed to. The three targeting
// modes are a union: Org being true makes the alert visible to everyone
// regardless of the team and user lists.
type Visibility struct {
	Org   bool     `json:"org"`
	Teams []TeamID `json:"teams"`
	Users []UserID `json:"users"`
}

// Empty reports whether the visibility record targets nobody.
func (v Visibility) Empty() bool {
	return !v.Org && len(v.Teams) == 0 && len(v.Users) == 0
}

// Alert is an administrator-created notification with targeting rules and an
// active time window. Alerts are never physically deleted; Archived is a
// soft-delete flag independent of the time window.
type Alert struct {
	ID                       AlertID       `json:"id"`
	Title                    string        `json:"title"`
	Message                  string        `json:"message"`
	Severity                 AlertSeverity `json:"severity"`
	Visibility               Visibility    `json:"visibility"`
	DeliveryTypes            []ChannelType `json:"delivery_types"`
	ReminderEnabled          bool          `json:"reminder_enabled"`
	ReminderFrequencyMinutes int           `json:"reminder_frequency_minutes"`
	StartTime                time.Time     `json:"start_time"`
	ExpiryTime               time.Time     `json:"expiry_time"`
	Archived                 bool          `json:"archived"`
	CreatedBy                UserID        `json:"created_by"`
	CreatedAt                time.Time     `json:"created_at"`
	UpdatedAt                time.Time     `json:"updated_at"`
}

// CreateAlertRequest defines the payload required to create a new alert.
type CreateAlertRequest struct {
	Title                    string        `json:"title"`
	Message                  string        `json:"message"`
	Severity                 AlertSeverity `json:"severity"`
	Visibility               Visibility    `json:"visibility"`
	DeliveryTypes            []ChannelType `json:"delivery_types"`
	ReminderEnabled          bool          `json:"reminder_enabled"`
	ReminderFrequencyMinutes int           `json:"reminder_frequency_minutes"`
	StartTime                time.Time     `json:"start_time"`
	ExpiryTime               time.Time     `json:"expiry_time"`
	CreatedBy                UserID        `json:"created_by"`
}

// UpdateAlertRequest defines updatable fields for an alert. Nil fields are
// left untouched.
type UpdateAlertRequest struct {
	Title                    *string        `json:"title"`
	Message                  *string        `json:"message"`
	Severity                 *AlertSeverity `json:"severity"`
	Visibility               *Visibility    `json:"visibility"`
	DeliveryTypes            *[]ChannelType `json:"delivery_types"`
	ReminderEnabled          *bool          `json:"reminder_enabled"`
	ReminderFrequencyMinutes *int           `json:"reminder_frequency_minutes"`
	StartTime                *time.Time     `json:"start_time"`
	ExpiryTime               *time.Time     `json:"expiry_time"`
	Archived                 *bool          `json:"archived"`
}

// StatusFilter selects alerts by lifecycle state in admin queries. "active"
// and "expired" both exclude archived alerts; "archived" ignores the time
// window entirely.
type StatusFilter string

const (
	StatusFilterActive   StatusFilter = "active"
	StatusFilterExpired  StatusFilter = "expired"
	StatusFilterArchived StatusFilter = "archived"
)

// AudienceFilter selects alerts by targeting mode. "team" and "user" keep
// alerts whose respective list is non-empty.
type AudienceFilter string

const (
	AudienceFilterOrg  AudienceFilter = "org"
	AudienceFilterTeam AudienceFilter = "team"
	AudienceFilterUser AudienceFilter = "user"
)

// AlertFilter holds the recognized admin query dimensions. Zero values mean
// no constraint on that dimension; supplied dimensions are conjunctive.
type AlertFilter struct {
	Severity AlertSeverity  `json:"severity,omitempty"`
	Status   StatusFilter   `json:"status,omitempty"`
	Audience AudienceFilter `json:"audience,omitempty"`
}

// AlertOverview groups a user's visible alerts into the three derived views
// the dashboard renders. The views are independent: a read alert can appear
// in both Snoozed and History.
type AlertOverview struct {
	Active  []*Alert `json:"active"`
	Snoozed []*Alert `json:"snoozed"`
	History []*Alert `json:"history"`
}
