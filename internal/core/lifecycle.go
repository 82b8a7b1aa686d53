package core

import (
	"time"

	"alertdeck/pkg/models"
)

// Classification is the temporal status of an alert at a point in time.
// Archived is carried alongside the status: an archived alert still reports
// its window-based status, and callers deciding whether a user should act on
// an alert must check both.
type Classification struct {
	Status   models.AlertStatus `json:"status"`
	Archived bool               `json:"archived"`
}

// Classify computes an alert's temporal status at the given instant. The
// active window is the closed interval [StartTime, ExpiryTime]: both
// boundaries count as active.
func Classify(alert *models.Alert, now time.Time) Classification {
	c := Classification{Archived: alert.Archived}
	switch {
	case now.Before(alert.StartTime):
		c.Status = models.AlertStatusPending
	case now.After(alert.ExpiryTime):
		c.Status = models.AlertStatusExpired
	default:
		c.Status = models.AlertStatusActive
	}
	return c
}

// IsActionable reports whether an alert is currently something a user should
// see and act on: inside its window and not archived.
func IsActionable(alert *models.Alert, now time.Time) bool {
	c := Classify(alert, now)
	return !c.Archived && c.Status == models.AlertStatusActive
}
