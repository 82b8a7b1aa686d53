package core

import "alertdeck/pkg/models"

// IsVisible reports whether an alert is addressed to a user. The targeting
// modes are a union: org-wide visibility wins unconditionally, otherwise the
// user's team or id must appear in the alert's target lists. A user with no
// team simply fails the team check.
func IsVisible(alert *models.Alert, user *models.User) bool {
	if alert == nil || user == nil {
		return false
	}
	if alert.Visibility.Org {
		return true
	}
	if user.TeamID != "" {
		for _, team := range alert.Visibility.Teams {
			if team == user.TeamID {
				return true
			}
		}
	}
	for _, id := range alert.Visibility.Users {
		if id == user.ID {
			return true
		}
	}
	return false
}
