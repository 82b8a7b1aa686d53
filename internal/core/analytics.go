package core

import (
	"context"
	"fmt"
	"time"

	"alertdeck/pkg/models"
)

// ComputeAnalytics derives the admin dashboard summary from the store. It is
// read-only; presentation of the numbers is the caller's concern.
func ComputeAnalytics(ctx context.Context, store Store, now time.Time) (*models.Analytics, error) {
	alerts, err := store.ListAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	analytics := &models.Analytics{
		TotalAlertsCreated:   len(alerts),
		SnoozeCountsPerAlert: make(map[models.AlertID]int),
		SeverityBreakdown: map[models.AlertSeverity]int{
			models.AlertSeverityInfo:     0,
			models.AlertSeverityWarning:  0,
			models.AlertSeverityCritical: 0,
		},
	}
	for _, alert := range alerts {
		analytics.SeverityBreakdown[alert.Severity]++
		if IsActionable(alert, now) {
			analytics.AlertsActive++
		}
	}

	receipts, err := store.ListDeliveryReceipts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery receipts: %w", err)
	}
	for _, receipt := range receipts {
		if receipt.Delivered {
			analytics.DeliveredCount++
		}
	}

	users, err := store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for _, user := range users {
		prefs, err := store.ListPreferences(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list preferences: %w", err)
		}
		for _, pref := range prefs {
			if pref.Read {
				analytics.ReadCount++
			}
			if pref.LastSnoozedDay != "" {
				analytics.SnoozeCountsPerAlert[pref.AlertID]++
			}
		}
	}
	return analytics, nil
}
