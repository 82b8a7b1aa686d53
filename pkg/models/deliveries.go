package models

import "time"

// DeliveryReceipt records one successful delivery of an alert to a user over
// a channel. Receipts are append-only; they back delivery-rate analytics.
type DeliveryReceipt struct {
	ID          string      `json:"id"`
	AlertID     AlertID     `json:"alert_id"`
	UserID      UserID      `json:"user_id"`
	Channel     ChannelType `json:"channel"`
	Delivered   bool        `json:"delivered"`
	DeliveredAt time.Time   `json:"delivered_at"`
}

// Analytics summarizes alert activity for the admin dashboard.
type Analytics struct {
	TotalAlertsCreated   int                   `json:"total_alerts_created"`
	AlertsActive         int                   `json:"alerts_active"`
	DeliveredCount       int                   `json:"delivered_count"`
	ReadCount            int                   `json:"read_count"`
	SnoozeCountsPerAlert map[AlertID]int       `json:"snooze_counts_per_alert"`
	SeverityBreakdown    map[AlertSeverity]int `json:"severity_breakdown"`
}
