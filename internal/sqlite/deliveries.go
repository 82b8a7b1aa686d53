package sqlite

import (
	"context"
	"fmt"
	"time"

	"alertdeck/pkg/models"
)

const (
	// Receipts are append-only: there is intentionally no update statement
	// for this table.
	insertDeliveryQuery = `INSERT INTO notification_deliveries (
    id,
    alert_id,
    user_id,
    channel,
    delivered,
    delivered_at
) VALUES (?, ?, ?, ?, ?, ?)`

	selectDeliveryBase = `SELECT
    id,
    alert_id,
    user_id,
    channel,
    delivered,
    delivered_at
FROM notification_deliveries`
)

// InsertDeliveryReceipt appends a delivery receipt.
func (db *DB) InsertDeliveryReceipt(ctx context.Context, receipt *models.DeliveryReceipt) error {
	if receipt == nil {
		return fmt.Errorf("receipt payload is required")
	}
	deliveredAt := receipt.DeliveredAt
	if deliveredAt.IsZero() {
		deliveredAt = time.Now().UTC()
	}
	if _, err := db.writeDB.ExecContext(ctx, insertDeliveryQuery,
		receipt.ID,
		string(receipt.AlertID),
		string(receipt.UserID),
		string(receipt.Channel),
		boolToInt(receipt.Delivered),
		deliveredAt.UTC(),
	); err != nil {
		return fmt.Errorf("failed to insert delivery receipt: %w", err)
	}
	return nil
}

// ListDeliveryReceipts fetches every delivery receipt.
func (db *DB) ListDeliveryReceipts(ctx context.Context) ([]*models.DeliveryReceipt, error) {
	rows, err := db.readDB.QueryContext(ctx, selectDeliveryBase+" ORDER BY delivered_at")
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*models.DeliveryReceipt
	for rows.Next() {
		var (
			id          string
			alertID     string
			userID      string
			channel     string
			delivered   int64
			deliveredAt time.Time
		)
		if err := rows.Scan(&id, &alertID, &userID, &channel, &delivered, &deliveredAt); err != nil {
			return nil, fmt.Errorf("failed to scan delivery receipt: %w", err)
		}
		receipts = append(receipts, &models.DeliveryReceipt{
			ID:          id,
			AlertID:     models.AlertID(alertID),
			UserID:      models.UserID(userID),
			Channel:     models.ChannelType(channel),
			Delivered:   delivered == 1,
			DeliveredAt: deliveredAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating delivery receipts: %w", err)
	}
	return receipts, nil
}
