// Package delivery fans a newly created alert out to its configured
// channels. Each channel is a Strategy; new channels are registered, never
// wired into existing code.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"alertdeck/internal/core"
	"alertdeck/pkg/models"
)

// ErrChannelNotImplemented marks channels that are declared but have no
// working transport yet.
var ErrChannelNotImplemented = errors.New("delivery channel not implemented")

// Strategy delivers one alert to one user over a single channel.
type Strategy interface {
	Channel() models.ChannelType
	Deliver(ctx context.Context, alert *models.Alert, user *models.User) error
}

// InAppStrategy records a delivery receipt in the durable store. The receipt
// is append-only and backs delivery-rate analytics.
type InAppStrategy struct {
	store core.DeliveryStore
	log   *slog.Logger
}

// NewInAppStrategy returns the in-app channel strategy.
func NewInAppStrategy(store core.DeliveryStore, log *slog.Logger) *InAppStrategy {
	return &InAppStrategy{store: store, log: log.With("channel", models.ChannelInApp)}
}

func (s *InAppStrategy) Channel() models.ChannelType { return models.ChannelInApp }

func (s *InAppStrategy) Deliver(ctx context.Context, alert *models.Alert, user *models.User) error {
	receipt := &models.DeliveryReceipt{
		ID:          uuid.NewString(),
		AlertID:     alert.ID,
		UserID:      user.ID,
		Channel:     models.ChannelInApp,
		Delivered:   true,
		DeliveredAt: time.Now().UTC(),
	}
	if err := s.store.InsertDeliveryReceipt(ctx, receipt); err != nil {
		return fmt.Errorf("failed to record delivery receipt: %w", err)
	}
	s.log.Debug("in-app delivery recorded", "alert_id", alert.ID, "user_id", user.ID)
	return nil
}

// EmailStrategy is declared but intentionally unimplemented.
type EmailStrategy struct{}

func NewEmailStrategy() *EmailStrategy { return &EmailStrategy{} }

func (s *EmailStrategy) Channel() models.ChannelType { return models.ChannelEmail }

func (s *EmailStrategy) Deliver(ctx context.Context, alert *models.Alert, user *models.User) error {
	return fmt.Errorf("%w: email", ErrChannelNotImplemented)
}

// SMSStrategy is declared but intentionally unimplemented.
type SMSStrategy struct{}

func NewSMSStrategy() *SMSStrategy { return &SMSStrategy{} }

func (s *SMSStrategy) Channel() models.ChannelType { return models.ChannelSMS }

func (s *SMSStrategy) Deliver(ctx context.Context, alert *models.Alert, user *models.User) error {
	return fmt.Errorf("%w: sms", ErrChannelNotImplemented)
}
