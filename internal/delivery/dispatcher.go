package delivery

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"alertdeck/internal/metrics"
	"alertdeck/pkg/models"
)

// Attempt is the observable outcome of one (channel, user) delivery pair.
type Attempt struct {
	AlertID   models.AlertID     `json:"alert_id"`
	UserID    models.UserID      `json:"user_id"`
	Channel   models.ChannelType `json:"channel"`
	Delivered bool               `json:"delivered"`
	Error     string             `json:"error,omitempty"`
}

// Dispatcher owns the channel-strategy registry and performs fan-out.
type Dispatcher struct {
	mu         sync.RWMutex
	strategies map[models.ChannelType]Strategy
	log        *slog.Logger
}

// NewDispatcher builds a dispatcher with the given strategies registered.
func NewDispatcher(log *slog.Logger, strategies ...Strategy) *Dispatcher {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	d := &Dispatcher{
		strategies: make(map[models.ChannelType]Strategy),
		log:        log.With("component", "dispatcher"),
	}
	for _, s := range strategies {
		d.Register(s)
	}
	return d
}

// Register adds or replaces the strategy for a channel. Adding a channel is
// an addition here, never an edit to existing strategies.
func (d *Dispatcher) Register(s Strategy) {
	if s == nil {
		return
	}
	d.mu.Lock()
	d.strategies[s.Channel()] = s
	d.mu.Unlock()
}

// Dispatch delivers an alert to every (channel, user) pair where the channel
// is both configured on the alert and registered. Pairs run concurrently
// with no ordering guarantee; each attempt's outcome is reported
// individually, and a failing pair never aborts or masks the others.
func (d *Dispatcher) Dispatch(ctx context.Context, alert *models.Alert, users []*models.User) []Attempt {
	d.mu.RLock()
	var active []Strategy
	for _, channel := range alert.DeliveryTypes {
		if s, ok := d.strategies[channel]; ok {
			active = append(active, s)
		} else {
			d.log.Warn("no strategy registered for channel", "channel", channel, "alert_id", alert.ID)
		}
	}
	d.mu.RUnlock()

	attempts := make([]Attempt, len(active)*len(users))
	var wg sync.WaitGroup
	i := 0
	for _, s := range active {
		for _, user := range users {
			wg.Add(1)
			go func(idx int, s Strategy, user *models.User) {
				defer wg.Done()
				channel := s.Channel()
				metrics.IncDeliveryAttempt(string(channel))
				attempt := Attempt{
					AlertID: alert.ID,
					UserID:  user.ID,
					Channel: channel,
				}
				if err := s.Deliver(ctx, alert, user); err != nil {
					attempt.Error = err.Error()
					metrics.IncDeliveryFailure(string(channel))
					d.log.Warn("delivery attempt failed",
						"alert_id", alert.ID, "user_id", user.ID, "channel", channel, "error", err)
				} else {
					attempt.Delivered = true
					metrics.IncDeliverySuccess(string(channel))
				}
				attempts[idx] = attempt
			}(i, s, user)
			i++
		}
	}
	wg.Wait()
	return attempts
}
