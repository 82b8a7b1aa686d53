package core

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"alertdeck/pkg/models"
)

// memStore is an in-memory Store used by the engine tests.
type memStore struct {
	mu       sync.Mutex
	alerts   []*models.Alert
	prefs    map[string]*models.UserAlertPreference
	users    map[models.UserID]*models.User
	teams    []*models.Team
	receipts []*models.DeliveryReceipt

	now time.Time
}

func newMemStore() *memStore {
	return &memStore{
		prefs: make(map[string]*models.UserAlertPreference),
		users: make(map[models.UserID]*models.User),
		now:   time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}
}

func prefKey(userID models.UserID, alertID models.AlertID) string {
	return string(userID) + "/" + string(alertID)
}

func (m *memStore) InsertAlert(_ context.Context, alert *models.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *alert
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = m.now
		cp.UpdatedAt = m.now
		m.now = m.now.Add(time.Second)
	}
	m.alerts = append(m.alerts, &cp)
	alert.CreatedAt = cp.CreatedAt
	alert.UpdatedAt = cp.UpdatedAt
	return nil
}

func (m *memStore) UpdateAlert(_ context.Context, alert *models.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.alerts {
		if a.ID == alert.ID {
			cp := *alert
			cp.CreatedAt = a.CreatedAt
			m.alerts[i] = &cp
			return nil
		}
	}
	return ErrNotFound
}

func (m *memStore) GetAlert(_ context.Context, id models.AlertID) (*models.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.alerts {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) ListAlerts(_ context.Context) ([]*models.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Alert, 0, len(m.alerts))
	for _, a := range m.alerts {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memStore) GetPreference(_ context.Context, userID models.UserID, alertID models.AlertID) (*models.UserAlertPreference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pref, ok := m.prefs[prefKey(userID, alertID)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *pref
	return &cp, nil
}

func (m *memStore) ListPreferences(_ context.Context, userID models.UserID) ([]*models.UserAlertPreference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.UserAlertPreference
	for _, pref := range m.prefs {
		if pref.UserID == userID {
			cp := *pref
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memStore) UpsertPreference(_ context.Context, pref *models.UserAlertPreference) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *pref
	m.prefs[prefKey(pref.UserID, pref.AlertID)] = &cp
	return nil
}

func (m *memStore) GetUser(_ context.Context, id models.UserID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *memStore) ListUsers(_ context.Context) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.User, 0, len(m.users))
	for _, user := range m.users {
		cp := *user
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memStore) ListTeams(_ context.Context) ([]*models.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Team(nil), m.teams...), nil
}

func (m *memStore) InsertDeliveryReceipt(_ context.Context, receipt *models.DeliveryReceipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *receipt
	m.receipts = append(m.receipts, &cp)
	return nil
}

func (m *memStore) ListDeliveryReceipts(_ context.Context) ([]*models.DeliveryReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.DeliveryReceipt(nil), m.receipts...), nil
}

func (m *memStore) addUser(id models.UserID, teamID models.TeamID) *models.User {
	user := &models.User{ID: id, Name: string(id), TeamID: teamID, Role: models.UserRoleMember}
	m.users[id] = user
	return user
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
