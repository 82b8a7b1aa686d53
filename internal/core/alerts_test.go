package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"alertdeck/pkg/models"
)

func validCreateRequest() *models.CreateAlertRequest {
	return &models.CreateAlertRequest{
		Title:         "Maintenance window",
		Message:       "The API will be degraded tonight.",
		Severity:      models.AlertSeverityWarning,
		Visibility:    models.Visibility{Org: true},
		DeliveryTypes: []models.ChannelType{models.ChannelInApp},
		StartTime:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		ExpiryTime:    time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		CreatedBy:     "admin",
	}
}

func TestCreateAlertValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CreateAlertRequest)
	}{
		{"empty title", func(r *models.CreateAlertRequest) { r.Title = "   " }},
		{"empty message", func(r *models.CreateAlertRequest) { r.Message = "" }},
		{"unknown severity", func(r *models.CreateAlertRequest) { r.Severity = "Fatal" }},
		{"empty visibility", func(r *models.CreateAlertRequest) { r.Visibility = models.Visibility{} }},
		{"expiry before start", func(r *models.CreateAlertRequest) {
			r.ExpiryTime = r.StartTime.Add(-time.Hour)
		}},
		{"expiry equals start", func(r *models.CreateAlertRequest) { r.ExpiryTime = r.StartTime }},
		{"reminder enabled without frequency", func(r *models.CreateAlertRequest) {
			r.ReminderEnabled = true
			r.ReminderFrequencyMinutes = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			req := validCreateRequest()
			tt.mutate(req)

			_, err := CreateAlert(context.Background(), store, testLogger(), req)
			if !errors.Is(err, ErrInvalidAlertConfiguration) {
				t.Errorf("CreateAlert() error = %v, want ErrInvalidAlertConfiguration", err)
			}
			if len(store.alerts) != 0 {
				t.Error("invalid request reached the store")
			}
		})
	}
}

func TestCreateAlert(t *testing.T) {
	store := newMemStore()
	req := validCreateRequest()
	req.Title = "  Maintenance window  "

	alert, err := CreateAlert(context.Background(), store, testLogger(), req)
	if err != nil {
		t.Fatalf("CreateAlert() error = %v", err)
	}
	if alert.ID == "" {
		t.Error("alert ID not assigned")
	}
	if alert.Title != "Maintenance window" {
		t.Errorf("Title = %q, want trimmed title", alert.Title)
	}
	if alert.Archived {
		t.Error("new alert is archived")
	}

	stored, err := GetAlert(context.Background(), store, alert.ID)
	if err != nil {
		t.Fatalf("GetAlert() error = %v", err)
	}
	if stored.Title != alert.Title {
		t.Errorf("stored Title = %q, want %q", stored.Title, alert.Title)
	}
}

func TestGetAlertNotFound(t *testing.T) {
	store := newMemStore()
	if _, err := GetAlert(context.Background(), store, "missing"); !errors.Is(err, ErrAlertNotFound) {
		t.Errorf("GetAlert() error = %v, want ErrAlertNotFound", err)
	}
}

func TestUpdateAlert(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	alert, err := CreateAlert(ctx, store, testLogger(), validCreateRequest())
	if err != nil {
		t.Fatalf("CreateAlert() error = %v", err)
	}

	newTitle := "Extended maintenance"
	newSeverity := models.AlertSeverityCritical
	updated, err := UpdateAlert(ctx, store, testLogger(), alert.ID, &models.UpdateAlertRequest{
		Title:    &newTitle,
		Severity: &newSeverity,
	})
	if err != nil {
		t.Fatalf("UpdateAlert() error = %v", err)
	}
	if updated.Title != newTitle {
		t.Errorf("Title = %q, want %q", updated.Title, newTitle)
	}
	if updated.Severity != newSeverity {
		t.Errorf("Severity = %v, want %v", updated.Severity, newSeverity)
	}
	// Untouched fields survive.
	if updated.Message != alert.Message {
		t.Errorf("Message changed: %q", updated.Message)
	}
	if !updated.ExpiryTime.Equal(alert.ExpiryTime) {
		t.Errorf("ExpiryTime changed: %v", updated.ExpiryTime)
	}
}

func TestUpdateAlertRejectsInvalidResult(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	alert, err := CreateAlert(ctx, store, testLogger(), validCreateRequest())
	if err != nil {
		t.Fatalf("CreateAlert() error = %v", err)
	}

	badExpiry := alert.StartTime.Add(-time.Hour)
	_, err = UpdateAlert(ctx, store, testLogger(), alert.ID, &models.UpdateAlertRequest{
		ExpiryTime: &badExpiry,
	})
	if !errors.Is(err, ErrInvalidAlertConfiguration) {
		t.Errorf("UpdateAlert() error = %v, want ErrInvalidAlertConfiguration", err)
	}

	stored, err := GetAlert(ctx, store, alert.ID)
	if err != nil {
		t.Fatalf("GetAlert() error = %v", err)
	}
	if !stored.ExpiryTime.Equal(alert.ExpiryTime) {
		t.Error("rejected update still mutated the stored alert")
	}
}

func TestUpdateAlertNotFound(t *testing.T) {
	store := newMemStore()
	title := "x"
	_, err := UpdateAlert(context.Background(), store, testLogger(), "missing", &models.UpdateAlertRequest{Title: &title})
	if !errors.Is(err, ErrAlertNotFound) {
		t.Errorf("UpdateAlert() error = %v, want ErrAlertNotFound", err)
	}
}

func TestArchiveAlert(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	store.addUser("u1", "")

	alert, err := CreateAlert(ctx, store, testLogger(), validCreateRequest())
	if err != nil {
		t.Fatalf("CreateAlert() error = %v", err)
	}

	now := alert.StartTime.Add(time.Hour)
	before, err := AlertsForUser(ctx, store, "u1", now)
	if err != nil {
		t.Fatalf("AlertsForUser() error = %v", err)
	}
	if len(before) != 1 {
		t.Fatalf("alerts before archive = %d, want 1", len(before))
	}

	archived, err := ArchiveAlert(ctx, store, testLogger(), alert.ID)
	if err != nil {
		t.Fatalf("ArchiveAlert() error = %v", err)
	}
	if !archived.Archived {
		t.Error("Archived = false after archiving")
	}

	after, err := AlertsForUser(ctx, store, "u1", now)
	if err != nil {
		t.Fatalf("AlertsForUser() error = %v", err)
	}
	if len(after) != 0 {
		t.Errorf("alerts after archive = %d, want 0", len(after))
	}

	// The record itself survives archival.
	if _, err := GetAlert(ctx, store, alert.ID); err != nil {
		t.Errorf("GetAlert() after archive error = %v", err)
	}
}

func TestAlertsForUser(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	store.addUser("u1", "t1")
	store.addUser("u2", "t2")
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	mustCreate := func(mutate func(*models.CreateAlertRequest)) *models.Alert {
		t.Helper()
		req := validCreateRequest()
		mutate(req)
		alert, err := CreateAlert(ctx, store, testLogger(), req)
		if err != nil {
			t.Fatalf("CreateAlert() error = %v", err)
		}
		return alert
	}

	orgWide := mustCreate(func(r *models.CreateAlertRequest) { r.Title = "org wide" })
	teamOnly := mustCreate(func(r *models.CreateAlertRequest) {
		r.Title = "team t1"
		r.Visibility = models.Visibility{Teams: []models.TeamID{"t1"}}
	})
	mustCreate(func(r *models.CreateAlertRequest) {
		r.Title = "other team"
		r.Visibility = models.Visibility{Teams: []models.TeamID{"t2"}}
	})
	mustCreate(func(r *models.CreateAlertRequest) {
		r.Title = "not started"
		r.StartTime = now.Add(time.Hour)
		r.ExpiryTime = now.Add(48 * time.Hour)
	})
	mustCreate(func(r *models.CreateAlertRequest) {
		r.Title = "expired"
		r.StartTime = now.Add(-48 * time.Hour)
		r.ExpiryTime = now.Add(-time.Hour)
	})

	alerts, err := AlertsForUser(ctx, store, "u1", now)
	if err != nil {
		t.Fatalf("AlertsForUser() error = %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("alerts = %d, want 2", len(alerts))
	}
	// Newest first.
	if alerts[0].ID != teamOnly.ID || alerts[1].ID != orgWide.ID {
		t.Errorf("order = [%s, %s], want newest first", alerts[0].Title, alerts[1].Title)
	}
}

func TestAlertsForUserUnknownUser(t *testing.T) {
	store := newMemStore()
	if _, err := CreateAlert(context.Background(), store, testLogger(), validCreateRequest()); err != nil {
		t.Fatalf("CreateAlert() error = %v", err)
	}

	alerts, err := AlertsForUser(context.Background(), store, "ghost", time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("AlertsForUser() error = %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("alerts = %d, want 0 for unknown user", len(alerts))
	}
}

func TestListAlertsFilters(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	mustCreate := func(mutate func(*models.CreateAlertRequest)) *models.Alert {
		t.Helper()
		req := validCreateRequest()
		mutate(req)
		alert, err := CreateAlert(ctx, store, testLogger(), req)
		if err != nil {
			t.Fatalf("CreateAlert() error = %v", err)
		}
		return alert
	}

	mustCreate(func(r *models.CreateAlertRequest) {
		r.Title = "critical org"
		r.Severity = models.AlertSeverityCritical
	})
	mustCreate(func(r *models.CreateAlertRequest) {
		r.Title = "warning team"
		r.Visibility = models.Visibility{Teams: []models.TeamID{"t1"}}
	})
	mustCreate(func(r *models.CreateAlertRequest) {
		r.Title = "expired user"
		r.Visibility = models.Visibility{Users: []models.UserID{"u1"}}
		r.StartTime = now.Add(-72 * time.Hour)
		r.ExpiryTime = now.Add(-24 * time.Hour)
	})
	toArchive := mustCreate(func(r *models.CreateAlertRequest) {
		r.Title = "archived expired"
		r.StartTime = now.Add(-72 * time.Hour)
		r.ExpiryTime = now.Add(-24 * time.Hour)
	})
	if _, err := ArchiveAlert(ctx, store, testLogger(), toArchive.ID); err != nil {
		t.Fatalf("ArchiveAlert() error = %v", err)
	}

	tests := []struct {
		name     string
		filter   models.AlertFilter
		expected []string
	}{
		{"no filter", models.AlertFilter{}, []string{"critical org", "warning team", "expired user", "archived expired"}},
		{"by severity", models.AlertFilter{Severity: models.AlertSeverityCritical}, []string{"critical org"}},
		{"active excludes expired and archived", models.AlertFilter{Status: models.StatusFilterActive}, []string{"critical org", "warning team"}},
		{"expired excludes archived", models.AlertFilter{Status: models.StatusFilterExpired}, []string{"expired user"}},
		{"archived ignores window", models.AlertFilter{Status: models.StatusFilterArchived}, []string{"archived expired"}},
		{"audience org", models.AlertFilter{Audience: models.AudienceFilterOrg}, []string{"critical org", "archived expired"}},
		{"audience team", models.AlertFilter{Audience: models.AudienceFilterTeam}, []string{"warning team"}},
		{"audience user", models.AlertFilter{Audience: models.AudienceFilterUser}, []string{"expired user"}},
		{"conjunctive", models.AlertFilter{Severity: models.AlertSeverityWarning, Status: models.StatusFilterActive, Audience: models.AudienceFilterTeam}, []string{"warning team"}},
		{"conjunctive no match", models.AlertFilter{Severity: models.AlertSeverityCritical, Audience: models.AudienceFilterTeam}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts, err := ListAlerts(ctx, store, tt.filter, now)
			if err != nil {
				t.Fatalf("ListAlerts() error = %v", err)
			}
			got := make([]string, len(alerts))
			for i, a := range alerts {
				got[i] = a.Title
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("titles = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Fatalf("titles = %v, want %v", got, tt.expected)
				}
			}
		})
	}
}

func TestListAlertsRejectsUnknownFilterValues(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	now := time.Now()

	tests := []struct {
		name   string
		filter models.AlertFilter
	}{
		{"bad severity", models.AlertFilter{Severity: "Fatal"}},
		{"bad status", models.AlertFilter{Status: "open"}},
		{"bad audience", models.AlertFilter{Audience: "everyone"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ListAlerts(ctx, store, tt.filter, now); !errors.Is(err, ErrInvalidAlertConfiguration) {
				t.Errorf("ListAlerts() error = %v, want ErrInvalidAlertConfiguration", err)
			}
		})
	}
}

func TestOverviewForUser(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	store.addUser("u1", "t1")
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	mustCreate := func(title string) *models.Alert {
		t.Helper()
		req := validCreateRequest()
		req.Title = title
		alert, err := CreateAlert(ctx, store, testLogger(), req)
		if err != nil {
			t.Fatalf("CreateAlert() error = %v", err)
		}
		return alert
	}

	plain := mustCreate("plain")
	snoozed := mustCreate("snoozed")
	readAndSnoozed := mustCreate("read and snoozed")

	if _, err := Snooze(ctx, store, testLogger(), "u1", snoozed.ID, now, time.UTC); err != nil {
		t.Fatalf("Snooze() error = %v", err)
	}
	if _, err := Snooze(ctx, store, testLogger(), "u1", readAndSnoozed.ID, now, time.UTC); err != nil {
		t.Fatalf("Snooze() error = %v", err)
	}
	if _, err := MarkRead(ctx, store, testLogger(), "u1", readAndSnoozed.ID, true); err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}

	overview, err := OverviewForUser(ctx, store, "u1", now)
	if err != nil {
		t.Fatalf("OverviewForUser() error = %v", err)
	}

	if len(overview.Active) != 1 || overview.Active[0].ID != plain.ID {
		t.Errorf("Active = %d alerts, want just %q", len(overview.Active), plain.Title)
	}
	if len(overview.Snoozed) != 2 {
		t.Errorf("Snoozed = %d alerts, want 2", len(overview.Snoozed))
	}
	// A read alert appears in History even while snoozed; the views overlap.
	if len(overview.History) != 1 || overview.History[0].ID != readAndSnoozed.ID {
		t.Errorf("History = %d alerts, want just %q", len(overview.History), readAndSnoozed.Title)
	}
}

func TestSnoozeDoesNotAffectRawVisibility(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	store.addUser("u1", "")
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	alert, err := CreateAlert(ctx, store, testLogger(), validCreateRequest())
	if err != nil {
		t.Fatalf("CreateAlert() error = %v", err)
	}
	if _, err := Snooze(ctx, store, testLogger(), "u1", alert.ID, now, time.UTC); err != nil {
		t.Fatalf("Snooze() error = %v", err)
	}

	later := now.Add(time.Hour)
	alerts, err := AlertsForUser(ctx, store, "u1", later)
	if err != nil {
		t.Fatalf("AlertsForUser() error = %v", err)
	}
	if len(alerts) != 1 {
		t.Errorf("snooze removed the alert from raw visibility: %d alerts", len(alerts))
	}

	overview, err := OverviewForUser(ctx, store, "u1", later)
	if err != nil {
		t.Fatalf("OverviewForUser() error = %v", err)
	}
	if len(overview.Active) != 0 {
		t.Error("snoozed alert still in the active view")
	}
	if len(overview.Snoozed) != 1 {
		t.Errorf("Snoozed = %d alerts, want 1", len(overview.Snoozed))
	}
}

func TestOverviewSnoozeExpiresNextDay(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	store.addUser("u1", "")
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	alert, err := CreateAlert(ctx, store, testLogger(), validCreateRequest())
	if err != nil {
		t.Fatalf("CreateAlert() error = %v", err)
	}
	if _, err := Snooze(ctx, store, testLogger(), "u1", alert.ID, now, time.UTC); err != nil {
		t.Fatalf("Snooze() error = %v", err)
	}

	nextMorning := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	overview, err := OverviewForUser(ctx, store, "u1", nextMorning)
	if err != nil {
		t.Fatalf("OverviewForUser() error = %v", err)
	}
	if len(overview.Snoozed) != 0 {
		t.Error("alert still snoozed the next morning")
	}
	if len(overview.Active) != 1 {
		t.Errorf("Active = %d alerts, want 1", len(overview.Active))
	}
}

func TestResolveRecipients(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	store.addUser("u1", "t1")
	store.addUser("u2", "t2")
	store.addUser("u3", "")

	alert := &models.Alert{
		ID:         "a1",
		Visibility: models.Visibility{Teams: []models.TeamID{"t1"}, Users: []models.UserID{"u3"}},
	}
	recipients, err := ResolveRecipients(ctx, store, alert)
	if err != nil {
		t.Fatalf("ResolveRecipients() error = %v", err)
	}
	got := make(map[models.UserID]bool, len(recipients))
	for _, u := range recipients {
		got[u.ID] = true
	}
	if len(got) != 2 || !got["u1"] || !got["u3"] {
		t.Errorf("recipients = %v, want u1 and u3", got)
	}
}
