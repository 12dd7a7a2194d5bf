package service

import (
	"errors"
	"testing"

	"github.com/codepulse/backend/internal/model"
	"github.com/codepulse/backend/internal/store"
)

type fakeAlertDispatcher struct {
	enqueued []model.AlertRecord
}

func (f *fakeAlertDispatcher) Enqueue(alert model.AlertRecord) {
	f.enqueued = append(f.enqueued, alert)
}

func TestCreateAlertAssignsSeverity(t *testing.T) {
	tests := []struct {
		kind model.AlertKind
		want model.Severity
	}{
		{model.AlertSlowAnalysis, model.SeverityWarning},
		{model.AlertHighMemory, model.SeverityCritical},
		{model.AlertHighCpu, model.SeverityWarning},
		{model.AlertLowThroughput, model.SeverityWarning},
		{model.AlertKind("SomethingNew"), model.SeverityInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			dispatcher := &fakeAlertDispatcher{}
			m := NewAlertManager(store.NewAlertLog(0), dispatcher, NewPublisher())

			record, err := m.CreateAlert(tt.kind, "message")
			if err != nil {
				t.Fatalf("CreateAlert() error = %v", err)
			}
			if record.Severity != tt.want {
				t.Fatalf("severity = %s, want %s", record.Severity, tt.want)
			}
			if record.ID == "" {
				t.Fatalf("alert id must not be empty")
			}
			if len(dispatcher.enqueued) != 1 {
				t.Fatalf("dispatcher received %d alerts, want 1", len(dispatcher.enqueued))
			}
		})
	}
}

func TestCreateAlertRejectsEmptyInput(t *testing.T) {
	m := NewAlertManager(store.NewAlertLog(0), &fakeAlertDispatcher{}, NewPublisher())

	if _, err := m.CreateAlert("", "message"); !errors.Is(err, ErrEmptyAlertKind) {
		t.Fatalf("empty kind error = %v, want ErrEmptyAlertKind", err)
	}
	if _, err := m.CreateAlert(model.AlertSlowAnalysis, ""); !errors.Is(err, ErrEmptyAlertMessage) {
		t.Fatalf("empty message error = %v, want ErrEmptyAlertMessage", err)
	}
	if got := len(m.GetAlerts("")); got != 0 {
		t.Fatalf("rejected alerts must not be logged, got %d", got)
	}
}

func TestCreateFromTriggers(t *testing.T) {
	dispatcher := &fakeAlertDispatcher{}
	m := NewAlertManager(store.NewAlertLog(0), dispatcher, NewPublisher())

	triggers := []model.Trigger{
		{Kind: model.AlertSlowAnalysis, Message: "analysis of src/app.js took 6000ms (threshold 5000ms)"},
		{Kind: model.AlertHighMemory, Message: "heap usage at 612.0MB (threshold 500.0MB)"},
	}

	records := m.CreateFromTriggers(triggers)
	if len(records) != 2 {
		t.Fatalf("created %d records, want 2", len(records))
	}
	if records[0].ID == records[1].ID {
		t.Fatalf("alert ids must be unique")
	}
	if len(dispatcher.enqueued) != 2 {
		t.Fatalf("dispatcher received %d alerts, want 2", len(dispatcher.enqueued))
	}
}

func TestGetAlertsFiltersBySeverity(t *testing.T) {
	m := NewAlertManager(store.NewAlertLog(0), nil, NewPublisher())

	m.CreateAlert(model.AlertSlowAnalysis, "warning alert")
	m.CreateAlert(model.AlertHighMemory, "critical alert")

	if got := len(m.GetAlerts("")); got != 2 {
		t.Fatalf("unfiltered = %d, want 2", got)
	}
	if got := len(m.GetAlerts(model.SeverityCritical)); got != 1 {
		t.Fatalf("critical = %d, want 1", got)
	}
}
