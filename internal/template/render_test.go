package template

import (
	"testing"
	"time"

	"github.com/codepulse/backend/internal/model"
)

func TestRenderBody(t *testing.T) {
	createdAt := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
	alert := &AlertData{
		ID:        "a-1",
		Kind:      "HighMemory",
		Severity:  "critical",
		Message:   "heap usage at 612.0MB",
		CreatedAt: createdAt,
	}

	tests := []struct {
		name  string
		body  string
		alert *AlertData
		want  string
	}{
		{
			name:  "all-variables",
			body:  `{"id":"{{alert.id}}","kind":"{{alert.kind}}","severity":"{{alert.severity}}","text":"{{alert.message}}","at":"{{alert.created_at}}"}`,
			alert: alert,
			want:  `{"id":"a-1","kind":"HighMemory","severity":"critical","text":"heap usage at 612.0MB","at":"2026-08-29T10:30:00Z"}`,
		},
		{
			name:  "no-variables",
			body:  `{"text":"static"}`,
			alert: alert,
			want:  `{"text":"static"}`,
		},
		{
			name:  "nil-alert-blanks-variables",
			body:  `kind={{alert.kind}}`,
			alert: nil,
			want:  `kind=`,
		},
		{
			name:  "empty-body",
			body:  "",
			alert: alert,
			want:  "",
		},
		{
			name:  "repeated-variable",
			body:  `{{alert.id}}/{{alert.id}}`,
			alert: alert,
			want:  `a-1/a-1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderBody(tt.body, tt.alert); got != tt.want {
				t.Fatalf("RenderBody() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAlertDataFromRecord(t *testing.T) {
	record := model.AlertRecord{
		ID:        "a-2",
		Kind:      model.AlertSlowAnalysis,
		Message:   "slow",
		CreatedAt: time.Now(),
		Severity:  model.SeverityWarning,
	}

	data := AlertDataFromRecord(record)
	if data.ID != record.ID || data.Kind != string(record.Kind) || data.Severity != string(record.Severity) {
		t.Fatalf("AlertDataFromRecord() = %+v", data)
	}
}
