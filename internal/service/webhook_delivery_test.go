package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/codepulse/backend/internal/model"
)

type fakeChannelRepo struct {
	configs []model.ChannelConfig
}

func (f *fakeChannelRepo) GetChannelConfigs() ([]model.ChannelConfig, error) {
	return f.configs, nil
}

func TestSeverityAtLeast(t *testing.T) {
	tests := []struct {
		sev  model.Severity
		min  model.Severity
		want bool
	}{
		{model.SeverityCritical, model.SeverityInfo, true},
		{model.SeverityCritical, model.SeverityCritical, true},
		{model.SeverityWarning, model.SeverityCritical, false},
		{model.SeverityInfo, model.SeverityWarning, false},
		{model.SeverityInfo, model.SeverityInfo, true},
		{model.SeverityWarning, "", true}, // 빈 min은 info 취급
	}

	for _, tt := range tests {
		if got := severityAtLeast(tt.sev, tt.min); got != tt.want {
			t.Fatalf("severityAtLeast(%s, %s) = %v, want %v", tt.sev, tt.min, got, tt.want)
		}
	}
}

func TestWebhookChannelRendersAndDelivers(t *testing.T) {
	var gotBody string
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	repo := &fakeChannelRepo{configs: []model.ChannelConfig{
		{
			ID:          1,
			URL:         srv.URL,
			Method:      http.MethodPost,
			Headers:     []model.ChannelHeader{},
			Body:        `{"text":"{{alert.kind}}: {{alert.message}}"}`,
			MinSeverity: model.SeverityInfo,
		},
	}}

	ch := NewWebhookChannel(repo)
	alert := model.AlertRecord{
		ID:        "a-1",
		Kind:      model.AlertHighMemory,
		Message:   "heap usage at 612.0MB",
		CreatedAt: time.Now(),
		Severity:  model.SeverityCritical,
	}

	if err := ch.Send(context.Background(), alert); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if gotBody != `{"text":"HighMemory: heap usage at 612.0MB"}` {
		t.Fatalf("delivered body = %q", gotBody)
	}
	if gotContentType != "application/json" {
		t.Fatalf("content type = %q, want application/json", gotContentType)
	}
}

func TestWebhookChannelSkipsBelowMinSeverity(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	repo := &fakeChannelRepo{configs: []model.ChannelConfig{
		{ID: 1, URL: srv.URL, Method: http.MethodPost, Headers: []model.ChannelHeader{}, MinSeverity: model.SeverityCritical},
	}}

	ch := NewWebhookChannel(repo)
	alert := model.AlertRecord{
		ID:        "a-2",
		Kind:      model.AlertSlowAnalysis,
		Message:   "slow",
		CreatedAt: time.Now(),
		Severity:  model.SeverityWarning,
	}

	if err := ch.Send(context.Background(), alert); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if calls != 0 {
		t.Fatalf("server called %d times, want 0", calls)
	}
}

func TestWebhookChannelReportsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	repo := &fakeChannelRepo{configs: []model.ChannelConfig{
		{ID: 1, URL: srv.URL, Method: http.MethodPost, Headers: []model.ChannelHeader{}, MinSeverity: model.SeverityInfo},
	}}

	ch := NewWebhookChannel(repo)
	alert := model.AlertRecord{ID: "a-3", Kind: model.AlertHighCpu, Message: "cpu", CreatedAt: time.Now(), Severity: model.SeverityWarning}

	if err := ch.Send(context.Background(), alert); err == nil {
		t.Fatalf("expected error when delivery fails")
	}
}
