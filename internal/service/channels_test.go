package service

import (
	"errors"
	"net/http"
	"testing"

	"github.com/codepulse/backend/internal/model"
)

func TestConfigFromRequestDefaults(t *testing.T) {
	cfg, err := configFromRequest(model.ChannelConfigRequest{URL: "https://hooks.example.com/a"})
	if err != nil {
		t.Fatalf("configFromRequest() error = %v", err)
	}
	if cfg.Method != http.MethodPost {
		t.Fatalf("default method = %q, want POST", cfg.Method)
	}
	if cfg.MinSeverity != model.SeverityInfo {
		t.Fatalf("default min severity = %q, want info", cfg.MinSeverity)
	}
	if cfg.Headers == nil {
		t.Fatalf("headers must never be nil")
	}
}

func TestConfigFromRequestNormalizesMethod(t *testing.T) {
	cfg, err := configFromRequest(model.ChannelConfigRequest{URL: "https://hooks.example.com/a", Method: " put "})
	if err != nil {
		t.Fatalf("configFromRequest() error = %v", err)
	}
	if cfg.Method != http.MethodPut {
		t.Fatalf("method = %q, want PUT", cfg.Method)
	}
}

func TestConfigFromRequestRejectsEmptyURL(t *testing.T) {
	if _, err := configFromRequest(model.ChannelConfigRequest{URL: "  "}); !errors.Is(err, ErrInvalidChannelConfig) {
		t.Fatalf("error = %v, want ErrInvalidChannelConfig", err)
	}
}
