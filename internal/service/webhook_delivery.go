// 사용자 설정 웹훅으로 알림을 전송하는 채널 구현
//
// Slack/페이저 채널과 독립적으로 동작한다. 디스패처 입장에서는 채널
// 하나지만 내부적으로 저장된 모든 config에 fan-out하며, 개별 config
// 실패는 로그만 남기고 나머지는 계속 전송한다.

package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/codepulse/backend/internal/model"
	tmpl "github.com/codepulse/backend/internal/template"
)

// channelConfigReader - 저장소 인터페이스 (delivery 전용)
type channelConfigReader interface {
	GetChannelConfigs() ([]model.ChannelConfig, error)
}

// WebhookChannel - 사용자 정의 웹훅 fan-out 채널
type WebhookChannel struct {
	repo       channelConfigReader
	httpClient *http.Client
}

func NewWebhookChannel(repo channelConfigReader) *WebhookChannel {
	return &WebhookChannel{
		repo: repo,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *WebhookChannel) Name() string {
	return "webhooks"
}

// Wants - config별 MinSeverity는 Send 내부에서 거른다
func (c *WebhookChannel) Wants(severity model.Severity) bool {
	return true
}

// Send - 저장된 모든 config에 렌더링된 body를 HTTP로 전송
func (c *WebhookChannel) Send(ctx context.Context, alert model.AlertRecord) error {
	configs, err := c.repo.GetChannelConfigs()
	if err != nil {
		return fmt.Errorf("failed to load channel configs: %w", err)
	}
	if len(configs) == 0 {
		return nil
	}

	data := tmpl.AlertDataFromRecord(alert)

	var failed int
	for _, cfg := range configs {
		if cfg.URL == "" {
			log.Printf("[WebhookChannel] Skipping config id=%d: URL is empty", cfg.ID)
			continue
		}
		if !severityAtLeast(alert.Severity, cfg.MinSeverity) {
			continue
		}

		rendered := tmpl.RenderBody(cfg.Body, &data)

		if err := c.sendHTTP(ctx, cfg, rendered); err != nil {
			log.Printf("[WebhookChannel] Failed to deliver to %s (config id=%d): %v", cfg.URL, cfg.ID, err)
			failed++
		} else {
			log.Printf("[WebhookChannel] Delivered to %s (config id=%d)", cfg.URL, cfg.ID)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d webhook deliveries failed", failed, len(configs))
	}
	return nil
}

// sendHTTP - 단일 config로 HTTP 요청 전송
func (c *WebhookChannel) sendHTTP(ctx context.Context, cfg model.ChannelConfig, body string) error {
	req, err := http.NewRequestWithContext(ctx, cfg.Method, cfg.URL, bytes.NewBufferString(body))
	if err != nil {
		return err
	}

	// Content-Type 기본값 설정 (없으면 application/json)
	hasContentType := false
	for _, h := range cfg.Headers {
		if h.Key != "" {
			req.Header.Set(h.Key, h.Value)
		}
		if http.CanonicalHeaderKey(h.Key) == "Content-Type" {
			hasContentType = true
		}
	}
	if !hasContentType {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, cfg.URL)
	}
	return nil
}

// severityAtLeast - sev가 min 이상인지 비교
func severityAtLeast(sev, min model.Severity) bool {
	rank := func(s model.Severity) int {
		switch s {
		case model.SeverityCritical:
			return 2
		case model.SeverityWarning:
			return 1
		default:
			return 0
		}
	}
	return rank(sev) >= rank(min)
}
