// 페이저 서비스(PagerDuty Events API v2 호환)와 통신하는 클라이언트 정의
//
// 환경변수:
//   - PAGER_URL (default: https://events.pagerduty.com/v2/enqueue)
//   - PAGER_ROUTING_KEY
//
// critical 알림만 받는 채널이다. routing key가 없으면 비활성.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/codepulse/backend/internal/config"
	"github.com/codepulse/backend/internal/model"
)

// PagerClient 구조체 정의
type PagerClient struct {
	url        string
	routingKey string
	httpClient *http.Client
}

// PagerEvent 구조체 정의 (Events API v2 형식)
type PagerEvent struct {
	RoutingKey  string       `json:"routing_key"`
	EventAction string       `json:"event_action"` // trigger 고정
	Payload     PagerPayload `json:"payload"`
	DedupKey    string       `json:"dedup_key,omitempty"`
}

// PagerPayload 구조체 정의
type PagerPayload struct {
	Summary   string `json:"summary"`
	Source    string `json:"source"`
	Severity  string `json:"severity"`
	Timestamp string `json:"timestamp"`
}

// PagerClient 객체 생성
func NewPagerClient(cfg config.PagerConfig) *PagerClient {
	return &PagerClient{
		url:        cfg.URL,
		routingKey: cfg.RoutingKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *PagerClient) Name() string {
	return "pager"
}

func (c *PagerClient) IsConfigured() bool {
	return c.routingKey != ""
}

// Wants - critical만, 설정된 경우에만
func (c *PagerClient) Wants(severity model.Severity) bool {
	return c.IsConfigured() && severity == model.SeverityCritical
}

// Send - 페이저 이벤트 전송
func (c *PagerClient) Send(ctx context.Context, alert model.AlertRecord) error {
	if !c.IsConfigured() {
		return fmt.Errorf("pager routing key not configured")
	}

	event := PagerEvent{
		RoutingKey:  c.routingKey,
		EventAction: "trigger",
		DedupKey:    alert.ID,
		Payload: PagerPayload{
			Summary:   fmt.Sprintf("%s: %s", alert.Kind, alert.Message),
			Source:    "codepulse",
			Severity:  string(alert.Severity),
			Timestamp: alert.CreatedAt.UTC().Format(time.RFC3339),
		},
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal pager event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send pager event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("pager API returned status %d", resp.StatusCode)
	}
	return nil
}
