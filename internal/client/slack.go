// 외부 Slack API와 통신하는 채팅 채널 클라이언트 정의
//
// 환경변수:
//   - SLACK_BOT_TOKEN: Slack Bot Token (xoxb-...)
//   - SLACK_CHANNEL_ID: Slack 채널 ID (C...)
//
// 디스패처의 Channel 인터페이스를 구현한다. 설정만 되어 있으면 모든
// 심각도의 알림을 받는다.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/codepulse/backend/internal/config"
	"github.com/codepulse/backend/internal/model"
)

// SlackClient 구조체 정의
type SlackClient struct {
	botToken   string
	channelID  string
	httpClient *http.Client
}

// SlackMessage(메시지 내용) 구조체 정의
type SlackMessage struct {
	Channel     string            `json:"channel"`
	Text        string            `json:"text,omitempty"`
	Attachments []SlackAttachment `json:"attachments,omitempty"`
}

// SlackAttachment(메시지 포맷) 구조체 정의
type SlackAttachment struct {
	// - critical: #dc3545 (빨강)
	// - warning: #ffc107 (노랑)
	// - info: #17a2b8 (파랑)
	Color  string       `json:"color"`
	Title  string       `json:"title"`
	Text   string       `json:"text"`
	Footer string       `json:"footer,omitempty"`
	Ts     int64        `json:"ts,omitempty"`
	Fields []SlackField `json:"fields,omitempty"`
}

// SlackField(메시지 포맷 필드) 구조체 정의
type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// SlackResponse(메시지 응답) 구조체 정의
type SlackResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// SlackClient 객체 생성
func NewSlackClient(cfg config.SlackConfig) *SlackClient {
	return &SlackClient{
		botToken:  cfg.BotToken,
		channelID: cfg.ChannelID,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *SlackClient) Name() string {
	return "slack"
}

// IsConfigured - Bot Token과 Channel ID가 모두 설정되어 있는지 체크
func (c *SlackClient) IsConfigured() bool {
	return c.botToken != "" && c.channelID != ""
}

// Wants - 설정만 되어 있으면 모든 심각도를 받는다
func (c *SlackClient) Wants(severity model.Severity) bool {
	return c.IsConfigured()
}

// Send - 알림을 Slack으로 전송
func (c *SlackClient) Send(ctx context.Context, alert model.AlertRecord) error {
	if !c.IsConfigured() {
		return fmt.Errorf("slack bot token or channel ID not configured")
	}

	title := fmt.Sprintf("%s [%s] %s", getEmojiBySeverity(alert.Severity), alert.Severity, alert.Kind)

	msg := SlackMessage{
		Channel: c.channelID,
		Attachments: []SlackAttachment{
			{
				Color: getColorBySeverity(alert.Severity),
				Title: title,
				Text:  alert.Message,
				Fields: []SlackField{
					{Title: "Kind", Value: string(alert.Kind), Short: true},
					{Title: "Severity", Value: string(alert.Severity), Short: true},
					{Title: "Created", Value: alert.CreatedAt.Format(time.RFC3339), Short: true},
					{Title: "Alert ID", Value: alert.ID, Short: true},
				},
				Footer: "codepulse",
				Ts:     time.Now().Unix(),
			},
		},
	}

	return c.send(ctx, msg)
}

// Slack API 호출
func (c *SlackClient) send(ctx context.Context, msg SlackMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://slack.com/api/chat.postMessage", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.botToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var slackResp SlackResponse
	if err := json.Unmarshal(body, &slackResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if !slackResp.OK {
		return fmt.Errorf("slack API error: %s", slackResp.Error)
	}
	return nil
}

// 심각도에 따른 적절한 메시지 색상 반환
func getColorBySeverity(severity model.Severity) string {
	switch severity {
	case model.SeverityCritical:
		return "#dc3545" // red
	case model.SeverityWarning:
		return "#ffc107" // yellow
	default:
		return "#17a2b8" // blue
	}
}

// 심각도에 따른 적절한 메시지 이모지 반환
func getEmojiBySeverity(severity model.Severity) string {
	if severity == model.SeverityCritical {
		return "🔥"
	}
	return "⚠️"
}
