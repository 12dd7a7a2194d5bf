// 외부 분석 엔진과 HTTP 통신하는 클라이언트 정의
//
// 환경변수:
//   - ENGINE_URL: 분석 엔진 URL (예: http://codepulse-engine.codepulse.svc:9000)
//
// 엔진은 블랙박스다. 소스를 보내면 이슈 수를 돌려받을 뿐이고,
// 내부 동작은 이 저장소의 관심사가 아니다. 호출 소요 시간은 여기서
// 측정해서 샘플 재료로 넘긴다.

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
)

// EngineClient 구조체 정의
type EngineClient struct {
	baseURL    string
	httpClient *http.Client
}

// EngineAnalysisRequest 구조체 정의
type EngineAnalysisRequest struct {
	SourceID string `json:"source_id"`
	Content  string `json:"content"`
}

// EngineAnalysisResponse 구조체 정의
type EngineAnalysisResponse struct {
	Status     string `json:"status"`
	IssueCount int    `json:"issue_count"`
}

// EngineClient 객체 생성
func NewEngineClient(cfg config.EngineConfig) *EngineClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://codepulse-engine.codepulse.svc:9000"
	}

	return &EngineClient{
		baseURL: baseURL,
		// 분석 자체에는 타임아웃을 걸지 않는다 (파이프라인은 사후 관찰만)
		httpClient: &http.Client{},
	}
}

// Analyze - 엔진에 분석 요청, 이슈 수와 측정된 소요 시간(ms) 반환
func (c *EngineClient) Analyze(ctx context.Context, sourceID, content string) (int, float64, error) {
	payload, err := json.Marshal(EngineAnalysisRequest{
		SourceID: sourceID,
		Content:  content,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to marshal analysis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/analyze", bytes.NewBuffer(payload))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	durationMs := float64(time.Since(start)) / float64(time.Millisecond)
	if err != nil {
		return 0, durationMs, fmt.Errorf("failed to call engine: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, durationMs, fmt.Errorf("failed to read engine response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, durationMs, fmt.Errorf("engine returned status %d: %s", resp.StatusCode, string(body))
	}

	var engineResp EngineAnalysisResponse
	if err := json.Unmarshal(body, &engineResp); err != nil {
		return 0, durationMs, fmt.Errorf("failed to parse engine response: %w", err)
	}

	return engineResp.IssueCount, durationMs, nil
}
