// 리포트 요약용 GenAI 클라이언트 정의
//
// 환경변수:
//   - AI_API_KEY (없으면 기능 비활성 - main에서 nil로 주입)
//
// 주기 리포트의 수치를 한 문단으로 요약해서 Report.Insight에 붙인다.
// 실패는 리포트 생성을 막지 않는다 (service/report.go에서 처리).

package client

import (
	"context"
	"fmt"

	"github.com/codepulse/backend/internal/config"
	"github.com/codepulse/backend/internal/model"
	"google.golang.org/genai"
)

const insightModel = "gemini-2.0-flash"

// InsightClient 구조체 정의
type InsightClient struct {
	client *genai.Client
	model  string
}

func NewInsightClient(cfg config.InsightConfig) (*InsightClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing AI_API_KEY")
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, err
	}
	return &InsightClient{client: client, model: insightModel}, nil
}

// Summarize - 리포트 수치를 한 문단으로 요약
func (c *InsightClient) Summarize(ctx context.Context, report model.Report) (string, error) {
	prompt := fmt.Sprintf(
		"Summarize this code-analysis performance report in one short paragraph for an engineering dashboard. "+
			"Window: %s. Analyses: %d (avg %.0fms, avg throughput %.2f bytes/ms, %d issues found). "+
			"Heap: avg %.1fMB, peak %.1fMB. Alerts in window: %d.",
		report.WindowLabel,
		report.Analysis.Count,
		report.Analysis.AvgDurationMs,
		report.Analysis.AvgThroughput,
		report.Analysis.TotalIssues,
		report.System.AvgHeapUsed/(1024*1024),
		float64(report.System.PeakHeapUsed)/(1024*1024),
		len(report.AlertsInWindow),
	)

	res, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	if res == nil || len(res.Candidates) == 0 {
		return "", fmt.Errorf("empty insight result")
	}
	return res.Text(), nil
}
