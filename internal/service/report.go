// 주기 리포트 생성 비즈니스 로직 정의
//
// 처리 흐름 (스케줄러 틱마다):
//  1. MetricStore에서 최근 1시간 윈도우 조회
//  2. 샘플을 종류별로 분리해서 집계 (빈 구간 평균은 0)
//  3. 같은 윈도우의 알림 로그 필터링
//  4. 날짜별 JSON 파일로 영속화 (같은 날짜는 교체, 병합 없음)
//  5. report_generated 이벤트 발행
//
// I/O 실패는 로그만 남기고 스케줄러 루프를 멈추지 않는다.

package service

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/codepulse/backend/internal/exporter"
	"github.com/codepulse/backend/internal/model"
)

const reportWindow = time.Hour

// sampleWindowReader - MetricStore 인터페이스
type sampleWindowReader interface {
	QueryWindow(window time.Duration) []model.Sample
}

// alertWindowReader - 알림 로그 인터페이스
type alertWindowReader interface {
	AlertsSince(cutoff time.Time) []model.AlertRecord
}

// reportPersister - 파일 영속화 인터페이스
type reportPersister interface {
	WriteReport(report model.Report) error
}

// insightClient - AI 요약 클라이언트 (nil이면 비활성)
type insightClient interface {
	Summarize(ctx context.Context, report model.Report) (string, error)
}

// ReportGenerator 구조체 정의
//
// 마지막으로 생성한 리포트 참조 외에는 상태를 소유하지 않는다.
type ReportGenerator struct {
	samples   sampleWindowReader
	alerts    alertWindowReader
	persister reportPersister
	publisher *Publisher
	insight   insightClient

	// 마지막 생성 리포트 (API 표면용). 스케줄러 고루틴이 쓰고
	// 핸들러 고루틴이 읽으므로 atomic으로 공유한다.
	last atomic.Pointer[model.Report]
}

func NewReportGenerator(samples sampleWindowReader, alerts alertWindowReader, persister reportPersister, publisher *Publisher, insight insightClient) *ReportGenerator {
	return &ReportGenerator{
		samples:   samples,
		alerts:    alerts,
		persister: persister,
		publisher: publisher,
		insight:   insight,
	}
}

// Generate - 최근 1시간 윈도우 집계 리포트 생성 + 영속화 + 이벤트 발행
func (g *ReportGenerator) Generate() model.Report {
	now := time.Now()
	window := g.samples.QueryWindow(reportWindow)

	report := model.Report{
		GeneratedAt:    now,
		WindowLabel:    "1h",
		Analysis:       aggregateAnalysis(window),
		System:         aggregateSystem(window),
		AlertsInWindow: g.alerts.AlertsSince(now.Add(-reportWindow)),
	}

	// AI 요약은 선택 기능. 실패해도 리포트는 그대로 나간다.
	if g.insight != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		insight, err := g.insight.Summarize(ctx, report)
		cancel()
		if err != nil {
			log.Printf("[Report] Failed to generate insight: %v", err)
		} else {
			report.Insight = insight
		}
	}

	if g.persister != nil {
		if err := g.persister.WriteReport(report); err != nil {
			log.Printf("[Report] Failed to persist report: %v", err)
		}
	}

	g.last.Store(&report)
	exporter.ReportsGenerated.Inc()
	g.publisher.Publish(Event{Type: EventReportGenerated, Report: &report})

	return report
}

// Last - 마지막으로 생성된 리포트 (없으면 nil)
func (g *ReportGenerator) Last() *model.Report {
	return g.last.Load()
}

// aggregateAnalysis - 분석 샘플 집계. 빈 구간의 평균은 0이다.
func aggregateAnalysis(samples []model.Sample) model.AnalysisSummary {
	var summary model.AnalysisSummary
	var totalDuration, totalThroughput float64

	for _, s := range samples {
		a, ok := s.(model.AnalysisSample)
		if !ok {
			continue
		}
		summary.Count++
		summary.TotalIssues += a.IssueCount
		totalDuration += a.AnalysisDurationMs
		totalThroughput += a.Throughput
	}

	if summary.Count > 0 {
		summary.AvgDurationMs = totalDuration / float64(summary.Count)
		summary.AvgThroughput = totalThroughput / float64(summary.Count)
	}
	return summary
}

// aggregateSystem - 시스템 샘플 집계
func aggregateSystem(samples []model.Sample) model.SystemSummary {
	var summary model.SystemSummary
	var totalHeap float64
	var count int
	var lastTime time.Time

	for _, s := range samples {
		sys, ok := s.(model.SystemSample)
		if !ok {
			continue
		}
		count++
		totalHeap += float64(sys.Memory.HeapUsed)
		if sys.Memory.HeapUsed > summary.PeakHeapUsed {
			summary.PeakHeapUsed = sys.Memory.HeapUsed
		}
		// 업타임은 윈도우 내 가장 최근 샘플 기준
		if sys.Timestamp.After(lastTime) {
			lastTime = sys.Timestamp
			summary.UptimeSeconds = sys.UptimeSeconds
		}
	}

	if count > 0 {
		summary.AvgHeapUsed = totalHeap / float64(count)
	}
	return summary
}
