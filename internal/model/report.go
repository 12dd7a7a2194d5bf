// 주기 리포트 구조체 정의
//
// Report는 MetricStore의 최근 1시간 윈도우를 집계한 파생 스냅샷이며,
// 날짜별 JSON 파일로 영속화된다. MetricStore로 다시 유입되지 않는다.

package model

import "time"

// AnalysisSummary - 분석 샘플 집계
type AnalysisSummary struct {
	Count         int     `json:"count"`
	AvgDurationMs float64 `json:"avgDurationMs"`
	AvgThroughput float64 `json:"avgThroughput"`
	TotalIssues   int     `json:"totalIssues"`
}

// SystemSummary - 시스템 샘플 집계
type SystemSummary struct {
	AvgHeapUsed   float64 `json:"avgHeapUsed"`
	PeakHeapUsed  uint64  `json:"peakHeapUsed"`
	UptimeSeconds float64 `json:"uptimeSeconds"` // 윈도우 내 마지막 샘플 기준
}

// Report - 주기적으로 생성되는 윈도우 집계 리포트
type Report struct {
	GeneratedAt    time.Time       `json:"generatedAt"`
	WindowLabel    string          `json:"windowLabel"` // 예: "1h"
	Analysis       AnalysisSummary `json:"analysis"`
	System         SystemSummary   `json:"system"`
	AlertsInWindow []AlertRecord   `json:"alertsInWindow"`
	Insight        string          `json:"insight,omitempty"` // AI 요약 (설정된 경우에만)
}
