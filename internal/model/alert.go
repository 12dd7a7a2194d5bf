// 임계치 위반으로 생성되는 Alert 구조체 및 심각도 정의

package model

import "time"

// AlertKind - 알림 종류
type AlertKind string

const (
	AlertSlowAnalysis  AlertKind = "SlowAnalysis"
	AlertHighMemory    AlertKind = "HighMemory"
	AlertHighCpu       AlertKind = "HighCpu"
	AlertLowThroughput AlertKind = "LowThroughput"
	AlertUnknown       AlertKind = "Unknown"
)

// Severity - 심각도
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// AlertRecord - 생성 이후 불변인 알림 레코드
//
// 심각도는 kind에서만 유도되며, 테이블에 없는 kind는 info로 처리한다.
type AlertRecord struct {
	ID        string    `json:"id"`
	Kind      AlertKind `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	Severity  Severity  `json:"severity"`
}

// SeverityFor - kind -> 심각도 고정 테이블 조회 (total: 항상 값을 반환)
func SeverityFor(kind AlertKind) Severity {
	switch kind {
	case AlertSlowAnalysis:
		return SeverityWarning
	case AlertHighMemory:
		return SeverityCritical
	case AlertHighCpu:
		return SeverityWarning
	case AlertLowThroughput:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// Trigger - ThresholdEvaluator가 생성하는 (kind, message) 쌍
type Trigger struct {
	Kind    AlertKind
	Message string
}
