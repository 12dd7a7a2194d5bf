// 파이프라인이 수집하는 성능 샘플 구조체 정의
// store, service, handler 레이어에서 공통으로 사용하기 때문에 model 레이어에 별도로 정의
//
// 샘플 종류:
//   - AnalysisSample: 분석 엔진 호출 1회당 생성 (소요 시간, 입력 크기, 이슈 수)
//   - SystemSample: 스케줄러 틱마다 생성 (메모리, CPU, 업타임)

package model

import (
	"errors"
	"time"
)

// SampleKind - 샘플 종류
type SampleKind string

const (
	KindAnalysis SampleKind = "analysis"
	KindSystem   SampleKind = "system"
)

var (
	ErrMissingSourceID  = errors.New("sample: missing source id")
	ErrInvalidDuration  = errors.New("sample: duration must be positive")
	ErrMissingTimestamp = errors.New("sample: missing timestamp")
)

// Sample - MetricStore에 저장되는 샘플 공통 인터페이스
//
// 저장 이후에는 불변(immutable)으로 취급한다.
type Sample interface {
	Kind() SampleKind
	Time() time.Time
	Validate() error
}

// MemoryStat - 프로세스 메모리 스냅샷
type MemoryStat struct {
	RSS       uint64 `json:"rss"`       // 상주 메모리 (OS 기준)
	HeapUsed  uint64 `json:"heapUsed"`  // 힙 사용량
	HeapTotal uint64 `json:"heapTotal"` // 힙 예약량
	External  uint64 `json:"external"`  // 힙 외 런타임 메모리
}

// CPUStat - 프로세스 누적 CPU 시간 (마이크로초)
type CPUStat struct {
	UserMicros   int64 `json:"userMicros"`
	SystemMicros int64 `json:"systemMicros"`
}

// AnalysisSample - 분석 엔진 호출 1회에 대한 성능 샘플
type AnalysisSample struct {
	Timestamp          time.Time  `json:"timestamp"`
	SourceID           string     `json:"sourceId"`           // 분석 대상 식별자 (예: "src/app.js")
	AnalysisDurationMs float64    `json:"analysisDurationMs"` // 엔진 호출 소요 시간
	InputSizeBytes     int64      `json:"inputSizeBytes"`
	IssueCount         int        `json:"issueCount"`
	Throughput         float64    `json:"throughput"` // inputSizeBytes / analysisDurationMs
	Memory             MemoryStat `json:"memory"`     // 호출 완료 시점 프로세스 메모리
}

func (s AnalysisSample) Kind() SampleKind { return KindAnalysis }
func (s AnalysisSample) Time() time.Time  { return s.Timestamp }

// Validate - 필수 필드 검증
// record 경계에서 동기적으로 거부한다 (조용한 보정 금지)
func (s AnalysisSample) Validate() error {
	if s.Timestamp.IsZero() {
		return ErrMissingTimestamp
	}
	if s.SourceID == "" {
		return ErrMissingSourceID
	}
	if s.AnalysisDurationMs <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// NewAnalysisSample - throughput을 계산해서 AnalysisSample 생성
func NewAnalysisSample(sourceID string, durationMs float64, inputSize int64, issueCount int, mem MemoryStat) AnalysisSample {
	throughput := 0.0
	if durationMs > 0 {
		throughput = float64(inputSize) / durationMs
	}
	return AnalysisSample{
		Timestamp:          time.Now(),
		SourceID:           sourceID,
		AnalysisDurationMs: durationMs,
		InputSizeBytes:     inputSize,
		IssueCount:         issueCount,
		Throughput:         throughput,
		Memory:             mem,
	}
}

// SystemSample - 주기적으로 수집되는 프로세스/시스템 샘플
type SystemSample struct {
	Timestamp     time.Time  `json:"timestamp"`
	Memory        MemoryStat `json:"memory"`
	CPU           CPUStat    `json:"cpu"`
	UptimeSeconds float64    `json:"processUptimeSeconds"`
}

func (s SystemSample) Kind() SampleKind { return KindSystem }
func (s SystemSample) Time() time.Time  { return s.Timestamp }

func (s SystemSample) Validate() error {
	if s.Timestamp.IsZero() {
		return ErrMissingTimestamp
	}
	return nil
}

// CPUPercent - 프로세스 시작 이후 평균 CPU 사용률 (%)
//
// 누적 CPU 시간 / 업타임 기반이라 순간 사용률과는 다르다.
// 멀티코어에서는 100을 넘을 수 있다.
func (s SystemSample) CPUPercent() float64 {
	if s.UptimeSeconds <= 0 {
		return 0
	}
	busyMicros := float64(s.CPU.UserMicros + s.CPU.SystemMicros)
	return busyMicros / (s.UptimeSeconds * 1e6) * 100
}
