// 임계치 평가기 정의
//
// 순수 함수: 샘플 + 임계치 설정 -> 0개 이상의 (kind, message) 트리거.
// 부수효과 없음. 알림 생성은 AlertManager 몫이다.
//
// 네 가지 임계치를 모두 평가한다:
//   - AnalysisSample: analysisDurationMs(SlowAnalysis), throughput(LowThroughput)
//   - SystemSample:   heapUsed(HighMemory), CPU 사용률(HighCpu)

package service

import (
	"fmt"

	"github.com/codepulse/backend/internal/config"
	"github.com/codepulse/backend/internal/model"
)

type ThresholdEvaluator struct {
	thresholds config.ThresholdConfig
}

func NewThresholdEvaluator(thresholds config.ThresholdConfig) *ThresholdEvaluator {
	return &ThresholdEvaluator{thresholds: thresholds}
}

// Evaluate - 샘플 종류별로 해당 임계치 검사
func (e *ThresholdEvaluator) Evaluate(sample model.Sample) []model.Trigger {
	switch s := sample.(type) {
	case model.AnalysisSample:
		return e.evaluateAnalysis(s)
	case model.SystemSample:
		return e.evaluateSystem(s)
	default:
		return nil
	}
}

func (e *ThresholdEvaluator) evaluateAnalysis(s model.AnalysisSample) []model.Trigger {
	var triggers []model.Trigger

	if s.AnalysisDurationMs > e.thresholds.AnalysisDurationMs {
		triggers = append(triggers, model.Trigger{
			Kind:    model.AlertSlowAnalysis,
			Message: fmt.Sprintf("analysis of %s took %.0fms (threshold %.0fms)", s.SourceID, s.AnalysisDurationMs, e.thresholds.AnalysisDurationMs),
		})
	}

	if e.thresholds.ThroughputFloor > 0 && s.Throughput < e.thresholds.ThroughputFloor {
		triggers = append(triggers, model.Trigger{
			Kind:    model.AlertLowThroughput,
			Message: fmt.Sprintf("throughput for %s dropped to %.3f bytes/ms (floor %.3f)", s.SourceID, s.Throughput, e.thresholds.ThroughputFloor),
		})
	}

	return triggers
}

func (e *ThresholdEvaluator) evaluateSystem(s model.SystemSample) []model.Trigger {
	var triggers []model.Trigger

	if s.Memory.HeapUsed > e.thresholds.MemoryBytes {
		usedMB := float64(s.Memory.HeapUsed) / (1024 * 1024)
		triggers = append(triggers, model.Trigger{
			Kind:    model.AlertHighMemory,
			Message: fmt.Sprintf("heap usage at %.1fMB (threshold %.1fMB)", usedMB, float64(e.thresholds.MemoryBytes)/(1024*1024)),
		})
	}

	if e.thresholds.CPUPercent > 0 {
		if pct := s.CPUPercent(); pct > e.thresholds.CPUPercent {
			triggers = append(triggers, model.Trigger{
				Kind:    model.AlertHighCpu,
				Message: fmt.Sprintf("process CPU at %.1f%% (threshold %.1f%%)", pct, e.thresholds.CPUPercent),
			})
		}
	}

	return triggers
}
