package service

import (
	"testing"
	"time"

	"github.com/codepulse/backend/internal/config"
	"github.com/codepulse/backend/internal/model"
)

func testThresholds() config.ThresholdConfig {
	return config.ThresholdConfig{
		AnalysisDurationMs: 5000,
		MemoryBytes:        500 * 1024 * 1024,
		CPUPercent:         80,
		ThroughputFloor:    0.1,
	}
}

func analysisSample(durationMs, throughput float64) model.AnalysisSample {
	return model.AnalysisSample{
		Timestamp:          time.Now(),
		SourceID:           "src/app.js",
		AnalysisDurationMs: durationMs,
		InputSizeBytes:     int64(durationMs * throughput),
		Throughput:         throughput,
	}
}

func systemSample(heapUsed uint64, busyMicros int64, uptimeSeconds float64) model.SystemSample {
	return model.SystemSample{
		Timestamp:     time.Now(),
		Memory:        model.MemoryStat{HeapUsed: heapUsed},
		CPU:           model.CPUStat{UserMicros: busyMicros},
		UptimeSeconds: uptimeSeconds,
	}
}

func TestEvaluateAnalysisSample(t *testing.T) {
	e := NewThresholdEvaluator(testThresholds())

	tests := []struct {
		name      string
		sample    model.AnalysisSample
		wantKinds []model.AlertKind
	}{
		{
			name:      "within-thresholds",
			sample:    analysisSample(1000, 2.0),
			wantKinds: nil,
		},
		{
			name:      "slow-analysis",
			sample:    analysisSample(6000, 2.0),
			wantKinds: []model.AlertKind{model.AlertSlowAnalysis},
		},
		{
			name:      "exactly-at-threshold-passes",
			sample:    analysisSample(5000, 2.0),
			wantKinds: nil,
		},
		{
			name:      "low-throughput",
			sample:    analysisSample(1000, 0.05),
			wantKinds: []model.AlertKind{model.AlertLowThroughput},
		},
		{
			name:      "slow-and-low-throughput",
			sample:    analysisSample(6000, 0.05),
			wantKinds: []model.AlertKind{model.AlertSlowAnalysis, model.AlertLowThroughput},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			triggers := e.Evaluate(tt.sample)
			if len(triggers) != len(tt.wantKinds) {
				t.Fatalf("Evaluate() = %d triggers, want %d: %+v", len(triggers), len(tt.wantKinds), triggers)
			}
			for i, want := range tt.wantKinds {
				if triggers[i].Kind != want {
					t.Fatalf("trigger[%d].Kind = %s, want %s", i, triggers[i].Kind, want)
				}
				if triggers[i].Message == "" {
					t.Fatalf("trigger[%d] has empty message", i)
				}
			}
		})
	}
}

func TestEvaluateSystemSample(t *testing.T) {
	e := NewThresholdEvaluator(testThresholds())

	tests := []struct {
		name      string
		sample    model.SystemSample
		wantKinds []model.AlertKind
	}{
		{
			name:      "within-thresholds",
			sample:    systemSample(100*1024*1024, 10e6, 100), // CPU 10%
			wantKinds: nil,
		},
		{
			name:      "high-memory",
			sample:    systemSample(600*1024*1024, 10e6, 100),
			wantKinds: []model.AlertKind{model.AlertHighMemory},
		},
		{
			name:      "high-cpu",
			sample:    systemSample(100*1024*1024, 90e6, 100), // CPU 90%
			wantKinds: []model.AlertKind{model.AlertHighCpu},
		},
		{
			name:      "zero-uptime-never-triggers-cpu",
			sample:    systemSample(100*1024*1024, 90e6, 0),
			wantKinds: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			triggers := e.Evaluate(tt.sample)
			if len(triggers) != len(tt.wantKinds) {
				t.Fatalf("Evaluate() = %d triggers, want %d: %+v", len(triggers), len(tt.wantKinds), triggers)
			}
			for i, want := range tt.wantKinds {
				if triggers[i].Kind != want {
					t.Fatalf("trigger[%d].Kind = %s, want %s", i, triggers[i].Kind, want)
				}
			}
		})
	}
}

func TestThroughputFloorDisabledWhenZero(t *testing.T) {
	cfg := testThresholds()
	cfg.ThroughputFloor = 0
	e := NewThresholdEvaluator(cfg)

	if triggers := e.Evaluate(analysisSample(1000, 0.0001)); len(triggers) != 0 {
		t.Fatalf("floor disabled but got triggers: %+v", triggers)
	}
}
