package service

import (
	"testing"
	"time"

	"github.com/codepulse/backend/internal/model"
)

type fakeRecorder struct {
	recorded []model.Sample
	evicted  []time.Duration
}

func (f *fakeRecorder) Record(sample model.Sample) (string, error) {
	f.recorded = append(f.recorded, sample)
	return "id-1", nil
}

func (f *fakeRecorder) Evict(maxAge time.Duration) int {
	f.evicted = append(f.evicted, maxAge)
	return 0
}

func (f *fakeRecorder) Len() int { return len(f.recorded) }

type fakeSampler struct {
	sample model.SystemSample
}

func (f *fakeSampler) Sample() model.SystemSample { return f.sample }

type fakeEvaluator struct {
	triggers []model.Trigger
}

func (f *fakeEvaluator) Evaluate(sample model.Sample) []model.Trigger { return f.triggers }

type fakeCreator struct {
	received [][]model.Trigger
}

func (f *fakeCreator) CreateFromTriggers(triggers []model.Trigger) []model.AlertRecord {
	f.received = append(f.received, triggers)
	return nil
}

type fakeRunner struct {
	runs int
}

func (f *fakeRunner) Generate() model.Report {
	f.runs++
	return model.Report{}
}

func newTestScheduler(recorder *fakeRecorder, evaluator *fakeEvaluator, creator *fakeCreator, runner *fakeRunner) *Scheduler {
	sampler := &fakeSampler{sample: model.SystemSample{Timestamp: time.Now(), UptimeSeconds: 1}}
	return NewScheduler(recorder, sampler, evaluator, creator, runner, time.Minute, time.Hour, 7*24*time.Hour)
}

func TestTickRecordsAndReports(t *testing.T) {
	recorder := &fakeRecorder{}
	runner := &fakeRunner{}
	s := newTestScheduler(recorder, &fakeEvaluator{}, &fakeCreator{}, runner)

	s.Tick()

	if len(recorder.recorded) != 1 {
		t.Fatalf("recorded %d samples, want 1", len(recorder.recorded))
	}
	if recorder.recorded[0].Kind() != model.KindSystem {
		t.Fatalf("recorded sample kind = %s, want system", recorder.recorded[0].Kind())
	}
	if runner.runs != 1 {
		t.Fatalf("report generated %d times, want 1", runner.runs)
	}
}

func TestTickCreatesAlertsOnViolation(t *testing.T) {
	creator := &fakeCreator{}
	triggers := []model.Trigger{{Kind: model.AlertHighMemory, Message: "heap"}}
	s := newTestScheduler(&fakeRecorder{}, &fakeEvaluator{triggers: triggers}, creator, &fakeRunner{})

	s.Tick()

	if len(creator.received) != 1 || len(creator.received[0]) != 1 {
		t.Fatalf("creator received = %+v", creator.received)
	}
	if creator.received[0][0].Kind != model.AlertHighMemory {
		t.Fatalf("trigger kind = %s", creator.received[0][0].Kind)
	}
}

func TestTickSkipsWhenPreviousStillRunning(t *testing.T) {
	recorder := &fakeRecorder{}
	s := newTestScheduler(recorder, &fakeEvaluator{}, &fakeCreator{}, &fakeRunner{})

	// 이전 틱이 도는 중인 상태를 흉내낸다
	s.running.Store(true)
	s.Tick()

	if len(recorder.recorded) != 0 {
		t.Fatalf("overlapping tick must be skipped, recorded %d", len(recorder.recorded))
	}

	s.running.Store(false)
	s.Tick()
	if len(recorder.recorded) != 1 {
		t.Fatalf("tick after release recorded %d, want 1", len(recorder.recorded))
	}
}

func TestRunEvictionUsesRetention(t *testing.T) {
	recorder := &fakeRecorder{}
	s := newTestScheduler(recorder, &fakeEvaluator{}, &fakeCreator{}, &fakeRunner{})

	s.RunEviction()

	if len(recorder.evicted) != 1 || recorder.evicted[0] != 7*24*time.Hour {
		t.Fatalf("eviction calls = %+v", recorder.evicted)
	}
}
