package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/codepulse/backend/internal/model"
)

type fakeSnapshot struct{}

func (fakeSnapshot) MemorySnapshot() model.MemoryStat { return model.MemoryStat{} }

// gatedEngine - release가 닫힐 때까지 호출을 잡아두고 동시 호출 수를 센다
type gatedEngine struct {
	mu      sync.Mutex
	active  int
	peak    int
	started chan struct{}
	release chan struct{}
}

func (e *gatedEngine) Analyze(ctx context.Context, sourceID, content string) (int, float64, error) {
	e.mu.Lock()
	e.active++
	if e.active > e.peak {
		e.peak = e.active
	}
	e.mu.Unlock()

	e.started <- struct{}{}
	<-e.release

	e.mu.Lock()
	e.active--
	e.mu.Unlock()
	return 1, 10, nil
}

type errEngine struct{}

func (errEngine) Analyze(ctx context.Context, sourceID, content string) (int, float64, error) {
	return 0, 5, errors.New("engine unavailable")
}

func newTestAnalysisService(engine engineClient) (*AnalysisService, *fakeRecorder, *fakeCreator) {
	recorder := &fakeRecorder{}
	creator := &fakeCreator{}
	svc := NewAnalysisService(engine, recorder, &fakeEvaluator{}, creator, NewPublisher(), fakeSnapshot{})
	return svc, recorder, creator
}

func TestAnalyzeRecordsSample(t *testing.T) {
	engine := &gatedEngine{started: make(chan struct{}, 1), release: make(chan struct{})}
	close(engine.release)
	svc, recorder, _ := newTestAnalysisService(engine)

	sample, err := svc.Analyze(context.Background(), "src/app.js", "const x = 1;")
	<-engine.started
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if sample.SourceID != "src/app.js" || sample.IssueCount != 1 {
		t.Fatalf("sample = %+v", sample)
	}
	if len(recorder.recorded) != 1 {
		t.Fatalf("recorded %d samples, want 1", len(recorder.recorded))
	}
}

func TestAnalyzeRejectsEmptySourceID(t *testing.T) {
	svc, recorder, _ := newTestAnalysisService(errEngine{})

	if _, err := svc.Analyze(context.Background(), "", "content"); !errors.Is(err, model.ErrMissingSourceID) {
		t.Fatalf("error = %v, want ErrMissingSourceID", err)
	}
	if len(recorder.recorded) != 0 {
		t.Fatalf("rejected request must not record samples")
	}
}

func TestAnalyzeEngineFailureRecordsNothing(t *testing.T) {
	svc, recorder, creator := newTestAnalysisService(errEngine{})

	if _, err := svc.Analyze(context.Background(), "src/app.js", "content"); err == nil {
		t.Fatalf("expected engine error")
	}
	if len(recorder.recorded) != 0 || len(creator.received) != 0 {
		t.Fatalf("failed analysis must not record or alert")
	}
}

func TestAnalyzeAsyncBoundsConcurrency(t *testing.T) {
	const files = 10
	engine := &gatedEngine{started: make(chan struct{}, files), release: make(chan struct{})}
	svc, _, _ := newTestAnalysisService(engine)

	for i := 0; i < files; i++ {
		svc.AnalyzeAsync("src/app.js", "content")
	}

	// 상한까지만 엔진에 도달해야 한다
	for i := 0; i < maxConcurrentAnalyses; i++ {
		select {
		case <-engine.started:
		case <-time.After(time.Second):
			t.Fatalf("analysis %d never started", i)
		}
	}
	select {
	case <-engine.started:
		t.Fatalf("more than %d analyses running concurrently", maxConcurrentAnalyses)
	case <-time.After(50 * time.Millisecond):
	}

	// 풀어주면 나머지도 전부 처리된다 (버려지는 파일 없음)
	close(engine.release)
	for i := maxConcurrentAnalyses; i < files; i++ {
		select {
		case <-engine.started:
		case <-time.After(time.Second):
			t.Fatalf("queued analysis %d never started", i)
		}
	}

	engine.mu.Lock()
	peak := engine.peak
	engine.mu.Unlock()
	if peak > maxConcurrentAnalyses {
		t.Fatalf("peak concurrency = %d, want <= %d", peak, maxConcurrentAnalyses)
	}
}
