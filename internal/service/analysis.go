// 분석 요청 처리 비즈니스 로직 정의
//
// 처리 흐름:
//  1. 외부 분석 엔진 호출 (블랙박스 - 이슈 수만 받는다), 소요 시간 측정
//  2. AnalysisSample 생성 (throughput = inputSizeBytes / durationMs)
//  3. MetricStore에 기록, analysis_recorded 이벤트 발행
//  4. 임계치 평가 후 위반 시 알림 생성
//
// 분석 자체에는 타임아웃을 걸지 않는다. 파이프라인은 긴 소요 시간을
// 사후에 관찰하고 알릴 뿐이다.

package service

import (
	"context"
	"fmt"
	"log"

	"github.com/codepulse/backend/internal/exporter"
	"github.com/codepulse/backend/internal/model"
)

// engineClient - 분석 엔진 클라이언트 인터페이스
type engineClient interface {
	Analyze(ctx context.Context, sourceID, content string) (issueCount int, durationMs float64, err error)
}

// memorySnapshotter - 샘플에 붙일 메모리 스냅샷 제공자
type memorySnapshotter interface {
	MemorySnapshot() model.MemoryStat
}

// 비동기 분석의 동시 엔진 호출 상한. push 1회에 파일이 몇 개 오든
// 엔진에는 이 개수까지만 동시에 나간다.
const maxConcurrentAnalyses = 4

// AnalysisService 구조체 정의
type AnalysisService struct {
	engine    engineClient
	store     sampleRecorder
	evaluator triggerEvaluator
	alerts    alertCreator
	publisher *Publisher
	snapshot  memorySnapshotter
	asyncSem  chan struct{}
}

func NewAnalysisService(engine engineClient, store sampleRecorder, evaluator triggerEvaluator, alerts alertCreator, publisher *Publisher, snapshot memorySnapshotter) *AnalysisService {
	return &AnalysisService{
		engine:    engine,
		store:     store,
		evaluator: evaluator,
		alerts:    alerts,
		publisher: publisher,
		snapshot:  snapshot,
		asyncSem:  make(chan struct{}, maxConcurrentAnalyses),
	}
}

// Analyze - 소스 1건 분석 후 샘플 기록
func (s *AnalysisService) Analyze(ctx context.Context, sourceID, content string) (model.AnalysisSample, error) {
	if sourceID == "" {
		return model.AnalysisSample{}, model.ErrMissingSourceID
	}

	issueCount, durationMs, err := s.engine.Analyze(ctx, sourceID, content)
	if err != nil {
		return model.AnalysisSample{}, fmt.Errorf("engine analysis failed for %s: %w", sourceID, err)
	}
	exporter.EngineDuration.Observe(durationMs)

	sample := model.NewAnalysisSample(sourceID, durationMs, int64(len(content)), issueCount, s.snapshot.MemorySnapshot())

	if _, err := s.store.Record(sample); err != nil {
		// 엔진 결과는 이미 있으므로 기록 실패만 로그
		log.Printf("[Analysis] Failed to record sample (source=%s): %v", sourceID, err)
	} else {
		exporter.SamplesRecorded.WithLabelValues(string(model.KindAnalysis)).Inc()
		exporter.StoreSize.Set(float64(s.store.Len()))
	}

	s.publisher.Publish(Event{Type: EventAnalysisRecorded, Sample: &sample})

	if triggers := s.evaluator.Evaluate(sample); len(triggers) > 0 {
		s.alerts.CreateFromTriggers(triggers)
	}

	return sample, nil
}

// AnalyzeAsync - push 웹훅 파일용 비동기 분석
//
// 세마포어로 동시 엔진 호출 수를 제한한다. 상한을 넘는 파일은 앞선
// 분석이 끝날 때까지 고루틴에서 대기한다 (버리지 않음).
func (s *AnalysisService) AnalyzeAsync(sourceID, content string) {
	go func() {
		s.asyncSem <- struct{}{}
		defer func() { <-s.asyncSem }()

		if _, err := s.Analyze(context.Background(), sourceID, content); err != nil {
			log.Printf("[Analysis] Async analysis failed (source=%s): %v", sourceID, err)
		}
	}()
}
