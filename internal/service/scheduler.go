// 파이프라인 스케줄러 정의
//
// 타이머 하나가 틱마다 고정 순서로 수행한다:
//   시스템 샘플 수집 -> 기록 -> 임계치 평가 -> 리포트 생성
//
// 틱 겹침 정책: skip-on-overlap. 이전 틱이 아직 도는 중이면 이번 틱은
// 건너뛰고 로그만 남긴다. 주기보다 오래 걸리는 틱을 중단시키지는 않는다.
//
// eviction도 여기서 스케줄한다 (EvictionInterval마다 Retention보다
// 오래된 샘플 제거). 명시적으로 돌리지 않으면 저장소가 무한히 자라기
// 때문에 스케줄러가 소유한다.

package service

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/codepulse/backend/internal/exporter"
	"github.com/codepulse/backend/internal/model"
)

// sampleRecorder - MetricStore 인터페이스
type sampleRecorder interface {
	Record(sample model.Sample) (string, error)
	Evict(maxAge time.Duration) int
	Len() int
}

// systemSampler - 시스템 샘플 수집기 인터페이스
type systemSampler interface {
	Sample() model.SystemSample
}

// reportRunner - 리포트 생성기 인터페이스
type reportRunner interface {
	Generate() model.Report
}

// triggerEvaluator - 임계치 평가기 인터페이스
type triggerEvaluator interface {
	Evaluate(sample model.Sample) []model.Trigger
}

// alertCreator - AlertManager 인터페이스
type alertCreator interface {
	CreateFromTriggers(triggers []model.Trigger) []model.AlertRecord
}

// Scheduler 구조체 정의
//
// Start/Stop 수명주기를 가진 단일 반복 타이머. 테스트에서는 Tick을
// 직접 호출해서 wall-clock 없이 구동할 수 있다.
type Scheduler struct {
	store     sampleRecorder
	sampler   systemSampler
	evaluator triggerEvaluator
	alerts    alertCreator
	reports   reportRunner

	interval         time.Duration
	evictionInterval time.Duration
	retention        time.Duration

	running  atomic.Bool // skip-on-overlap 플래그
	cancel   context.CancelFunc
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewScheduler(store sampleRecorder, sampler systemSampler, evaluator triggerEvaluator, alerts alertCreator, reports reportRunner, interval, evictionInterval, retention time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &Scheduler{
		store:            store,
		sampler:          sampler,
		evaluator:        evaluator,
		alerts:           alerts,
		reports:          reports,
		interval:         interval,
		evictionInterval: evictionInterval,
		retention:        retention,
	}
}

// Start - 타이머 루프 기동
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		var evictTicker *time.Ticker
		var evictC <-chan time.Time
		if s.evictionInterval > 0 {
			evictTicker = time.NewTicker(s.evictionInterval)
			evictC = evictTicker.C
			defer evictTicker.Stop()
		}

		for {
			select {
			case <-ticker.C:
				s.Tick()
			case <-evictC:
				s.RunEviction()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop - 루프 종료 후 진행 중인 틱 완료까지 대기
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
	s.wg.Wait()
}

// Tick - 틱 1회 수행: 샘플 수집 -> 평가 -> 리포트, 순차 실행
func (s *Scheduler) Tick() {
	if !s.running.CompareAndSwap(false, true) {
		log.Printf("[Scheduler] Previous tick still running, skipping")
		return
	}
	defer s.running.Store(false)

	sample := s.sampler.Sample()
	if _, err := s.store.Record(sample); err != nil {
		log.Printf("[Scheduler] Failed to record system sample: %v", err)
	} else {
		exporter.SamplesRecorded.WithLabelValues(string(model.KindSystem)).Inc()
		exporter.StoreSize.Set(float64(s.store.Len()))
	}

	if triggers := s.evaluator.Evaluate(sample); len(triggers) > 0 {
		s.alerts.CreateFromTriggers(triggers)
	}

	s.reports.Generate()
}

// RunEviction - Retention보다 오래된 샘플 제거
func (s *Scheduler) RunEviction() {
	evicted := s.store.Evict(s.retention)
	exporter.StoreSize.Set(float64(s.store.Len()))
	if evicted > 0 {
		log.Printf("[Scheduler] Evicted %d samples older than %s", evicted, s.retention)
	}
}
