// 인메모리 MetricStore 정의
//
// 저장 구조:
//   - append 전용 슬라이스 + RWMutex
//   - 키는 (kind, unixMilli, seq) - 같은 밀리초에 충돌해도 seq로 구분되므로
//     기존 샘플을 덮어쓰는 일이 없다
//
// eviction은 자동으로 돌지 않는다. 소유자(Scheduler)가 주기적으로
// Evict를 호출해야 무한 성장을 막을 수 있다.

package store

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/codepulse/backend/internal/model"
)

// 질의 가능한 시간 범위. 모르는 값은 1h로 처리한다.
var queryRanges = map[string]time.Duration{
	"1h":  time.Hour,
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
}

const defaultRange = time.Hour

type storedSample struct {
	id     string
	sample model.Sample
}

// MetricStore - 불변 샘플 레코드의 append 전용 시간 인덱스 저장소
type MetricStore struct {
	mu      sync.RWMutex
	samples []storedSample
	seq     atomic.Uint64
}

func NewMetricStore() *MetricStore {
	return &MetricStore{
		samples: make([]storedSample, 0, 1024),
	}
}

// Record - 샘플 저장 후 id 반환
//
// 잘 구성된 샘플은 절대 거부하지 않고, 블로킹 I/O도 없다.
// 필수 필드가 빠진 샘플만 경계에서 동기적으로 거부한다.
func (s *MetricStore) Record(sample model.Sample) (string, error) {
	if sample == nil {
		return "", model.ErrMissingTimestamp
	}
	if err := sample.Validate(); err != nil {
		return "", err
	}

	id := fmt.Sprintf("%s-%d-%d", sample.Kind(), sample.Time().UnixMilli(), s.seq.Add(1))

	s.mu.Lock()
	s.samples = append(s.samples, storedSample{id: id, sample: sample})
	s.mu.Unlock()

	return id, nil
}

// Query - timestamp > now - range 인 샘플 반환 (순서 보장 없음)
//
// 시간순이 필요한 호출자는 직접 정렬해야 한다.
func (s *MetricStore) Query(timeRange string) []model.Sample {
	dur, ok := queryRanges[timeRange]
	if !ok {
		dur = defaultRange
	}
	return s.QueryWindow(dur)
}

// QueryWindow - 기간(duration) 기준 조회. ReportGenerator가 직접 사용한다.
func (s *MetricStore) QueryWindow(window time.Duration) []model.Sample {
	cutoff := time.Now().Add(-window)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Sample, 0, len(s.samples))
	for _, entry := range s.samples {
		if entry.sample.Time().After(cutoff) {
			out = append(out, entry.sample)
		}
	}
	return out
}

// Evict - timestamp < now - maxAge 인 샘플 제거, 제거한 개수 반환
//
// snapshot-then-filter 방식이라 동시에 들어오는 Record와 파괴적으로
// 경합하지 않는다. eviction 도중 기록된 샘플은 유지된다.
func (s *MetricStore) Evict(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]storedSample, 0, len(s.samples))
	for _, entry := range s.samples {
		if !entry.sample.Time().Before(cutoff) {
			kept = append(kept, entry)
		}
	}
	evicted := len(s.samples) - len(kept)
	s.samples = kept
	return evicted
}

// Len - 현재 저장된 샘플 수
func (s *MetricStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.samples)
}
