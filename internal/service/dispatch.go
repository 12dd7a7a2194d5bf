// 알림 채널 디스패처 정의
//
// 처리 흐름 (워커 고루틴 1개):
//  1. 큐에서 알림을 꺼낸다 (큐가 가득 차면 Enqueue가 버리고 로그만 남김)
//  2. 날짜별 알림 로그 파일에 먼저 append - 채널 결과와 무관하게 항상 수행
//  3. 채널별 predicate 평가 후 전송: 타임아웃 + 제한 횟수 재시도
//
// 채널 하나의 실패는 다른 채널 전송을 막지 않고 호출자에게 전파되지도
// 않는다. 최종 실패 시 dead-letter는 2번의 파일 기록이 대신한다.

package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/codepulse/backend/internal/exporter"
	"github.com/codepulse/backend/internal/model"
)

// Channel - 외부 알림 채널 인터페이스
type Channel interface {
	// Name - 로그/지표용 채널 이름
	Name() string

	// Wants - 이 심각도의 알림을 받을지 여부
	Wants(severity model.Severity) bool

	// Send - 알림 전송. ctx 타임아웃을 존중해야 한다.
	Send(ctx context.Context, alert model.AlertRecord) error
}

// alertPersister - 파일 영속화 인터페이스 (nil이면 비활성)
type alertPersister interface {
	AppendAlert(alert model.AlertRecord) error
}

// Dispatcher 구조체 정의
type Dispatcher struct {
	queue       chan model.AlertRecord
	channels    []Channel
	persister   alertPersister
	sendTimeout time.Duration
	maxRetries  int
	backoff     time.Duration

	stopOnce sync.Once
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewDispatcher - persister가 nil이면 파일 영속화 없이 동작
func NewDispatcher(queueSize int, persister alertPersister, channels ...Channel) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Dispatcher{
		queue:       make(chan model.AlertRecord, queueSize),
		channels:    channels,
		persister:   persister,
		sendTimeout: 10 * time.Second,
		maxRetries:  2,
		backoff:     time.Second,
		stopChan:    make(chan struct{}),
	}
}

// Start - 워커 고루틴 기동
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for {
			select {
			case alert := <-d.queue:
				exporter.DispatchQueueDepth.Set(float64(len(d.queue)))
				d.dispatch(alert)
			case <-d.stopChan:
				// 종료 전 남은 큐 비우기
				for {
					select {
					case alert := <-d.queue:
						d.dispatch(alert)
					default:
						return
					}
				}
			}
		}
	}()
}

// Stop - 워커 종료 후 큐가 빌 때까지 대기
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() { close(d.stopChan) })
	d.wg.Wait()
}

// Enqueue - 알림을 디스패치 큐에 적재 (블로킹 없음, best-effort)
//
// 큐가 가득 차면 버린다. 느린 외부 채널의 backpressure가
// 알림 생성 경로까지 올라오지 않게 하기 위한 선언된 정책이다.
func (d *Dispatcher) Enqueue(alert model.AlertRecord) {
	select {
	case d.queue <- alert:
		exporter.DispatchQueueDepth.Set(float64(len(d.queue)))
	default:
		log.Printf("[Dispatch] Queue full, dropping alert (id=%s, kind=%s)", alert.ID, alert.Kind)
		exporter.NotificationSends.WithLabelValues("queue", "dropped").Inc()
	}
}

func (d *Dispatcher) dispatch(alert model.AlertRecord) {
	// 1. 파일 영속화 - 채널 가용성과 무관하게 절대 건너뛰지 않는다
	if d.persister != nil {
		if err := d.persister.AppendAlert(alert); err != nil {
			log.Printf("[Dispatch] Failed to persist alert (id=%s): %v", alert.ID, err)
		}
	}

	// 2. 채널별 독립 전송
	for _, ch := range d.channels {
		if !ch.Wants(alert.Severity) {
			continue
		}
		if err := d.sendWithRetry(ch, alert); err != nil {
			// dead-letter: 1번의 파일 기록이 내구 기록이다
			log.Printf("[Dispatch] Giving up on %s after %d attempts (id=%s): %v", ch.Name(), d.maxRetries+1, alert.ID, err)
			exporter.NotificationSends.WithLabelValues(ch.Name(), "failed").Inc()
			continue
		}
		exporter.NotificationSends.WithLabelValues(ch.Name(), "ok").Inc()
	}
}

// sendWithRetry - 타임아웃 + 백오프 재시도
func (d *Dispatcher) sendWithRetry(ch Channel, alert model.AlertRecord) error {
	var lastErr error
	for attempt := 0; attempt <= d.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(d.backoff * time.Duration(attempt))
		}

		ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
		err := ch.Send(ctx, alert)
		cancel()

		if err == nil {
			return nil
		}
		lastErr = err
		log.Printf("[Dispatch] Send to %s failed (id=%s, attempt=%d): %v", ch.Name(), alert.ID, attempt+1, err)
	}
	return lastErr
}
