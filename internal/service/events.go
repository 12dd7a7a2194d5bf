// 파이프라인 이벤트 발행기 정의
//
// 문자열 키 기반 동적 이벤트 대신 명시적인 리스너 등록 인터페이스를 쓴다.
// 전달 보장 없음(fire-and-observe): 발행 시점에 붙어 있는 리스너에게만
// 전달되고, 느린 리스너는 건너뛴다 (리스너 채널에 non-blocking 전송).

package service

import (
	"sync"

	"github.com/codepulse/backend/internal/model"
)

// EventType - 발행되는 이벤트 종류
type EventType string

const (
	EventAnalysisRecorded EventType = "analysis_recorded"
	EventAlertCreated     EventType = "alert_created"
	EventReportGenerated  EventType = "report_generated"
)

// Event - 리스너에게 전달되는 이벤트
// 타입에 따라 Sample/Alert/Report 중 하나만 채워진다.
type Event struct {
	Type   EventType             `json:"type"`
	Sample *model.AnalysisSample `json:"sample,omitempty"`
	Alert  *model.AlertRecord    `json:"alert,omitempty"`
	Report *model.Report         `json:"report,omitempty"`
}

// Publisher - 리스너 레지스트리
type Publisher struct {
	mu        sync.RWMutex
	listeners map[int]chan Event
	nextID    int
}

func NewPublisher() *Publisher {
	return &Publisher{
		listeners: make(map[int]chan Event),
	}
}

// Subscribe - 리스너 채널 등록, 해제 함수 반환
//
// 버퍼를 넉넉히 잡아 짧은 지연은 흡수하되, 가득 찬 리스너는 skip한다.
func (p *Publisher) Subscribe() (<-chan Event, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	ch := make(chan Event, 32)
	p.listeners[id] = ch

	unsubscribe := func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if ch, ok := p.listeners[id]; ok {
			delete(p.listeners, id)
			close(ch)
		}
	}
	return ch, unsubscribe
}

// Publish - 등록된 모든 리스너에게 이벤트 전달 (블로킹 없음)
func (p *Publisher) Publish(event Event) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, ch := range p.listeners {
		select {
		case ch <- event:
		default:
			// 리스너가 밀려 있으면 버린다. 재전송/버퍼링 없음.
		}
	}
}

// ListenerCount - 등록된 리스너 수 (테스트/모니터링용)
func (p *Publisher) ListenerCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.listeners)
}
