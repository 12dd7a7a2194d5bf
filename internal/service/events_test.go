package service

import (
	"testing"

	"github.com/codepulse/backend/internal/model"
)

func TestPublishReachesSubscribers(t *testing.T) {
	p := NewPublisher()

	ch1, unsub1 := p.Subscribe()
	ch2, unsub2 := p.Subscribe()
	defer unsub1()
	defer unsub2()

	alert := model.AlertRecord{ID: "a-1", Kind: model.AlertSlowAnalysis, Severity: model.SeverityWarning}
	p.Publish(Event{Type: EventAlertCreated, Alert: &alert})

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case event := <-ch:
			if event.Type != EventAlertCreated || event.Alert.ID != "a-1" {
				t.Fatalf("unexpected event: %+v", event)
			}
		default:
			t.Fatalf("subscriber did not receive event")
		}
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	p := NewPublisher()

	ch, unsubscribe := p.Subscribe()
	if p.ListenerCount() != 1 {
		t.Fatalf("listener count = %d, want 1", p.ListenerCount())
	}

	unsubscribe()
	if p.ListenerCount() != 0 {
		t.Fatalf("listener count after unsubscribe = %d, want 0", p.ListenerCount())
	}
	if _, ok := <-ch; ok {
		t.Fatalf("channel must be closed after unsubscribe")
	}

	// 두 번 호출해도 안전해야 한다
	unsubscribe()
}

func TestPublishSkipsFullListener(t *testing.T) {
	p := NewPublisher()

	_, unsubscribe := p.Subscribe()
	defer unsubscribe()

	// 버퍼(32)를 넘겨도 Publish는 블로킹 없이 돌아와야 한다
	for i := 0; i < 100; i++ {
		p.Publish(Event{Type: EventReportGenerated})
	}
}
