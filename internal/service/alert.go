// Alert 생성 비즈니스 로직 정의
//
// 처리 흐름:
//  1. kind/message 검증 (빈 입력은 경계에서 거부)
//  2. uuid로 고유 id 부여, 고정 테이블로 심각도 결정
//  3. 인메모리 알림 로그에 append
//  4. alert_created 이벤트 발행
//  5. NotificationDispatcher 큐에 적재 (완료를 기다리지 않음)
//
// CreateAlert 자체는 동기적이고 블로킹하지 않는다. 영속화와 채널 전송은
// 디스패처 워커가 백그라운드에서 수행하며, 이후 알림과의 순서 보장은 없다.

package service

import (
	"errors"
	"time"

	"github.com/codepulse/backend/internal/exporter"
	"github.com/codepulse/backend/internal/model"
	"github.com/codepulse/backend/internal/store"
	"github.com/google/uuid"
)

var (
	ErrEmptyAlertKind    = errors.New("alert: empty kind")
	ErrEmptyAlertMessage = errors.New("alert: empty message")
)

// alertDispatcher - 디스패처 인터페이스 (테스트에서 fake로 대체)
type alertDispatcher interface {
	Enqueue(alert model.AlertRecord)
}

// AlertManager 구조체 정의
type AlertManager struct {
	log        *store.AlertLog
	dispatcher alertDispatcher
	publisher  *Publisher
}

// AlertManager 객체 생성
func NewAlertManager(log *store.AlertLog, dispatcher alertDispatcher, publisher *Publisher) *AlertManager {
	return &AlertManager{
		log:        log,
		dispatcher: dispatcher,
		publisher:  publisher,
	}
}

// CreateAlert - 알림 레코드 생성
//
// 잘 구성된 입력에 대해서는 절대 실패하지 않는다.
func (m *AlertManager) CreateAlert(kind model.AlertKind, message string) (model.AlertRecord, error) {
	if kind == "" {
		return model.AlertRecord{}, ErrEmptyAlertKind
	}
	if message == "" {
		return model.AlertRecord{}, ErrEmptyAlertMessage
	}

	record := model.AlertRecord{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
		Severity:  model.SeverityFor(kind),
	}

	m.log.Append(record)
	exporter.AlertsCreated.WithLabelValues(string(record.Severity)).Inc()

	m.publisher.Publish(Event{Type: EventAlertCreated, Alert: &record})

	// 영속화 + 채널 전송은 백그라운드. 여기서 기다리지 않는다.
	if m.dispatcher != nil {
		m.dispatcher.Enqueue(record)
	}

	return record, nil
}

// CreateFromTriggers - 평가기 트리거 목록을 알림으로 변환
func (m *AlertManager) CreateFromTriggers(triggers []model.Trigger) []model.AlertRecord {
	records := make([]model.AlertRecord, 0, len(triggers))
	for _, t := range triggers {
		record, err := m.CreateAlert(t.Kind, t.Message)
		if err != nil {
			// 평가기가 만든 트리거는 항상 유효해야 한다
			continue
		}
		records = append(records, record)
	}
	return records
}

// GetAlerts - severity 필터 조회 (API 표면)
func (m *AlertManager) GetAlerts(severity model.Severity) []model.AlertRecord {
	return m.log.All(severity)
}

// AlertsSince - cutoff 이후 알림 조회 (리포트 윈도우용)
func (m *AlertManager) AlertsSince(cutoff time.Time) []model.AlertRecord {
	return m.log.Since(cutoff)
}
