// 인메모리 알림 로그 정의
//
// AlertManager가 단독 소유한다. 프로세스 수명 동안 append 전용이며
// 자동 정리는 없다. 파일 영속화가 꺼진 경우에만 최근 maxEntries개로
// 제한한다 (메모리 로그가 유일한 기록이 되므로 무한 성장 방지).

package store

import (
	"sync"
	"time"

	"github.com/codepulse/backend/internal/model"
)

// DefaultAlertCap - 영속화 비활성 시 메모리에 보장되는 최근 알림 수
const DefaultAlertCap = 1000

type AlertLog struct {
	mu         sync.RWMutex
	records    []model.AlertRecord
	maxEntries int // 0이면 무제한
}

// NewAlertLog - maxEntries가 0이면 제한 없이 누적
func NewAlertLog(maxEntries int) *AlertLog {
	return &AlertLog{
		records:    make([]model.AlertRecord, 0, 256),
		maxEntries: maxEntries,
	}
}

// Append - 알림 레코드 추가
func (l *AlertLog) Append(record model.AlertRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, record)
	if l.maxEntries > 0 && len(l.records) > l.maxEntries {
		// 최근 maxEntries개만 유지
		l.records = l.records[len(l.records)-l.maxEntries:]
	}
}

// All - 전체 알림 조회 (severity 필터 선택)
func (l *AlertLog) All(severity model.Severity) []model.AlertRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.AlertRecord, 0, len(l.records))
	for _, r := range l.records {
		if severity != "" && r.Severity != severity {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Since - cutoff 이후 생성된 알림 조회 (리포트 윈도우 필터용)
func (l *AlertLog) Since(cutoff time.Time) []model.AlertRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.AlertRecord, 0, len(l.records))
	for _, r := range l.records {
		if r.CreatedAt.After(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

// Len - 현재 로그 길이
func (l *AlertLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
