// Package template provides webhook body template rendering.
//
// 지원하는 변수 형식:
//
//	{{alert.id}}, {{alert.kind}}, {{alert.severity}},
//	{{alert.message}}, {{alert.created_at}}
package template

import (
	"strings"
	"time"

	"github.com/codepulse/backend/internal/model"
)

// AlertData - 템플릿 렌더링에 사용할 Alert 데이터
type AlertData struct {
	ID        string
	Kind      string
	Severity  string
	Message   string
	CreatedAt time.Time
}

// AlertDataFromRecord - model.AlertRecord에서 AlertData 생성
func AlertDataFromRecord(alert model.AlertRecord) AlertData {
	return AlertData{
		ID:        alert.ID,
		Kind:      string(alert.Kind),
		Severity:  string(alert.Severity),
		Message:   alert.Message,
		CreatedAt: alert.CreatedAt,
	}
}

// RenderBody - webhook body 템플릿의 변수를 실제 값으로 치환
//
// alert가 nil이면 모든 변수를 빈 문자열로 치환한다.
// body가 비어 있으면 기본 JSON 페이로드 형태를 쓰는 대신 빈 문자열을
// 그대로 반환한다 (기본 body 구성은 호출자 몫).
func RenderBody(body string, alert *AlertData) string {
	pairs := make([]string, 0, 10)

	if alert != nil {
		pairs = append(pairs,
			"{{alert.id}}", alert.ID,
			"{{alert.kind}}", alert.Kind,
			"{{alert.severity}}", alert.Severity,
			"{{alert.message}}", alert.Message,
			"{{alert.created_at}}", alert.CreatedAt.Format(time.RFC3339),
		)
	} else {
		pairs = append(pairs,
			"{{alert.id}}", "",
			"{{alert.kind}}", "",
			"{{alert.severity}}", "",
			"{{alert.message}}", "",
			"{{alert.created_at}}", "",
		)
	}

	return strings.NewReplacer(pairs...).Replace(body)
}
