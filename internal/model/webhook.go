// 저장소 push 웹훅 페이로드 및 알림 채널 설정 구조체 정의
// handler, service, store 레이어에서 공통으로 사용하기 때문에 model 레이어에 별도로 정의

package model

import "time"

// PushFile - push에 포함된 파일 하나
type PushFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// PushWebhook - 저장소 push 웹훅 페이로드
// push 1회에 여러 파일이 묶여서 전송 가능
type PushWebhook struct {
	Repository string     `json:"repository"`
	Ref        string     `json:"ref"`
	Pusher     string     `json:"pusher"`
	Files      []PushFile `json:"files"`
}

// ChannelHeader - 헤더 키-값 쌍
type ChannelHeader struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ChannelConfig - 파일로 영속화되는 사용자 정의 웹훅 채널 설정
//
// MinSeverity 미만의 알림은 해당 채널로 전송하지 않는다.
type ChannelConfig struct {
	ID          int             `json:"id"`
	URL         string          `json:"url"`
	Method      string          `json:"method"`
	Headers     []ChannelHeader `json:"headers"`
	Body        string          `json:"body"` // 템플릿 (internal/template 참고)
	MinSeverity Severity        `json:"min_severity"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ChannelConfigRequest - 채널 설정 생성/수정 요청 구조체
type ChannelConfigRequest struct {
	URL         string          `json:"url"`
	Method      string          `json:"method"`
	Headers     []ChannelHeader `json:"headers"`
	Body        string          `json:"body"`
	MinSeverity Severity        `json:"min_severity"`
}

// ChannelConfigResponse - 단건 조회 응답
type ChannelConfigResponse struct {
	Status string         `json:"status"`
	Data   *ChannelConfig `json:"data"`
}

// ChannelConfigListResponse - 목록 조회 응답
type ChannelConfigListResponse struct {
	Status string          `json:"status"`
	Data   []ChannelConfig `json:"data"`
}

// ChannelConfigMutationResponse - 생성/수정/삭제 응답
type ChannelConfigMutationResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	ID      int    `json:"id,omitempty"`
}
