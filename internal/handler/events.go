// 파이프라인 이벤트 SSE 스트리밍 핸들러
//
// 대시보드가 폴링 없이 실시간으로 샘플/알림/리포트 이벤트를 받도록
// Server-Sent Events로 내려준다. 연결 1개당 Publisher 리스너 1개.

package handler

import (
	"io"
	"log"

	"github.com/codepulse/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// EventsHandler 구조체 정의
type EventsHandler struct {
	publisher *service.Publisher
}

func NewEventsHandler(publisher *service.Publisher) *EventsHandler {
	return &EventsHandler{publisher: publisher}
}

// Stream godoc
// @Summary Stream pipeline events (SSE)
// @Tags events
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Router /api/v1/events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	events, unsubscribe := h.publisher.Subscribe()
	defer unsubscribe()

	log.Printf("[Events] SSE client connected (listeners=%d)", h.publisher.ListenerCount())

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(string(event.Type), event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})

	log.Printf("[Events] SSE client disconnected")
}
