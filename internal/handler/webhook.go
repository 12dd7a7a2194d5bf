// 저장소 push 웹훅 요청을 처리하는 핸들러
//
// 요청 흐름:
//  1. 저장소 연동이 POST /webhook/push로 변경 파일 전송
//  2. JSON 페이로드를 PushWebhook 구조체로 파싱
//  3. 파일별로 비동기 분석 요청 후 접수 개수 응답

package handler

import (
	"log"
	"net/http"

	"github.com/codepulse/backend/internal/model"
	"github.com/codepulse/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// Push 웹훅 핸들러 구조체 정의
type PushWebhookHandler struct {
	analysisService *service.AnalysisService
}

func NewPushWebhookHandler(analysisService *service.AnalysisService) *PushWebhookHandler {
	return &PushWebhookHandler{
		analysisService: analysisService,
	}
}

func (h *PushWebhookHandler) Push(c *gin.Context) {
	var webhook model.PushWebhook

	if err := c.ShouldBindJSON(&webhook); err != nil {
		log.Printf("Failed to parse push webhook: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	log.Printf("Received push webhook: repository=%s, ref=%s, pusher=%s, fileCount=%d",
		webhook.Repository, webhook.Ref, webhook.Pusher, len(webhook.Files))

	queued := 0
	for _, file := range webhook.Files {
		if file.Path == "" || file.Content == "" {
			log.Printf("  Skipping file with empty path or content")
			continue
		}
		// 분석은 비동기. 웹훅 응답은 엔진을 기다리지 않는다.
		h.analysisService.AnalyzeAsync(file.Path, file.Content)
		queued++
	}

	c.JSON(http.StatusOK, model.PushWebhookResponse{
		Status:    "received",
		FileCount: len(webhook.Files),
		Queued:    queued,
	})
}
