// 분석 요청을 처리하는 핸들러
//
// 요청 흐름:
//  1. 클라이언트가 POST /api/v1/analyze로 소스 전송
//  2. JSON 페이로드 파싱 및 검증
//  3. service 레이어가 엔진 호출 + 샘플 기록 + 임계치 평가까지 수행

package handler

import (
	"log"
	"net/http"

	"github.com/codepulse/backend/internal/model"
	"github.com/codepulse/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// AnalyzeRequest 구조체 정의
type AnalyzeRequest struct {
	SourceID string `json:"source_id" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// Analyze 핸들러 구조체 정의
type AnalyzeHandler struct {
	analysisService *service.AnalysisService
}

// Analyze 핸들러 객체 생성
func NewAnalyzeHandler(analysisService *service.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{
		analysisService: analysisService,
	}
}

// Analyze godoc
// @Summary Analyze a source file
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "Source to analyze"
// @Success 200 {object} model.AnalyzeResponse
// @Failure 400,502 {object} model.ErrorResponse
// @Router /api/v1/analyze [post]
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	sample, err := h.analysisService.Analyze(c.Request.Context(), req.SourceID, req.Content)
	if err != nil {
		log.Printf("Analysis failed (source=%s): %v", req.SourceID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "analysis failed"})
		return
	}

	c.JSON(http.StatusOK, model.AnalyzeResponse{
		Status:     "success",
		Sample:     sample,
		IssueCount: sample.IssueCount,
	})
}
