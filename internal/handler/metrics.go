// 대시보드 조회 표면: 샘플 / 알림 / 리포트

package handler

import (
	"net/http"

	"github.com/codepulse/backend/internal/model"
	"github.com/codepulse/backend/internal/service"
	"github.com/codepulse/backend/internal/store"
	"github.com/gin-gonic/gin"
)

// MetricsHandler 구조체 정의
type MetricsHandler struct {
	metricStore  *store.MetricStore
	alertManager *service.AlertManager
	reports      *service.ReportGenerator
	fileStore    *store.FileStore
}

func NewMetricsHandler(metricStore *store.MetricStore, alertManager *service.AlertManager, reports *service.ReportGenerator, fileStore *store.FileStore) *MetricsHandler {
	return &MetricsHandler{
		metricStore:  metricStore,
		alertManager: alertManager,
		reports:      reports,
		fileStore:    fileStore,
	}
}

// GetMetrics godoc
// @Summary Query samples in a time range
// @Tags metrics
// @Produce json
// @Param range query string false "1h, 24h or 7d (default 1h)"
// @Success 200 {object} model.MetricsResponse
// @Router /api/v1/metrics [get]
func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	timeRange := c.DefaultQuery("range", "1h")

	// 모르는 range 값은 store가 1h로 처리한다
	samples := h.metricStore.Query(timeRange)

	c.JSON(http.StatusOK, model.MetricsResponse{
		Status: "success",
		Range:  timeRange,
		Data:   samples,
	})
}

// GetAlerts godoc
// @Summary List alerts, optionally filtered by severity
// @Tags alerts
// @Produce json
// @Param severity query string false "info, warning or critical"
// @Success 200 {object} model.AlertListResponse
// @Router /api/v1/alerts [get]
func (h *MetricsHandler) GetAlerts(c *gin.Context) {
	severity := model.Severity(c.Query("severity"))

	c.JSON(http.StatusOK, model.AlertListResponse{
		Status: "success",
		Data:   h.alertManager.GetAlerts(severity),
	})
}

// GetLatestReport - 마지막으로 생성된 리포트 조회
func (h *MetricsHandler) GetLatestReport(c *gin.Context) {
	if report := h.reports.Last(); report != nil {
		c.JSON(http.StatusOK, model.ReportResponse{Status: "success", Data: report})
		return
	}

	// 프로세스 기동 후 아직 생성 전이면 디스크의 최신 파일로 폴백
	day, err := h.fileStore.LatestReportDay()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report available"})
		return
	}
	report, err := h.fileStore.ReadReport(day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.ReportResponse{Status: "success", Data: report})
}

// GetReportByDate - 날짜(YYYY-MM-DD)로 리포트 조회
func (h *MetricsHandler) GetReportByDate(c *gin.Context) {
	report, err := h.fileStore.ReadReport(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.ReportResponse{Status: "success", Data: report})
}
