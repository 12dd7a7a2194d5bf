package handler

import (
	"net/http"
	"strconv"

	"github.com/codepulse/backend/internal/model"
	"github.com/gin-gonic/gin"
)

// channelService - 서비스 인터페이스
type channelService interface {
	ListChannelConfigs() ([]model.ChannelConfig, error)
	GetChannelConfig(id int) (*model.ChannelConfig, error)
	CreateChannelConfig(req model.ChannelConfigRequest) (int, error)
	UpdateChannelConfig(id int, req model.ChannelConfigRequest) error
	DeleteChannelConfig(id int) error
}

// ChannelSettingsHandler - 알림 채널 설정 관련 핸들러
type ChannelSettingsHandler struct {
	svc channelService
}

func NewChannelSettingsHandler(svc channelService) *ChannelSettingsHandler {
	return &ChannelSettingsHandler{svc: svc}
}

// ListChannelConfigs godoc
// @Summary List notification channel configs
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.ChannelConfigListResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/settings/channels [get]
func (h *ChannelSettingsHandler) ListChannelConfigs(c *gin.Context) {
	configs, err := h.svc.ListChannelConfigs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.ChannelConfigListResponse{Status: "success", Data: configs})
}

// GetChannelConfig godoc
// @Summary Get a channel config by ID
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Channel Config ID"
// @Success 200 {object} model.ChannelConfigResponse
// @Failure 400,404 {object} model.ErrorResponse
// @Router /api/v1/settings/channels/{id} [get]
func (h *ChannelSettingsHandler) GetChannelConfig(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "invalid id"})
		return
	}
	cfg, err := h.svc.GetChannelConfig(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.ChannelConfigResponse{Status: "success", Data: cfg})
}

// CreateChannelConfig godoc
// @Summary Create a channel config
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ChannelConfigRequest true "Channel config"
// @Success 201 {object} model.ChannelConfigMutationResponse
// @Failure 400,500 {object} model.ErrorResponse
// @Router /api/v1/settings/channels [post]
func (h *ChannelSettingsHandler) CreateChannelConfig(c *gin.Context) {
	var req model.ChannelConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}
	id, err := h.svc.CreateChannelConfig(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, model.ChannelConfigMutationResponse{
		Status:  "success",
		Message: "채널 설정이 생성되었습니다.",
		ID:      id,
	})
}

// UpdateChannelConfig godoc
// @Summary Update a channel config
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Channel Config ID"
// @Param request body model.ChannelConfigRequest true "Channel config"
// @Success 200 {object} model.ChannelConfigMutationResponse
// @Failure 400,500 {object} model.ErrorResponse
// @Router /api/v1/settings/channels/{id} [put]
func (h *ChannelSettingsHandler) UpdateChannelConfig(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "invalid id"})
		return
	}
	var req model.ChannelConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}
	if err := h.svc.UpdateChannelConfig(id, req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.ChannelConfigMutationResponse{
		Status:  "success",
		Message: "채널 설정이 수정되었습니다.",
		ID:      id,
	})
}

// DeleteChannelConfig godoc
// @Summary Delete a channel config
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Channel Config ID"
// @Success 200 {object} model.ChannelConfigMutationResponse
// @Failure 400,500 {object} model.ErrorResponse
// @Router /api/v1/settings/channels/{id} [delete]
func (h *ChannelSettingsHandler) DeleteChannelConfig(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "invalid id"})
		return
	}
	if err := h.svc.DeleteChannelConfig(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.ChannelConfigMutationResponse{
		Status:  "success",
		Message: "채널 설정이 삭제되었습니다.",
		ID:      id,
	})
}
