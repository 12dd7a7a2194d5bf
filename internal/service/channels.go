// 채널 설정 비즈니스 로직 정의
// handler에서 받은 요청을 검증하고 store 레이어(channels.json)에 위임

package service

import (
	"errors"
	"net/http"
	"strings"

	"github.com/codepulse/backend/internal/model"
)

var ErrInvalidChannelConfig = errors.New("invalid channel config")

// channelRepo - 파일 저장소 인터페이스
type channelRepo interface {
	GetChannelConfigs() ([]model.ChannelConfig, error)
	GetChannelConfigByID(id int) (*model.ChannelConfig, error)
	CreateChannelConfig(cfg model.ChannelConfig) (int, error)
	UpdateChannelConfig(id int, cfg model.ChannelConfig) error
	DeleteChannelConfig(id int) error
}

// ChannelConfigService - 사용자 정의 웹훅 채널 설정 CRUD
type ChannelConfigService struct {
	repo channelRepo
}

func NewChannelConfigService(repo channelRepo) *ChannelConfigService {
	return &ChannelConfigService{repo: repo}
}

func (s *ChannelConfigService) ListChannelConfigs() ([]model.ChannelConfig, error) {
	return s.repo.GetChannelConfigs()
}

func (s *ChannelConfigService) GetChannelConfig(id int) (*model.ChannelConfig, error) {
	return s.repo.GetChannelConfigByID(id)
}

func (s *ChannelConfigService) CreateChannelConfig(req model.ChannelConfigRequest) (int, error) {
	cfg, err := configFromRequest(req)
	if err != nil {
		return 0, err
	}
	return s.repo.CreateChannelConfig(cfg)
}

func (s *ChannelConfigService) UpdateChannelConfig(id int, req model.ChannelConfigRequest) error {
	cfg, err := configFromRequest(req)
	if err != nil {
		return err
	}
	return s.repo.UpdateChannelConfig(id, cfg)
}

func (s *ChannelConfigService) DeleteChannelConfig(id int) error {
	return s.repo.DeleteChannelConfig(id)
}

func configFromRequest(req model.ChannelConfigRequest) (model.ChannelConfig, error) {
	if strings.TrimSpace(req.URL) == "" {
		return model.ChannelConfig{}, ErrInvalidChannelConfig
	}

	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodPost
	}

	minSeverity := req.MinSeverity
	if minSeverity == "" {
		minSeverity = model.SeverityInfo
	}

	cfg := model.ChannelConfig{
		URL:         req.URL,
		Method:      method,
		Body:        req.Body,
		MinSeverity: minSeverity,
	}
	if req.Headers != nil {
		cfg.Headers = req.Headers
	} else {
		cfg.Headers = []model.ChannelHeader{}
	}
	return cfg, nil
}
