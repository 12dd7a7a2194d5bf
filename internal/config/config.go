// 환경변수 기반 설정 로딩
//
// 환경변수:
//   - PORT (default: 8080)
//   - DATA_DIR (default: ./data) - 알림 로그/리포트/채널 설정 저장 경로
//   - ENGINE_URL: 분석 엔진 URL (예: http://codepulse-engine.codepulse.svc:9000)
//   - SLACK_BOT_TOKEN, SLACK_CHANNEL_ID
//   - PAGER_URL, PAGER_ROUTING_KEY
//   - AI_API_KEY: 리포트 요약용 (선택)
//   - JWT_SECRET, ADMIN_LOGIN_ID, ADMIN_PASSWORD_HASH (bcrypt)
//   - CORS_ORIGINS: 콤마 구분 허용 Origin 목록
//   - THRESHOLDS_FILE: 임계치 YAML 파일 (선택, 환경변수보다 우선)

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig
	Engine     EngineConfig
	Slack      SlackConfig
	Pager      PagerConfig
	Insight    InsightConfig
	Auth       AuthConfig
	Pipeline   PipelineConfig
	Thresholds ThresholdConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
	RateLimit   float64 // 초당 허용 요청 수 (클라이언트 IP 기준)
	RateBurst   int
}

type EngineConfig struct {
	BaseURL string
}

type SlackConfig struct {
	BotToken  string
	ChannelID string
}

type PagerConfig struct {
	URL        string
	RoutingKey string
}

type InsightConfig struct {
	APIKey string
}

type AuthConfig struct {
	JWTSecret    string
	AccessTTL    string // time.ParseDuration 형식 (default: 1h)
	AdminLoginID string
	AdminHash    string // bcrypt 해시
}

type PipelineConfig struct {
	DataDir          string
	TickInterval     time.Duration // 시스템 샘플 + 리포트 주기 (default: 60s)
	EvictionInterval time.Duration // 샘플 eviction 주기 (default: 1h)
	Retention        time.Duration // 샘플 보존 기간 (default: 7d)
	QueueSize        int           // 알림 디스패치 큐 크기
	PersistAlerts    bool          // false면 메모리 로그만 유지 (최근 N개 제한)
}

// ThresholdConfig - 파이프라인 수명 동안 고정되는 임계치
type ThresholdConfig struct {
	AnalysisDurationMs float64 `yaml:"analysis_duration_ms"`
	MemoryBytes        uint64  `yaml:"memory_bytes"`
	CPUPercent         float64 `yaml:"cpu_percent"`
	ThroughputFloor    float64 `yaml:"throughput_floor"` // bytes/ms 하한
}

func Load() Config {
	cfg := Config{
		Server: ServerConfig{
			Port:        getenv("PORT", "8080"),
			CORSOrigins: splitCSV(os.Getenv("CORS_ORIGINS")),
			RateLimit:   getenvFloat("RATE_LIMIT_RPS", 20),
			RateBurst:   getenvInt("RATE_LIMIT_BURST", 40),
		},
		Engine: EngineConfig{
			BaseURL: getenv("ENGINE_URL", "http://codepulse-engine.codepulse.svc:9000"),
		},
		Slack: SlackConfig{
			BotToken:  os.Getenv("SLACK_BOT_TOKEN"),
			ChannelID: os.Getenv("SLACK_CHANNEL_ID"),
		},
		Pager: PagerConfig{
			URL:        getenv("PAGER_URL", "https://events.pagerduty.com/v2/enqueue"),
			RoutingKey: os.Getenv("PAGER_ROUTING_KEY"),
		},
		Insight: InsightConfig{
			APIKey: os.Getenv("AI_API_KEY"),
		},
		Auth: AuthConfig{
			JWTSecret:    os.Getenv("JWT_SECRET"),
			AccessTTL:    getenv("JWT_ACCESS_TTL", "1h"),
			AdminLoginID: getenv("ADMIN_LOGIN_ID", "admin"),
			AdminHash:    os.Getenv("ADMIN_PASSWORD_HASH"),
		},
		Pipeline: PipelineConfig{
			DataDir:          getenv("DATA_DIR", "./data"),
			TickInterval:     getenvDuration("PIPELINE_TICK_INTERVAL", 60*time.Second),
			EvictionInterval: getenvDuration("PIPELINE_EVICTION_INTERVAL", time.Hour),
			Retention:        getenvDuration("PIPELINE_RETENTION", 7*24*time.Hour),
			QueueSize:        getenvInt("DISPATCH_QUEUE_SIZE", 256),
			PersistAlerts:    getenvBool("PERSIST_ALERTS", true),
		},
		Thresholds: ThresholdConfig{
			AnalysisDurationMs: getenvFloat("THRESHOLD_ANALYSIS_DURATION_MS", 5000),
			MemoryBytes:        uint64(getenvInt("THRESHOLD_MEMORY_BYTES", 500*1024*1024)),
			CPUPercent:         getenvFloat("THRESHOLD_CPU_PERCENT", 80),
			ThroughputFloor:    getenvFloat("THRESHOLD_THROUGHPUT_FLOOR", 0.1),
		},
	}

	// THRESHOLDS_FILE이 지정되어 있으면 YAML 값으로 덮어쓴다
	if path := os.Getenv("THRESHOLDS_FILE"); path != "" {
		if err := loadThresholdFile(path, &cfg.Thresholds); err != nil {
			// 파일 오류는 기동을 막지 않고 환경변수 값으로 진행
			fmt.Fprintf(os.Stderr, "config: failed to load thresholds file %s: %v\n", path, err)
		}
	}

	return cfg
}

func loadThresholdFile(path string, out *ThresholdConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read thresholds file: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse thresholds file: %w", err)
	}
	return nil
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
