package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/codepulse/backend/internal/client"
	"github.com/codepulse/backend/internal/config"
	"github.com/codepulse/backend/internal/handler"
	"github.com/codepulse/backend/internal/service"
	"github.com/codepulse/backend/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// .env 파일이 있으면 로드 (없어도 무시)
	_ = godotenv.Load()

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 저장소 레이어
	fileStore, err := store.NewFileStore(cfg.Pipeline.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize file store: %v", err)
	}
	metricStore := store.NewMetricStore()

	// 영속화가 켜져 있으면 파일이 내구 기록이므로 메모리 로그는 무제한,
	// 꺼져 있으면 최근 N개만 유지한다
	alertCap := 0
	if !cfg.Pipeline.PersistAlerts {
		alertCap = store.DefaultAlertCap
	}
	alertLog := store.NewAlertLog(alertCap)

	// 외부 클라이언트
	engineClient := client.NewEngineClient(cfg.Engine)
	slackClient := client.NewSlackClient(cfg.Slack)
	pagerClient := client.NewPagerClient(cfg.Pager)

	var insight *client.InsightClient
	if cfg.Insight.APIKey != "" {
		insight, err = client.NewInsightClient(cfg.Insight)
		if err != nil {
			log.Printf("[Main] Failed to initialize insight client, reports will have no summary: %v", err)
			insight = nil
		}
	}

	// 알림 파이프라인
	publisher := service.NewPublisher()

	webhookChannel := service.NewWebhookChannel(fileStore)
	var dispatcher *service.Dispatcher
	if cfg.Pipeline.PersistAlerts {
		dispatcher = service.NewDispatcher(cfg.Pipeline.QueueSize, fileStore, slackClient, pagerClient, webhookChannel)
	} else {
		dispatcher = service.NewDispatcher(cfg.Pipeline.QueueSize, nil, slackClient, pagerClient, webhookChannel)
	}
	dispatcher.Start()

	alertManager := service.NewAlertManager(alertLog, dispatcher, publisher)
	evaluator := service.NewThresholdEvaluator(cfg.Thresholds)

	// 리포트 + 스케줄러
	var reportGenerator *service.ReportGenerator
	if insight != nil {
		reportGenerator = service.NewReportGenerator(metricStore, alertManager, fileStore, publisher, insight)
	} else {
		reportGenerator = service.NewReportGenerator(metricStore, alertManager, fileStore, publisher, nil)
	}

	sampler := service.NewSystemSampler()
	scheduler := service.NewScheduler(metricStore, sampler, evaluator, alertManager, reportGenerator,
		cfg.Pipeline.TickInterval, cfg.Pipeline.EvictionInterval, cfg.Pipeline.Retention)
	scheduler.Start(ctx)

	// 분석 서비스
	analysisService := service.NewAnalysisService(engineClient, metricStore, evaluator, alertManager, publisher, sampler)

	// 채널 설정 CRUD
	channelService := service.NewChannelConfigService(fileStore)

	// 인증 (선택: 미설정 시 설정 API가 보호 없이 노출된다)
	authService, authErr := service.NewAuthService(cfg.Auth)
	if authErr != nil {
		log.Printf("[Main] Auth disabled (%v), settings API will be unprotected", authErr)
	}

	router := gin.Default()
	router.Use(handler.CORSMiddleware(cfg.Server.CORSOrigins))
	router.Use(handler.RateLimitMiddleware(cfg.Server.RateLimit, cfg.Server.RateBurst))

	router.GET("/ping", handler.Ping)
	router.GET("/", handler.Root)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	analyzeHandler := handler.NewAnalyzeHandler(analysisService)
	pushHandler := handler.NewPushWebhookHandler(analysisService)
	metricsHandler := handler.NewMetricsHandler(metricStore, alertManager, reportGenerator, fileStore)
	eventsHandler := handler.NewEventsHandler(publisher)
	channelHandler := handler.NewChannelSettingsHandler(channelService)

	router.POST("/webhook/push", pushHandler.Push)

	api := router.Group("/api/v1")
	{
		api.POST("/analyze", analyzeHandler.Analyze)
		api.GET("/metrics", metricsHandler.GetMetrics)
		api.GET("/alerts", metricsHandler.GetAlerts)
		api.GET("/reports/latest", metricsHandler.GetLatestReport)
		api.GET("/reports/:date", metricsHandler.GetReportByDate)
		api.GET("/events", eventsHandler.Stream)
	}

	settings := api.Group("/settings")
	if authService != nil {
		authHandler := handler.NewAuthHandler(authService)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/me", handler.AuthMiddleware(authService), authHandler.Me)
		settings.Use(handler.AuthMiddleware(authService))
	}
	{
		settings.GET("/channels", channelHandler.ListChannelConfigs)
		settings.GET("/channels/:id", channelHandler.GetChannelConfig)
		settings.POST("/channels", channelHandler.CreateChannelConfig)
		settings.PUT("/channels/:id", channelHandler.UpdateChannelConfig)
		settings.DELETE("/channels/:id", channelHandler.DeleteChannelConfig)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("[Main] Listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("[Main] Shutting down")

	// 스케줄러/디스패처를 먼저 멈춰 진행 중인 틱과 큐를 비운다
	scheduler.Stop()
	dispatcher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[Main] Forced shutdown: %v", err)
	}
}
