// 파이프라인 Prometheus 지표 정의

package exporter

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// --- 수집 지표 ---
	SamplesRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "codepulse_samples_recorded_total",
		Help: "Total samples recorded into the metric store",
	}, []string{"kind"}) // kind: analysis, system

	StoreSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "codepulse_metric_store_samples",
		Help: "Current number of samples held in the metric store",
	})

	// --- 알림 지표 ---
	AlertsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "codepulse_alerts_created_total",
		Help: "Total alerts created, by severity",
	}, []string{"severity"})

	NotificationSends = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "codepulse_notification_sends_total",
		Help: "Notification channel send attempts, by channel and outcome",
	}, []string{"channel", "outcome"}) // outcome: ok, failed, dropped

	DispatchQueueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "codepulse_dispatch_queue_depth",
		Help: "Alerts waiting in the notification dispatch queue",
	})

	// --- 리포트/엔진 지표 ---
	ReportsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "codepulse_reports_generated_total",
		Help: "Total periodic reports generated",
	})

	EngineDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "codepulse_engine_duration_ms",
		Help:    "Analysis engine call duration in milliseconds",
		Buckets: prometheus.ExponentialBuckets(10, 2, 12),
	})
)

func init() {
	prometheus.MustRegister(
		SamplesRecorded, StoreSize,
		AlertsCreated, NotificationSends, DispatchQueueDepth,
		ReportsGenerated, EngineDuration,
	)
}
