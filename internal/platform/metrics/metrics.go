// Package metrics exposes Prometheus instruments for the analysis pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"stock_analysis/internal/feature/analysis/usecase"
)

const namespace = "stock_analysis"

// PrometheusMetrics は分析パイプラインの試行とセクション結果を記録します。
type PrometheusMetrics struct {
	attempts        *prometheus.CounterVec
	sectionOutcomes *prometheus.CounterVec
	sectionDuration *prometheus.HistogramVec
}

var _ usecase.Metrics = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics registers the instruments on reg
// (prometheus.DefaultRegisterer when nil).
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_attempts_total",
			Help:      "LLM gateway calls per section and result.",
		}, []string{"section", "result"}),
		sectionOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "section_outcomes_total",
			Help:      "Completed report sections by outcome (ok or placeholder).",
		}, []string{"section", "outcome"}),
		sectionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "section_duration_seconds",
			Help:      "Wall time of one section including fallback attempts.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		}, []string{"section"}),
	}
}

// ObserveAttempt records one gateway call.
func (m *PrometheusMetrics) ObserveAttempt(section string, success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	m.attempts.WithLabelValues(section, result).Inc()
}

// ObserveSection records the outcome of one section.
func (m *PrometheusMetrics) ObserveSection(section string, success bool, elapsed time.Duration) {
	outcome := "placeholder"
	if success {
		outcome = "ok"
	}
	m.sectionOutcomes.WithLabelValues(section, outcome).Inc()
	m.sectionDuration.WithLabelValues(section).Observe(elapsed.Seconds())
}
