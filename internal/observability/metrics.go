// Package observability はPrometheusメトリクスと死活監視を提供する。
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics はbot全体のカウンタ群。
type Metrics struct {
	webhookEvents *prometheus.CounterVec
	resolutions   *prometheus.CounterVec
	pushesSent    prometheus.Counter
	pushFailures  prometheus.Counter
}

// NewMetrics はカウンタを作ってregに登録する。
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		webhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "otenkibot_webhook_events_total",
			Help: "Webhook events received, by event type.",
		}, []string{"type"}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "otenkibot_area_resolutions_total",
			Help: "Place-name resolution attempts, by outcome.",
		}, []string{"outcome"}),
		pushesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "otenkibot_push_messages_sent_total",
			Help: "Daily push messages delivered.",
		}),
		pushFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "otenkibot_push_messages_failed_total",
			Help: "Daily push messages that could not be delivered.",
		}),
	}
	reg.MustRegister(m.webhookEvents, m.resolutions, m.pushesSent, m.pushFailures)
	return m
}

// NewNopMetrics はテスト用に未登録のカウンタ群を作る。
func NewNopMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

func (m *Metrics) WebhookEvent(eventType string) {
	m.webhookEvents.WithLabelValues(eventType).Inc()
}

func (m *Metrics) ResolutionSucceeded() {
	m.resolutions.WithLabelValues("ok").Inc()
}

func (m *Metrics) ResolutionFailed(outcome string) {
	m.resolutions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) PushSent() {
	m.pushesSent.Inc()
}

func (m *Metrics) PushFailed() {
	m.pushFailures.Inc()
}
