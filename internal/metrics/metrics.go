package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"TrendSentinel/internal/model"
)

// Metrics holds the Prometheus collectors of the service.
type Metrics struct {
	Computations  *prometheus.CounterVec // labels: status
	ComputeDur    prometheus.Histogram
	FetchErrors   *prometheus.CounterVec // labels: source
	SignalChanges prometheus.Counter
	Notifications *prometheus.CounterVec // labels: result
}

// NewMetrics builds all collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trendsentinel_dmi_computations_total",
			Help: "DMI/ADX computations by result status",
		}, []string{"status"}),
		ComputeDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trendsentinel_dmi_compute_seconds",
			Help:    "Time spent computing DMI/ADX for one series",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trendsentinel_fetch_errors_total",
			Help: "Price history fetch failures by data source",
		}, []string{"source"}),
		SignalChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trendsentinel_signal_changes_total",
			Help: "Signal label changes observed on watched symbols",
		}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trendsentinel_notifications_total",
			Help: "Notifications sent by result",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.Computations,
		m.ComputeDur,
		m.FetchErrors,
		m.SignalChanges,
		m.Notifications,
	)
	return m
}

// ObserveComputation records one engine run. Safe on a nil receiver.
func (m *Metrics) ObserveComputation(status model.DMIStatus, took time.Duration) {
	if m == nil {
		return
	}
	m.Computations.WithLabelValues(string(status)).Inc()
	m.ComputeDur.Observe(took.Seconds())
}

// FetchFailed counts a failed fetch from source. Safe on a nil receiver.
func (m *Metrics) FetchFailed(source string) {
	if m == nil {
		return
	}
	m.FetchErrors.WithLabelValues(source).Inc()
}

// SignalChanged counts a signal transition. Safe on a nil receiver.
func (m *Metrics) SignalChanged() {
	if m == nil {
		return
	}
	m.SignalChanges.Inc()
}

// Notified counts a notification attempt. Safe on a nil receiver.
func (m *Metrics) Notified(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Notifications.WithLabelValues(result).Inc()
}
