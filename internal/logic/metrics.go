package logic

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"daybook-backend/internal/journal"
)

// Metrics 服务指标。nil 时所有方法都是空操作。
type Metrics struct {
	transitions *prometheus.CounterVec
	sweeps      *prometheus.CounterVec
	aiCalls     *prometheus.CounterVec
	aiLatency   *prometheus.HistogramVec
	reminders   prometheus.Counter
}

// NewMetrics 注册到 reg，传 nil 时使用默认注册表
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "daybook_transitions_total",
				Help: "Lifecycle transitions by event and result",
			},
			[]string{"event", "result"},
		),
		sweeps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "daybook_sweep_entries_total",
				Help: "Entries touched by the cleanup sweep",
			},
			[]string{"action"},
		),
		aiCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "daybook_ai_calls_total",
				Help: "AI completions by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		aiLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "daybook_ai_call_duration_seconds",
				Help:    "AI completion latency",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
			},
			[]string{"kind"},
		),
		reminders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "daybook_follow_up_reminders_total",
			Help: "Follow-up reminders published",
		}),
	}
	reg.MustRegister(m.transitions, m.sweeps, m.aiCalls, m.aiLatency, m.reminders)
	return m
}

func (m *Metrics) transition(ev journal.Event, err error) {
	if m == nil {
		return
	}
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, journal.ErrInvalidTransition), errors.Is(err, journal.ErrDuplicateEntry):
		result = "rejected"
	default:
		result = "error"
	}
	m.transitions.WithLabelValues(string(ev), result).Inc()
}

func (m *Metrics) swept(closed, deleted int) {
	if m == nil {
		return
	}
	m.sweeps.WithLabelValues("closed").Add(float64(closed))
	m.sweeps.WithLabelValues("deleted").Add(float64(deleted))
}

func (m *Metrics) aiCall(kind string, err error, took time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.aiCalls.WithLabelValues(kind, outcome).Inc()
	m.aiLatency.WithLabelValues(kind).Observe(took.Seconds())
}

func (m *Metrics) reminded(n int) {
	if m == nil {
		return
	}
	m.reminders.Add(float64(n))
}
