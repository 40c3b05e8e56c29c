package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/graft/pkg/domain"
)

// Metrics collects build, action and warning series.
type Metrics struct {
	registry *prometheus.Registry

	builds         *prometheus.CounterVec
	buildDuration  *prometheus.HistogramVec
	actionDuration *prometheus.HistogramVec
	actionFailures *prometheus.CounterVec
	warnings       *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graft_builds_total",
				Help: "Total number of builds by avatar and result",
			},
			[]string{"avatar", "result"},
		),
		buildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "graft_build_duration_seconds",
				Help:    "Duration of whole builds",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{"avatar"},
		),
		actionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "graft_action_duration_seconds",
				Help:    "Duration of builder actions",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"action"},
		),
		actionFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graft_action_failures_total",
				Help: "Total number of failed builder actions",
			},
			[]string{"action"},
		),
		warnings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graft_warnings_total",
				Help: "Total number of build warnings by feature",
			},
			[]string{"feature"},
		),
	}
	m.registry.MustRegister(m.builds, m.buildDuration, m.actionDuration, m.actionFailures, m.warnings)
	return m
}

// Registry exposes the collectors, e.g. for promhttp.HandlerFor.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Hooks returns build hooks feeding the collectors.
func (m *Metrics) Hooks() domain.BuildHooks {
	return domain.BuildHooks{
		OnBuildFinish: func(_ context.Context, e *domain.BuildEvent) {
			result := "success"
			if e.Err != nil {
				result = "failure"
			}
			m.builds.WithLabelValues(e.Avatar, result).Inc()
			m.buildDuration.WithLabelValues(e.Avatar).Observe(e.Duration.Seconds())
		},
		OnActionDone: func(_ context.Context, e *domain.ActionEvent) {
			m.actionDuration.WithLabelValues(e.Action).Observe(e.Duration.Seconds())
			if e.Err != nil {
				m.actionFailures.WithLabelValues(e.Action).Inc()
			}
		},
		OnWarning: func(_ context.Context, e *domain.WarningEvent) {
			feature := e.Warning.Feature
			if feature == "" {
				feature = "finalize"
			}
			m.warnings.WithLabelValues(feature).Inc()
		},
	}
}

// WriteTextfile writes every series in the text exposition format, atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
