// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics exports Prometheus metrics about the attempts,
// response classifications and recovery decisions of an
// httpretry.Client.
//
// Metrics are collected by event handlers:
//
//	m := metrics.New(prometheus.DefaultRegisterer)
//	handlers := &httpretry.HandlerGroup{}
//	m.Install(handlers)
//	client := &httpretry.Client{Handlers: handlers}
package metrics

import (
	"github.com/gogama/httpretry"
	"github.com/gogama/httpretry/request"
	"github.com/gogama/httpretry/retryafter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// DefaultNamespace is the namespace of every metric.
	DefaultNamespace = "httpretry"

	// ErrorLabel is the classification label of an attempt which
	// failed without a response.
	ErrorLabel = "Error"
)

// Metrics holds the Prometheus collectors updated by the handlers
// Install adds.
type Metrics struct {
	// Attempts counts attempts by the classification of their
	// response, or ErrorLabel if there was none.
	Attempts *prometheus.CounterVec
	// RecoveryActions counts recovery decisions by action kind.
	RecoveryActions *prometheus.CounterVec
	// RetryAfterHints counts failed responses by the kind of their
	// Retry-After hint.
	RetryAfterHints *prometheus.CounterVec
	// ExecutionAttempts observes the number of attempts each execution
	// made.
	ExecutionAttempts prometheus.Histogram
	// ExecutionDuration observes the duration of each execution.
	ExecutionDuration prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Attempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: DefaultNamespace,
				Name:      "attempts_total",
				Help:      "Total number of request attempts by response classification",
			},
			[]string{"classification"},
		),
		RecoveryActions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: DefaultNamespace,
				Name:      "recovery_actions_total",
				Help:      "Total number of recovery decisions by action",
			},
			[]string{"action"},
		),
		RetryAfterHints: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: DefaultNamespace,
				Name:      "retry_after_hints_total",
				Help:      "Total number of failed responses by Retry-After hint kind",
			},
			[]string{"kind"},
		),
		ExecutionAttempts: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: DefaultNamespace,
				Name:      "execution_attempts",
				Help:      "Number of attempts made by each plan execution",
				Buckets:   []float64{1, 2, 3, 4, 6, 8, 12, 16},
			},
		),
		ExecutionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: DefaultNamespace,
				Name:      "execution_duration_seconds",
				Help:      "Duration of plan executions, including waits between attempts",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
}

// Install adds the handlers which update m to g.
func (m *Metrics) Install(g *httpretry.HandlerGroup) {
	g.PushBack(httpretry.AfterAttempt, httpretry.HandlerFunc(m.afterAttempt))
	g.PushBack(httpretry.AfterRecoveryDecision, httpretry.HandlerFunc(m.afterRecoveryDecision))
	g.PushBack(httpretry.AfterExecutionEnd, httpretry.HandlerFunc(m.afterExecutionEnd))
}

func (m *Metrics) afterAttempt(_ httpretry.Event, e *request.Execution) {
	if e.Response == nil {
		m.Attempts.WithLabelValues(ErrorLabel).Inc()
		return
	}

	m.Attempts.WithLabelValues(e.Classification.String()).Inc()
	if e.Classification.Failed() {
		hint := retryafter.FromHeader(e.Response.Header)
		m.RetryAfterHints.WithLabelValues(hint.Kind.String()).Inc()
	}
}

func (m *Metrics) afterRecoveryDecision(_ httpretry.Event, e *request.Execution) {
	m.RecoveryActions.WithLabelValues(e.Action.Kind.String()).Inc()
}

func (m *Metrics) afterExecutionEnd(_ httpretry.Event, e *request.Execution) {
	m.ExecutionAttempts.Observe(float64(e.Attempt + 1))
	m.ExecutionDuration.Observe(e.Duration().Seconds())
}
