// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logging provides event handlers which write structured logs
// of plan executions with zerolog.
package logging

import (
	"github.com/gogama/httpretry"
	"github.com/gogama/httpretry/httperror"
	"github.com/gogama/httpretry/request"
	"github.com/gogama/httpretry/retryafter"

	"github.com/rs/zerolog"
)

// Handlers returns a new handler group whose handlers log to logger.
//
// Successful attempts and execution starts are logged at debug level,
// failed attempts and plan timeouts at warn level, recovery decisions
// at info level, and the end of an execution at info level if it
// succeeded and error level otherwise.
func Handlers(logger zerolog.Logger) *httpretry.HandlerGroup {
	g := &httpretry.HandlerGroup{}
	Install(logger, g)
	return g
}

// Install adds handlers which log to logger to g.
func Install(logger zerolog.Logger, g *httpretry.HandlerGroup) {
	l := logHandler{logger}
	g.PushBack(httpretry.BeforeExecutionStart, httpretry.HandlerFunc(l.beforeExecutionStart))
	g.PushBack(httpretry.AfterAttempt, httpretry.HandlerFunc(l.afterAttempt))
	g.PushBack(httpretry.AfterRecoveryDecision, httpretry.HandlerFunc(l.afterRecoveryDecision))
	g.PushBack(httpretry.AfterPlanTimeout, httpretry.HandlerFunc(l.afterPlanTimeout))
	g.PushBack(httpretry.AfterExecutionEnd, httpretry.HandlerFunc(l.afterExecutionEnd))
}

type logHandler struct {
	logger zerolog.Logger
}

func (l logHandler) beforeExecutionStart(evt httpretry.Event, e *request.Execution) {
	l.logger.Debug().
		Str("event", evt.Name()).
		Str("method", e.Plan.Method).
		Str("url", e.Plan.URL.String()).
		Bool("idempotent", e.Plan.Idempotent()).
		Msg("execution starting")
}

func (l logHandler) afterAttempt(evt httpretry.Event, e *request.Execution) {
	var ev *zerolog.Event
	if e.Err == nil {
		ev = l.logger.Debug()
	} else {
		ev = l.logger.Warn().Err(e.Err)
	}

	ev = ev.
		Str("event", evt.Name()).
		Str("method", e.Plan.Method).
		Str("url", e.Plan.URL.String()).
		Int("attempt", e.Attempt)
	if e.Response != nil {
		ev = ev.
			Int("status", e.StatusCode()).
			Stringer("classification", e.Classification)
		if v, ok := httperror.As(e.Err); ok {
			hint := retryafter.FromHeader(v.HTTPResponse().Header)
			ev = ev.Stringer("retry_after", hint)
		}
	}
	if e.Timeout() {
		ev = ev.Int("attempt_timeouts", e.AttemptTimeouts)
	}
	ev.Msg("attempt finished")
}

func (l logHandler) afterRecoveryDecision(evt httpretry.Event, e *request.Execution) {
	ev := l.logger.Info().
		Str("event", evt.Name()).
		Str("method", e.Plan.Method).
		Str("url", e.Plan.URL.String()).
		Int("attempt", e.Attempt).
		Stringer("action", e.Action.Kind)
	if !e.Action.NotBefore.IsZero() {
		ev = ev.Time("not_before", e.Action.NotBefore)
	}
	ev.Msg("recovery decided")
}

func (l logHandler) afterPlanTimeout(evt httpretry.Event, e *request.Execution) {
	l.logger.Warn().
		Str("event", evt.Name()).
		Str("method", e.Plan.Method).
		Str("url", e.Plan.URL.String()).
		Int("attempt", e.Attempt).
		Msg("plan timed out")
}

func (l logHandler) afterExecutionEnd(evt httpretry.Event, e *request.Execution) {
	var ev *zerolog.Event
	if e.Err == nil {
		ev = l.logger.Info()
	} else {
		ev = l.logger.Error().Err(e.Err)
	}

	ev = ev.
		Str("event", evt.Name()).
		Str("method", e.Plan.Method).
		Str("url", e.Plan.URL.String()).
		Int("attempts", e.Attempt+1).
		Dur("duration", e.Duration())
	if e.Response != nil {
		ev = ev.Int("status", e.StatusCode())
	}
	ev.Msg("execution ended")
}
