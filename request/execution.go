// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/gogama/httpretry/httperror"
	"github.com/gogama/httpretry/recovery"
	"github.com/gogama/httpretry/status"
	"github.com/gogama/httpretry/transient"
)

// An Execution is the state of a single Plan execution.
//
// The retry loop creates an Execution when it starts executing a Plan,
// updates it as attempts are made and returns it when the execution
// ends. Policies and event handlers may store their own data on it
// with SetValue, but should otherwise treat its fields as read-only.
// Reasonable exceptions are signing the Request before it is sent, or
// decoding the Body after it is read.
type Execution struct {
	// Plan is the plan being executed. It is never nil.
	Plan *Plan

	// Start is the time the execution started.
	Start time.Time

	// End is the time the execution ended. It is zero while the
	// execution is in flight.
	End time.Time

	// Attempt is the zero-based number of the current attempt: zero
	// for the initial attempt, one for the first retry, and so on.
	// After the execution ends it is the number of the last attempt.
	Attempt int

	// AttemptTimeouts counts the attempts which ended in an attempt
	// timeout. Plan timeouts are not counted.
	AttemptTimeouts int

	// Request is the HTTP request for the current, or last, attempt.
	Request *http.Request

	// Response is the HTTP response received in the most recent
	// attempt. It is nil if that attempt failed without a response or
	// is still underway.
	Response *http.Response

	// Err is the error of the most recent attempt, or nil.
	//
	// A transport failure has the type *url.Error. A response whose
	// status classified as a failure has the type
	// *httperror.Error[[]byte], whose Body is the response body. Once
	// the execution has ended, Err is the error returned by the
	// client's executing method.
	Err error

	// Body is the response body read in the most recent attempt. Both
	// Body and Err may be non-nil if the body was only partly read.
	Body []byte

	// Classification is the status classification of Response. It is
	// meaningless when Response is nil.
	Classification status.Classification

	// Action is the most recent recovery action decided for the
	// execution. It is the zero Action, an Abort, until the first
	// recovery decision is made. It is not cleared between attempts:
	// while a retry is underway, and after it succeeds, Action is the
	// decision which led to the retry. Handlers interested in the
	// current attempt's decision should read it on
	// AfterRecoveryDecision.
	Action recovery.Action

	data context.Context
}

// StatusCode returns the status code of the most recent response, or 0
// if there is none.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.StatusCode
}

// Header returns the header of the most recent response, or a nil
// header if there is none.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		return nil
	}

	return e.Response.Header
}

// Duration returns the duration of the execution: zero before it
// starts, the time since Start while it is in flight, and End minus
// Start once it has ended.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return 0
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return !e.Start.IsZero()
}

// Ended indicates whether the execution has ended. Once it has, the
// Execution no longer changes.
func (e *Execution) Ended() bool {
	return !e.End.IsZero()
}

// Timeout indicates whether Err is a timeout, either of the most
// recent attempt or of the plan.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// AppError returns the application failure carried by Err, if any.
func (e *Execution) AppError() (httperror.View, bool) {
	return httperror.As(e.Err)
}

// SetValue stores arbitrary data on the execution. The key follows the
// rules of context.WithValue: it must be non-nil and comparable, and
// should be of an unexported type to avoid collisions.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data stored on the execution for key, or nil.
func (e *Execution) Value(key interface{}) interface{} {
	if e.data == nil {
		return nil
	}

	return e.data.Value(key)
}
