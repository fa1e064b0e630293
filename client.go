// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpretry

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gogama/httpretry/clock"
	"github.com/gogama/httpretry/httperror"
	"github.com/gogama/httpretry/recovery"
	"github.com/gogama/httpretry/request"
	"github.com/gogama/httpretry/retry"
	"github.com/gogama/httpretry/status"
	"github.com/gogama/httpretry/timeout"
	"golang.org/x/time/rate"
)

// An HTTPDoer implements a Do method in the same manner as the
// http.Client type from net/http.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response, following
	// the contract of http.Client.Do.
	Do(r *http.Request) (*http.Response, error)
}

var emptyHandlers = HandlerGroup{}

// A Client is an HTTP client which classifies every response and
// retries failed attempts according to a recovery policy. Its zero
// value is a valid configuration.
//
// The zero value client uses http.DefaultClient to send requests, the
// default status sets of package status to classify responses, a
// recovery policy which honors Retry-After over the system clock, and
// the default retry and timeout policies.
//
// Client is safe for concurrent use by multiple goroutines. Since its
// HTTPDoer typically caches connections, reuse a Client rather than
// creating one per request.
//
// Each attempt of a plan execution goes through these steps:
//
// • wait for the Limiter, if any;
//
// • send the request with a timeout from the TimeoutPolicy, and read
// the whole response body;
//
// • classify the response status. A failing status becomes an
// *httperror.Error[[]byte] in the Execution's Err, whose Body is the
// response body;
//
// • if the attempt failed, and the plan may be retried, ask the
// Recovery policy for an action, then ask the RetryPolicy whether the
// retry budget allows another attempt;
//
// • sleep on the Clock for the longer of the RetryPolicy's backoff and
// the action's minimum delay.
type Client struct {
	// HTTPDoer sends HTTP requests and receives responses. If nil,
	// http.DefaultClient is used.
	HTTPDoer HTTPDoer

	// Statuses classifies response status codes. If it is the zero
	// Config, status.DefaultConfig is used.
	Statuses status.Config

	// Recovery decides whether, and no earlier than when, a failed
	// attempt is retried.
	//
	// If Recovery is nil, the client uses a policy with fallback
	// recovery.TransientErr. It honors Retry-After if Clock is nil or
	// implements clock.WallClock. A custom Clock which is not a
	// clock.WallClock has no relation to real time, so Retry-After is
	// then ignored, and failed attempts are retried after the
	// RetryPolicy's backoff alone.
	Recovery recovery.Policy

	// Clock provides the current time to the Recovery policy and sleeps
	// between attempts. If nil, clock.System is used.
	Clock clock.Clock

	// Limiter, if not nil, limits the rate at which attempts are sent.
	// Every attempt, including the first, waits for the limiter.
	Limiter *rate.Limiter

	// RetryPolicy limits the number of retries and gives the backoff
	// between attempts. If nil, retry.DefaultPolicy is used.
	RetryPolicy retry.Policy

	// TimeoutPolicy sets the timeout of each attempt. If nil,
	// timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy

	// Handlers holds the event handlers run during plan executions. If
	// nil, no handlers are run.
	Handlers *HandlerGroup
}

// Do executes a plan and returns the execution state after its final
// attempt.
//
// Do is the safe entry point: a plan whose method is not idempotent
// (see request.IsIdempotent) gets exactly one attempt, and the recovery
// policy is never consulted for it. Use DoUnsafe to retry such plans.
//
// The returned Execution is never nil. The returned error is the
// Execution's Err. It is nil if the final attempt received a response
// whose status classified as a success. Otherwise it is either an
// *httperror.Error[[]byte], if the final attempt received a failing
// status, or a *url.Error, if the final attempt failed to speak HTTP,
// timed out, or the plan's context ended.
func (c *Client) Do(p *request.Plan) (*request.Execution, error) {
	return c.execute(p, false)
}

// DoUnsafe executes a plan like Do, but retries failed attempts
// whatever the plan's method.
//
// Only use DoUnsafe when repeating the request is known to be harmless,
// for example a POST the server deduplicates using an idempotency key.
func (c *Client) DoUnsafe(p *request.Plan) (*request.Execution, error) {
	return c.execute(p, true)
}

func (c *Client) execute(p *request.Plan, unsafe bool) (*request.Execution, error) {
	e := request.Execution{
		Plan: p,
	}

	doer := c.doer()
	clk := c.clock()
	rec := c.recovery()

	statuses := c.Statuses
	if statuses.Zero() {
		statuses = status.DefaultConfig
	}

	timeoutPolicy := c.TimeoutPolicy
	if timeoutPolicy == nil {
		timeoutPolicy = timeout.DefaultPolicy
	}

	retryPolicy := c.RetryPolicy
	if retryPolicy == nil {
		retryPolicy = retry.DefaultPolicy
	}

	handlers := c.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}
	handlers.run(BeforeExecutionStart, &e)
	e.Start = time.Now()

	attemptTimeout := timeoutPolicy.Timeout(&e)
	for {
		if c.Limiter != nil {
			if err := c.Limiter.Wait(p.Context()); err != nil {
				e.Err = urlErrorWrap(p, err)
				break
			}
		}
		sendAndReceive(p, &e, doer, handlers, attemptTimeout)
		classify(&e, statuses)
		if e.Timeout() {
			e.AttemptTimeouts++
			handlers.run(AfterAttemptTimeout, &e)
		}
		handlers.run(AfterAttempt, &e)
		if e.Err == nil {
			break
		}
		planCtxErr := p.Context().Err()
		if errors.Is(planCtxErr, context.DeadlineExceeded) {
			handlers.run(AfterPlanTimeout, &e)
			break
		} else if planCtxErr != nil {
			e.Err = urlErrorWrap(p, planCtxErr)
			break
		}
		if !unsafe && !p.Idempotent() {
			break
		}
		e.Action = rec.Recover(e.Err, clk.Now())
		handlers.run(AfterRecoveryDecision, &e)
		if !e.Action.Retry() || !retryPolicy.Decide(&e) {
			break
		}
		wait := retryPolicy.Wait(&e)
		if d := e.Action.MinDelay(clk.Now()); d > wait {
			wait = d
		}
		if err := clk.Sleep(p.Context(), wait); err != nil {
			e.Err = urlErrorWrap(p, err)
			if errors.Is(err, context.DeadlineExceeded) {
				handlers.run(AfterPlanTimeout, &e)
			}
			break
		}
		attemptTimeout = timeoutPolicy.Timeout(&e)
		e.Response = nil
		e.Err = nil
		e.Body = nil
		e.Attempt++
	}

	e.End = time.Now()
	handlers.run(AfterExecutionEnd, &e)
	return &e, e.Err
}

func sendAndReceive(p *request.Plan, e *request.Execution, doer HTTPDoer, handlers *HandlerGroup, attemptTimeout time.Duration) {
	ctx, cancel := context.WithTimeout(p.Context(), attemptTimeout)
	defer cancel()
	e.Request = p.ToRequest(ctx)
	handlers.run(BeforeAttempt, e)
	resp, err := doer.Do(e.Request)
	if err != nil {
		e.Err = urlErrorWrap(p, err)
		return
	}
	e.Response = resp
	readBody(p, e, handlers)
}

func readBody(p *request.Plan, e *request.Execution, handlers *HandlerGroup) {
	defer func() {
		_ = e.Response.Body.Close()
	}()
	handlers.run(BeforeReadBody, e)
	var err error
	e.Body, err = io.ReadAll(e.Response.Body)
	if err != nil {
		e.Err = urlErrorWrap(p, err)
	}
}

func classify(e *request.Execution, statuses status.Config) {
	if e.Response == nil {
		return
	}
	e.Classification = statuses.Classify(e.Response.StatusCode)
	if e.Err == nil && e.Classification.Failed() {
		r := httperror.NewResponse(e.Response)
		e.Err = httperror.NewWithBody(r, e.Body, e.Classification == status.TransientFailure)
	}
}

// Get issues a GET to the specified URL, using the same policies
// followed by Do.
func (c *Client) Get(url string) (*request.Execution, error) {
	return Get(c, url)
}

// Head issues a HEAD to the specified URL, using the same policies
// followed by Do.
func (c *Client) Head(url string) (*request.Execution, error) {
	return Head(c, url)
}

// Post issues a POST to the specified URL using Do. Since POST is not
// idempotent, only one attempt is made. Use PostUnsafe to retry.
//
// The body may be nil, a string, a []byte, an io.Reader or an
// io.ReadCloser.
func (c *Client) Post(url, contentType string, body interface{}) (*request.Execution, error) {
	return Post(c, url, contentType, body)
}

// PostUnsafe issues a POST to the specified URL using DoUnsafe, so
// that failed attempts are retried.
func (c *Client) PostUnsafe(url, contentType string, body interface{}) (*request.Execution, error) {
	return PostUnsafe(c, url, contentType, body)
}

// PostForm issues a POST to the specified URL, with data's keys and
// values URL-encoded as the request body, using Do.
func (c *Client) PostForm(url string, data url.Values) (*request.Execution, error) {
	return PostForm(c, url, data)
}

// CloseIdleConnections calls the same method on the client's HTTPDoer,
// if it has one.
func (c *Client) CloseIdleConnections() {
	if ic, ok := c.doer().(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}

	return c.HTTPDoer
}

func (c *Client) clock() clock.Clock {
	if c.Clock == nil {
		return clock.System
	}

	return c.Clock
}

func (c *Client) recovery() recovery.Policy {
	switch {
	case c.Recovery != nil:
		return c.Recovery
	case c.Clock == nil:
		return recovery.DefaultPolicy
	}

	if wc, ok := c.Clock.(clock.WallClock); ok {
		return recovery.NewWallClock(wc, recovery.TransientErr)
	}

	return hintBlind
}

var hintBlind = recovery.New(recovery.TransientErr)

func urlErrorWrap(p *request.Plan, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(p.Method),
		URL: p.URL.String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
