// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package recovery

import (
	"time"

	"github.com/gogama/httpretry/clock"
	"github.com/gogama/httpretry/httperror"
	"github.com/gogama/httpretry/transient"
)

// A Fallback decides the recovery action for a failure which is not an
// application failure, for example a network error.
//
// Every Fallback must be safe for concurrent use by multiple
// goroutines.
type Fallback func(err error) Action

// TransientErr is a Fallback which retries errors that are transient
// according to transient.Categorize, and aborts on all others.
var TransientErr Fallback = transientErr

// AbortAll is a Fallback which aborts on every error.
var AbortAll Fallback = func(_ error) Action {
	return AbortAction()
}

func transientErr(err error) Action {
	if transient.Categorize(err) == transient.Not {
		return AbortAction()
	}

	return RetryNowAction()
}

// A Policy is the recovery callback a retry loop invokes once per
// failed attempt, before deciding whether and when to make another
// attempt.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Recover returns the recovery action for err, given the retry
	// loop clock's current reading now.
	Recover(err error, now time.Time) Action
}

// The PolicyFunc type is an adapter to allow the use of ordinary
// functions as recovery policies.
type PolicyFunc func(err error, now time.Time) Action

// Recover returns f(err, now).
func (f PolicyFunc) Recover(err error, now time.Time) Action {
	return f(err, now)
}

// New constructs a Policy which decides application failures with
// Decide, ignoring Retry-After, and hands every other error to fallback.
//
// Use New when the retry loop's clock is not a clock.WallClock.
func New(fallback Fallback) Policy {
	if fallback == nil {
		panic("httpretry/recovery: nil fallback")
	}
	return policy{fallback: fallback}
}

// NewWallClock constructs a Policy which decides application failures
// with DecideWallClock, using c to read real time, and hands every
// other error to fallback.
//
// The readings passed to Recover must come from c.
func NewWallClock(c clock.WallClock, fallback Fallback) Policy {
	if c == nil {
		panic("httpretry/recovery: nil clock")
	}
	if fallback == nil {
		panic("httpretry/recovery: nil fallback")
	}
	return policy{fallback: fallback, wall: c}
}

// DefaultPolicy is the Policy for the system clock: it honors
// Retry-After and uses TransientErr as its fallback.
var DefaultPolicy = NewWallClock(clock.System, TransientErr)

type policy struct {
	fallback Fallback
	wall     clock.WallClock
}

func (p policy) Recover(err error, now time.Time) Action {
	v, ok := httperror.As(err)
	if !ok {
		return p.fallback(err)
	}

	if p.wall == nil {
		return Decide(v, now)
	}

	return DecideWallClock(v, now, p.wall.WallTime())
}
