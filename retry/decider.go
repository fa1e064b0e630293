// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/httpretry/clock"
	"github.com/gogama/httpretry/request"
)

// A Decider decides whether the retry budget of an execution allows
// another attempt. It is only consulted once the recovery policy has
// decided the failure is retryable.
//
// Implementations of Decider must be safe for concurrent use by
// multiple goroutines.
type Decider interface {
	Decide(e *request.Execution) bool
}

// The DeciderFunc type is an adapter to allow the use of ordinary
// functions as retry deciders. It also provides the logical composition
// methods And and Or.
//
// Every DeciderFunc must be safe for concurrent use by multiple
// goroutines.
type DeciderFunc func(e *request.Execution) bool

// DefaultTimes is the number of times DefaultPolicy will retry.
const DefaultTimes = 5

// DefaultDecider allows up to DefaultTimes retries, or six attempts in
// all.
var DefaultDecider = Times(DefaultTimes)

// Decide returns f(e).
func (f DeciderFunc) Decide(e *request.Execution) bool {
	return f(e)
}

// And composes two deciders into one which returns true if both do.
// Parameter g is not evaluated if f returns false.
func (f DeciderFunc) And(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) && g(e)
	}
}

// Or composes two deciders into one which returns true if either does.
// Parameter g is not evaluated if f returns true.
func (f DeciderFunc) Or(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) || g(e)
	}
}

// Times constructs a decider which allows up to n retries: it returns
// true while e.Attempt is less than n.
func Times(n int) DeciderFunc {
	return func(e *request.Execution) bool {
		return e.Attempt < n
	}
}

// Before constructs a decider which allows retries until d has elapsed
// since the execution started.
func Before(d time.Duration) DeciderFunc {
	return func(e *request.Execution) bool {
		return e.Duration() < d
	}
}

// MaxDelay constructs a decider which refuses a retry when the recovery
// action demands a wait longer than d, for example because the server
// sent a Retry-After value far in the future. The wait is measured from
// c.Now(), so c should be the client's clock.
func MaxDelay(d time.Duration, c clock.Clock) DeciderFunc {
	return func(e *request.Execution) bool {
		return e.Action.MinDelay(c.Now()) <= d
	}
}
