// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"net/http"
	"time"

	"github.com/gogama/httpretry/request"
)

// A Policy chooses the timeout of the next attempt of an execution.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout for the next attempt, given the
	// current state of the execution.
	//
	// The client calls Timeout once before the initial attempt, and
	// then after each attempt it retries, while e still holds the
	// outcome of that attempt: its Response, Err and Attempt number,
	// with AttemptTimeouts already counting it if it timed out.
	Timeout(e *request.Execution) time.Duration
}

// DefaultPolicy sets a fixed timeout of 5 seconds on each attempt.
var DefaultPolicy Policy = Fixed(5 * time.Second)

// Infinite never times out.
var Infinite Policy = Fixed(1<<63 - 1)

// Fixed constructs a policy which gives every attempt the timeout d.
func Fixed(d time.Duration) Policy {
	return policy([]time.Duration{d})
}

// Adaptive constructs a policy which lengthens the timeout after an
// attempt timed out.
//
// Parameter usual is the timeout of the initial attempt and of any
// retry following an attempt that did not time out. Parameter after
// holds the timeouts used following a timed-out attempt: after[0]
// after the first timeout of the execution, after[1] after the second,
// and so on, repeating the last element once after is exhausted.
//
// An attempt timed out if it failed with a client-side timeout, or if
// the server answered 408 Request Timeout or 504 Gateway Timeout:
//
//	p := Adaptive(200*time.Millisecond, time.Second, 10*time.Second)
//
// Here p uses 200 milliseconds normally, 1 second after the first
// timeout, and 10 seconds after any later one.
func Adaptive(usual time.Duration, after ...time.Duration) Policy {
	p := make([]time.Duration, 1, 1+len(after))
	p[0] = usual
	return policy(append(p, after...))
}

type policy []time.Duration

func (p policy) Timeout(e *request.Execution) time.Duration {
	var i int
	switch {
	case e.Timeout():
		i = e.AttemptTimeouts
	case serverTimeout(e):
		i = e.AttemptTimeouts + 1
	default:
		return p[0]
	}

	if i > len(p)-1 {
		i = len(p) - 1
	}

	return p[i]
}

func serverTimeout(e *request.Execution) bool {
	switch e.StatusCode() {
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
