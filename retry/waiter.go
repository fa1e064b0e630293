// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gogama/httpretry/request"
)

// A Waiter gives the backoff to wait before retrying a failed attempt.
// The client waits for the longer of this backoff and the minimum delay
// of the execution's recovery action.
//
// Implementations of Waiter must be safe for concurrent use by multiple
// goroutines.
type Waiter interface {
	Wait(e *request.Execution) time.Duration
}

// DefaultWaiter uses jittered exponential backoff with a base wait of
// 50 milliseconds and a maximum wait of 1 second.
var DefaultWaiter = NewExpWaiter(50*time.Millisecond, 1*time.Second, time.Now())

// NewFixedWaiter constructs a Waiter that always returns d.
func NewFixedWaiter(d time.Duration) Waiter {
	return fixedWaiter(d)
}

type fixedWaiter time.Duration

func (w fixedWaiter) Wait(_ *request.Execution) time.Duration {
	return time.Duration(w)
}

// NewExpWaiter constructs a Waiter using exponential backoff with
// optional "full jitter". The ceiling on attempt n is
//
//	ceil := min(base * 2**n, maxWait)
//
// and the wait is a random duration in [0, ceil), or ceil itself if
// jitter is nil. Parameter base must be positive and maxWait at least
// base.
//
// Parameter jitter is nil, a seed (time.Time, int or int64), or a
// rand.Source or *rand.Rand to draw from.
func NewExpWaiter(base, maxWait time.Duration, jitter interface{}) Waiter {
	if base < 1 {
		panic("httpretry/retry: base must be positive")
	}
	if maxWait < base {
		panic("httpretry/retry: max must be at least base")
	}
	return &expWaiter{
		base: base,
		max:  maxWait,
		rand: jitterToRand(jitter),
	}
}

type expWaiter struct {
	base time.Duration
	max  time.Duration
	rand *rand.Rand
	lock sync.Mutex
}

func (w *expWaiter) Wait(e *request.Execution) time.Duration {
	ceil := w.max
	if e.Attempt < 63 {
		exp := int64(1) << e.Attempt
		if c := int64(w.base) * exp; c/exp == int64(w.base) && c < int64(w.max) {
			ceil = time.Duration(c)
		}
	}

	if w.rand == nil {
		return ceil
	}

	w.lock.Lock()
	defer w.lock.Unlock()
	return time.Duration(w.rand.Int63n(int64(ceil)))
}

func jitterToRand(jitter interface{}) *rand.Rand {
	var s rand.Source
	switch j := jitter.(type) {
	case nil:
		return nil
	case time.Time:
		s = rand.NewSource(j.UnixNano())
	case int:
		s = rand.NewSource(int64(j))
	case int64:
		s = rand.NewSource(j)
	case *rand.Rand:
		if j == nil {
			panic("httpretry/retry: jitter may not be a typed nil")
		}
		return j
	case rand.Source:
		s = j
	default:
		panic("httpretry/retry: invalid jitter type")
	}
	return rand.New(s)
}
