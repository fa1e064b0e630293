// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gogama/httpretry/request"
)

// NewBackOffPolicy constructs a Policy driven by a backoff.BackOff.
//
// Parameter factory is called once per execution, on its first retry
// decision, and the BackOff it returns is kept on the Execution. Each
// Decide call takes the BackOff's next interval: backoff.Stop ends the
// retries, any other interval is what the following Wait returns. The
// BackOff therefore need not be safe for concurrent use, but factory
// must be.
func NewBackOffPolicy(factory func() backoff.BackOff) Policy {
	if factory == nil {
		panic("httpretry/retry: nil backoff factory")
	}
	p := &backOffPolicy{factory: factory}
	p.key = backOffKey{p}
	return p
}

type backOffPolicy struct {
	factory func() backoff.BackOff
	key     backOffKey
}

type backOffKey struct {
	p *backOffPolicy
}

type backOffState struct {
	b    backoff.BackOff
	next time.Duration
}

func (p *backOffPolicy) Decide(e *request.Execution) bool {
	s, ok := e.Value(p.key).(*backOffState)
	if !ok {
		b := p.factory()
		b.Reset()
		s = &backOffState{b: b}
		e.SetValue(p.key, s)
	}
	s.next = s.b.NextBackOff()
	return s.next != backoff.Stop
}

func (p *backOffPolicy) Wait(e *request.Execution) time.Duration {
	s, ok := e.Value(p.key).(*backOffState)
	if !ok || s.next < 0 {
		return 0
	}
	return s.next
}
