// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package recovery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"syscall"
	"testing"
	"time"

	"github.com/gogama/httpretry/clock"
	"github.com/gogama/httpretry/httperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Abort", Abort.String())
	assert.Equal(t, "RetryNow", RetryNow.String())
	assert.Equal(t, "RetryNoEarlierThan", RetryNoEarlierThan.String())
	assert.Equal(t, "Kind(?)", Kind(-1).String())
	assert.Equal(t, "Kind(?)", Kind(3).String())
}

func TestAction(t *testing.T) {
	t.Run("Abort", func(t *testing.T) {
		a := AbortAction()
		assert.False(t, a.Retry())
		assert.Equal(t, time.Duration(0), a.MinDelay(t0))
		assert.Equal(t, "Abort", a.String())
	})
	t.Run("RetryNow", func(t *testing.T) {
		a := RetryNowAction()
		assert.True(t, a.Retry())
		assert.Equal(t, time.Duration(0), a.MinDelay(t0))
		assert.Equal(t, "RetryNow", a.String())
	})
	t.Run("RetryNoEarlierThan", func(t *testing.T) {
		a := RetryNoEarlierThanAction(t0.Add(5 * time.Second))
		assert.True(t, a.Retry())
		assert.Equal(t, 5*time.Second, a.MinDelay(t0))
		assert.Equal(t, time.Duration(0), a.MinDelay(t0.Add(time.Minute)))
		assert.Equal(t, "RetryNoEarlierThan(2024-01-07T12:00:05Z)", a.String())
	})
}

func TestDecide(t *testing.T) {
	t.Run("Permanent", func(t *testing.T) {
		e := newError(404, "120", false)
		assert.Equal(t, AbortAction(), Decide(e, t0))
	})
	t.Run("Transient", func(t *testing.T) {
		e := newError(503, "120", true)
		assert.Equal(t, RetryNowAction(), Decide(e, t0))
	})
}

func TestDecideWallClock(t *testing.T) {
	testCases := []struct {
		name       string
		code       int
		retryAfter string
		transient  bool
		wallNow    time.Time
		expected   Action
	}{
		{
			name:       "permanent ignores hint",
			code:       400,
			retryAfter: "1",
			wallNow:    t0,
			expected:   AbortAction(),
		},
		{
			name:      "no hint",
			code:      503,
			transient: true,
			wallNow:   t0,
			expected:  RetryNowAction(),
		},
		{
			name:       "garbage hint",
			code:       429,
			retryAfter: "soon",
			transient:  true,
			wallNow:    t0,
			expected:   RetryNowAction(),
		},
		{
			name:       "delay seconds",
			code:       503,
			retryAfter: "120",
			transient:  true,
			wallNow:    t0,
			expected:   RetryNoEarlierThanAction(t0.Add(120 * time.Second)),
		},
		{
			name:       "large delay seconds",
			code:       503,
			retryAfter: "1000000",
			transient:  true,
			wallNow:    t0,
			expected:   RetryNoEarlierThanAction(t0.Add(1000000 * time.Second)),
		},
		{
			name:       "date in future",
			code:       503,
			retryAfter: "Sun, 07 Jan 2024 12:01:00 GMT",
			transient:  true,
			wallNow:    t0,
			expected:   RetryNoEarlierThanAction(t0.Add(time.Minute)),
		},
		{
			name:       "date in past",
			code:       503,
			retryAfter: "Sun, 07 Jan 2024 11:59:00 GMT",
			transient:  true,
			wallNow:    t0,
			expected:   RetryNoEarlierThanAction(t0.Add(-time.Minute)),
		},
		{
			name:       "skew absorbed",
			code:       503,
			retryAfter: "Sun, 07 Jan 2024 12:01:00 GMT",
			transient:  true,
			wallNow:    t0.Add(30 * time.Second),
			expected:   RetryNoEarlierThanAction(t0.Add(30 * time.Second)),
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			e := newError(testCase.code, testCase.retryAfter, testCase.transient)

			a := DecideWallClock(e, t0, testCase.wallNow)

			assert.Equal(t, testCase.expected.Kind, a.Kind)
			assert.True(t, testCase.expected.NotBefore.Equal(a.NotBefore), "expected %s, got %s", testCase.expected, a)
		})
	}

	t.Run("far future date", func(t *testing.T) {
		e := newError(503, "Sun, 07 Jan 3024 12:00:00 GMT", true)

		a := DecideWallClock(e, t0, t0)

		require.Equal(t, RetryNoEarlierThan, a.Kind)
		assert.Greater(t, a.MinDelay(t0), 365*24*time.Hour)
	})
}

func TestTransientErr(t *testing.T) {
	assert.Equal(t, AbortAction(), TransientErr(errors.New("foo")))
	assert.Equal(t, RetryNowAction(), TransientErr(syscall.ECONNRESET))
	assert.Equal(t, RetryNowAction(), TransientErr(&url.Error{Op: "Get", URL: "http://x", Err: context.DeadlineExceeded}))
}

func TestAbortAll(t *testing.T) {
	assert.Equal(t, AbortAction(), AbortAll(syscall.ECONNRESET))
}

func TestNew(t *testing.T) {
	t.Run("Nil Fallback", func(t *testing.T) {
		assert.PanicsWithValue(t, "httpretry/recovery: nil fallback", func() { New(nil) })
	})
	t.Run("Application Failure", func(t *testing.T) {
		p := New(AbortAll)

		assert.Equal(t, RetryNowAction(), p.Recover(newError(503, "120", true), t0))
		assert.Equal(t, AbortAction(), p.Recover(newError(403, "", false), t0))
	})
	t.Run("Wrapped Application Failure", func(t *testing.T) {
		p := New(AbortAll)
		err := fmt.Errorf("wrapped: %w", newError(500, "", true))

		assert.Equal(t, RetryNowAction(), p.Recover(err, t0))
	})
	t.Run("Foreign Error", func(t *testing.T) {
		foreign := errors.New("foreign")
		var got error
		p := New(func(err error) Action {
			got = err
			return RetryNoEarlierThanAction(t0.Add(time.Hour))
		})

		a := p.Recover(foreign, t0)

		assert.Same(t, foreign, got)
		assert.Equal(t, RetryNoEarlierThanAction(t0.Add(time.Hour)), a)
	})
}

type fixedWall struct {
	*clock.Fake
	wall time.Time
}

func (w fixedWall) WallTime() time.Time {
	return w.wall
}

func TestNewWallClock(t *testing.T) {
	t.Run("Nil Clock", func(t *testing.T) {
		assert.PanicsWithValue(t, "httpretry/recovery: nil clock", func() { NewWallClock(nil, TransientErr) })
	})
	t.Run("Nil Fallback", func(t *testing.T) {
		assert.PanicsWithValue(t, "httpretry/recovery: nil fallback", func() { NewWallClock(clock.System, nil) })
	})
	t.Run("Honors Hint", func(t *testing.T) {
		c := fixedWall{Fake: clock.NewFake(t0), wall: t0.Add(-time.Hour)}
		p := NewWallClock(c, AbortAll)

		a1 := p.Recover(newError(429, "7", true), c.Now())
		a2 := p.Recover(newError(503, "Sun, 07 Jan 2024 11:00:30 GMT", true), c.Now())

		assert.Equal(t, RetryNoEarlierThanAction(t0.Add(7*time.Second)), a1)
		require.Equal(t, RetryNoEarlierThan, a2.Kind)
		assert.True(t, t0.Add(30*time.Second).Equal(a2.NotBefore))
	})
	t.Run("Foreign Error", func(t *testing.T) {
		p := NewWallClock(clock.NewWallFake(), TransientErr)

		assert.Equal(t, AbortAction(), p.Recover(errors.New("foreign"), t0))
		assert.Equal(t, RetryNowAction(), p.Recover(syscall.ECONNREFUSED, t0))
	})
}

func TestPolicyFunc(t *testing.T) {
	var p Policy = PolicyFunc(func(err error, now time.Time) Action {
		return RetryNoEarlierThanAction(now)
	})

	assert.Equal(t, RetryNoEarlierThanAction(t0), p.Recover(nil, t0))
}

func TestDefaultPolicy(t *testing.T) {
	now := clock.System.Now()

	a := DefaultPolicy.Recover(newError(503, "2", true), now)

	assert.Equal(t, RetryNoEarlierThanAction(now.Add(2*time.Second)), a)
}

func newError(code int, retryAfter string, transient bool) *httperror.Error[httperror.Empty] {
	h := http.Header{}
	if retryAfter != "" {
		h.Set("Retry-After", retryAfter)
	}
	r := httperror.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:     h,
	}
	return httperror.New(r, transient)
}
