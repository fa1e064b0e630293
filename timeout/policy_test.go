// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"errors"
	"math"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/gogama/httpretry/request"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	assert.Equal(t, 5*time.Second, DefaultPolicy.Timeout(&request.Execution{}))
	assert.Equal(t, 5*time.Second, DefaultPolicy.Timeout(&request.Execution{AttemptTimeouts: 3, Err: syscall.ETIMEDOUT}))
}

func TestInfinite(t *testing.T) {
	assert.Equal(t, time.Duration(math.MaxInt64), Infinite.Timeout(&request.Execution{}))
	assert.Equal(t, time.Duration(math.MaxInt64), Infinite.Timeout(&request.Execution{AttemptTimeouts: 10, Err: syscall.ETIMEDOUT}))
}

func TestFixed(t *testing.T) {
	p := Fixed(33 * time.Hour)

	assert.Equal(t, 33*time.Hour, p.Timeout(&request.Execution{}))
	assert.Equal(t, 33*time.Hour, p.Timeout(&request.Execution{AttemptTimeouts: 1, Err: syscall.ETIMEDOUT, Attempt: 1}))
	assert.Equal(t, 33*time.Hour, p.Timeout(&request.Execution{Response: &http.Response{StatusCode: 504}}))
}

func TestAdaptive(t *testing.T) {
	p := Adaptive(5*time.Millisecond, 10*time.Millisecond, 100*time.Millisecond)

	t.Run("client timeouts", func(t *testing.T) {
		x := &request.Execution{}
		assert.Equal(t, 5*time.Millisecond, p.Timeout(x))
		x.AttemptTimeouts = 1
		x.Err = syscall.ETIMEDOUT
		assert.Equal(t, 10*time.Millisecond, p.Timeout(x))
		x.Attempt = 1
		x.Err = errors.New("just a routine problem")
		assert.Equal(t, 5*time.Millisecond, p.Timeout(x))
		x.Attempt = 2
		x.AttemptTimeouts = 2
		x.Err = syscall.ETIMEDOUT
		assert.Equal(t, 100*time.Millisecond, p.Timeout(x))
		x.Attempt = 3
		x.AttemptTimeouts = 3
		assert.Equal(t, 100*time.Millisecond, p.Timeout(x))
	})
	t.Run("server timeouts", func(t *testing.T) {
		x := &request.Execution{Response: &http.Response{StatusCode: http.StatusGatewayTimeout}}
		assert.Equal(t, 10*time.Millisecond, p.Timeout(x))
		x.Response.StatusCode = http.StatusRequestTimeout
		x.AttemptTimeouts = 1
		assert.Equal(t, 100*time.Millisecond, p.Timeout(x))
		x.Response.StatusCode = http.StatusServiceUnavailable
		assert.Equal(t, 5*time.Millisecond, p.Timeout(x))
	})
	t.Run("no after", func(t *testing.T) {
		q := Adaptive(time.Second)
		assert.Equal(t, time.Second, q.Timeout(&request.Execution{AttemptTimeouts: 2, Err: syscall.ETIMEDOUT}))
	})
}
