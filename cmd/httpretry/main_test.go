// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T, doc string) string {
	path := filepath.Join(t.TempDir(), "httpretry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

const fastConfig = `
max_retries: 2
backoff: fixed
backoff_base: 1ms
backoff_max: 1ms
`

func TestGet(t *testing.T) {
	t.Run("retries transient failure", func(t *testing.T) {
		var n int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&n, 1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte("hello"))
		}))
		defer server.Close()

		stdout, stderr, err := run(t, "get", "--config", writeConfig(t, fastConfig), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "hello", stdout)
		assert.Equal(t, int32(2), atomic.LoadInt32(&n))
		assert.Contains(t, stderr, `"action":"RetryNow"`)
		assert.Contains(t, stderr, `"message":"execution ended"`)
	})
	t.Run("does not retry POST", func(t *testing.T) {
		var n int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&n, 1)
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("bad gateway"))
		}))
		defer server.Close()

		stdout, _, err := run(t, "get", "--config", writeConfig(t, fastConfig), "-X", "POST", "-d", "x=1", server.URL)

		assert.EqualError(t, err, "httpretry: 502 Bad Gateway (transient failure)")
		assert.Equal(t, "bad gateway", stdout)
		assert.Equal(t, int32(1), atomic.LoadInt32(&n))
	})
	t.Run("retries POST when unsafe", func(t *testing.T) {
		var n int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&n, 1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, _, err := run(t, "get", "--config", writeConfig(t, fastConfig), "-X", "POST", "--unsafe", server.URL)

		assert.Error(t, err)
		assert.Equal(t, int32(3), atomic.LoadInt32(&n))
	})
	t.Run("missing config", func(t *testing.T) {
		_, _, err := run(t, "get", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "http://example.com")

		assert.ErrorContains(t, err, "open config")
	})
	t.Run("invalid method", func(t *testing.T) {
		_, _, err := run(t, "get", "--config", writeConfig(t, fastConfig), "-X", "BAD METHOD", "http://example.com")

		assert.EqualError(t, err, `httpretry/request: invalid method "BAD METHOD"`)
	})
}

func TestRetryAfter(t *testing.T) {
	stdout, _, err := run(t, "retry-after", "120", "Sun, 06 Nov 1994 08:49:37 GMT", "soon")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "\"120\"\tDelay\tafter 120s\tRetryNoEarlierThan (wait 2m0s)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "\"Sun, 06 Nov 1994 08:49:37 GMT\"\tInstant\tat 1994-11-06T08:49:37Z\tRetryNoEarlierThan (wait 0s)"), lines[1])
	assert.Equal(t, "\"soon\"\tNone\tnone\tRetryNow", lines[2])
}

func TestClassify(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		stdout, _, err := run(t, "classify", "--config", writeConfig(t, ""), "200", "503", "404")

		require.NoError(t, err)
		assert.Equal(t, "200\tOK\tSuccess\n503\tService Unavailable\tTransientFailure\n404\tNot Found\tPermanentFailure\n", stdout)
	})
	t.Run("configured", func(t *testing.T) {
		stdout, _, err := run(t, "classify", "--config", writeConfig(t, "transient_statuses: [409]\n"), "409")

		require.NoError(t, err)
		assert.Equal(t, "409\tConflict\tTransientFailure\n", stdout)
	})
	t.Run("invalid code", func(t *testing.T) {
		_, _, err := run(t, "classify", "--config", writeConfig(t, ""), "2xx")

		assert.EqualError(t, err, `invalid status code "2xx"`)
	})
}
