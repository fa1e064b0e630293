// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIdempotent(t *testing.T) {
	idempotent := []string{"", "GET", "HEAD", "OPTIONS", "TRACE", "PUT", "DELETE"}
	notIdempotent := []string{"POST", "PATCH", "CONNECT", "PURGE", "get", "Put"}

	for _, method := range idempotent {
		assert.True(t, IsIdempotent(method), "method %q", method)
	}
	for _, method := range notIdempotent {
		assert.False(t, IsIdempotent(method), "method %q", method)
	}
}
