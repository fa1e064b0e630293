// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retryafter

import (
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nov6 = time.Date(1994, time.November, 6, 8, 49, 37, 0, time.UTC)

func TestParseHTTPDate(t *testing.T) {
	testCases := []struct {
		name  string
		value string
	}{
		{"IMF-fixdate", "Sun, 06 Nov 1994 08:49:37 GMT"},
		{"RFC 850", "Sunday, 06-Nov-94 08:49:37 GMT"},
		{"asctime", "Sun Nov  6 08:49:37 1994"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			d, ok := ParseHTTPDate(testCase.value)
			require.True(t, ok)
			assert.True(t, nov6.Equal(d), "expected %v, got %v", nov6, d)
			assert.Equal(t, time.UTC, d.Location())
		})
	}
	t.Run("asctime two-digit day", func(t *testing.T) {
		d, ok := ParseHTTPDate("Wed Nov 16 08:49:37 1994")
		require.True(t, ok)
		assert.Equal(t, 16, d.Day())
	})
	t.Run("RFC 850 century window", func(t *testing.T) {
		d, ok := ParseHTTPDate("Sunday, 07-Jan-24 00:00:00 GMT")
		require.True(t, ok)
		assert.Equal(t, 2024, d.Year())
	})
	t.Run("far future", func(t *testing.T) {
		d, ok := ParseHTTPDate("Wed, 07 Jan 3024 00:00:00 GMT")
		require.True(t, ok)
		assert.Equal(t, 3024, d.Year())
	})
	t.Run("invalid", func(t *testing.T) {
		invalid := []string{
			"",
			"tomorrow",
			"Sun, 06 Nov 1994 08:49:37 PST",
			"Sun, 06 Nov 1994 08:49:37",
			"1994-11-06T08:49:37Z",
			"Sun, 32 Nov 1994 08:49:37 GMT",
		}
		for _, s := range invalid {
			_, ok := ParseHTTPDate(s)
			assert.False(t, ok, "value %q", s)
		}
	})
}

func TestParse(t *testing.T) {
	t.Run("delay seconds", func(t *testing.T) {
		h := Parse("120")
		assert.Equal(t, Hint{Kind: Delay, Seconds: 120}, h)
		assert.Equal(t, 2*time.Minute, h.Delay())
		assert.Equal(t, Hint{Kind: Delay, Seconds: 0}, Parse("0"))
		assert.Equal(t, Hint{Kind: Delay, Seconds: 1000000}, Parse("1000000"))
		assert.Equal(t, Hint{Kind: Delay, Seconds: 7}, Parse(" 7 "))
	})
	t.Run("dates", func(t *testing.T) {
		for _, value := range []string{
			"Sun, 06 Nov 1994 08:49:37 GMT",
			"Sunday, 06-Nov-94 08:49:37 GMT",
			"Sun Nov  6 08:49:37 1994",
		} {
			h := Parse(value)
			assert.Equal(t, Instant, h.Kind, value)
			assert.True(t, nov6.Equal(h.At), value)
			assert.Equal(t, time.Duration(0), h.Delay())
		}
	})
	t.Run("none", func(t *testing.T) {
		for _, value := range []string{
			"",
			"   ",
			"-1",
			"+5",
			"1.5",
			"0x10",
			"99999999999999999999",
			"soon",
		} {
			assert.Equal(t, Hint{}, Parse(value), "value %q", value)
		}
	})
}

func TestFromHeader(t *testing.T) {
	assert.Equal(t, Hint{}, FromHeader(nil))
	assert.Equal(t, Hint{}, FromHeader(http.Header{}))
	h := http.Header{}
	h.Set("retry-after", "3")
	assert.Equal(t, Hint{Kind: Delay, Seconds: 3}, FromHeader(h))
}

func TestHint_Delay(t *testing.T) {
	assert.Equal(t, time.Duration(math.MaxInt64), Hint{Kind: Delay, Seconds: math.MaxInt64}.Delay())
	assert.Equal(t, time.Duration(0), Hint{}.Delay())
}

func TestHint_String(t *testing.T) {
	assert.Equal(t, "none", Hint{}.String())
	assert.Equal(t, "after 5s", Hint{Kind: Delay, Seconds: 5}.String())
	assert.Equal(t, "at 1994-11-06T08:49:37Z", Hint{Kind: Instant, At: nov6}.String())
	assert.Equal(t, "Instant", Instant.String())
	assert.Equal(t, "Kind(?)", Kind(-1).String())
}
