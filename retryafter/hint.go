// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retryafter

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Header is the canonical name of the Retry-After header.
const Header = "Retry-After"

// A Kind identifies which form of Retry-After value a Hint holds.
type Kind int

const (
	// None indicates there is no usable hint: the header was missing,
	// empty, or unparseable.
	None Kind = iota
	// Instant indicates the hint is an absolute point in time, taken
	// from an HTTP date value.
	Instant
	// Delay indicates the hint is a relative delay in seconds, taken
	// from a delay-seconds value.
	Delay
)

var kindNames = []string{
	"None",
	"Instant",
	"Delay",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}
	return kindNames[k]
}

// A Hint is the parsed value of a Retry-After header.
//
// The zero value is a hint of kind None.
type Hint struct {
	// Kind identifies which of the other fields is meaningful.
	Kind Kind
	// At is the earliest retry instant, in UTC, when Kind is Instant.
	At time.Time
	// Seconds is the minimum number of seconds to wait before retrying,
	// when Kind is Delay. It is never negative.
	Seconds int64
}

// Delay returns the hint's delay-seconds value as a duration. If the
// value exceeds the largest representable duration, the largest
// duration is returned. If Kind is not Delay, Delay returns zero.
func (h Hint) Delay() time.Duration {
	if h.Kind != Delay {
		return 0
	}
	if h.Seconds > int64(math.MaxInt64/time.Second) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(h.Seconds) * time.Second
}

// String returns a short human-readable description of the hint.
func (h Hint) String() string {
	switch h.Kind {
	case Instant:
		return "at " + h.At.Format(time.RFC3339)
	case Delay:
		return fmt.Sprintf("after %ds", h.Seconds)
	default:
		return "none"
	}
}

// Parse parses a Retry-After header value.
//
// A value consisting only of decimal digits produces a Delay hint. A
// value matching one of the HTTP date layouts produces an Instant hint.
// Anything else, including the empty string and digit strings too large
// for an int64, produces a None hint. Leading and trailing white space
// is ignored.
func Parse(value string) Hint {
	value = strings.TrimSpace(value)
	if value == "" {
		return Hint{}
	}

	if allDigits(value) {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return Hint{}
		}
		return Hint{Kind: Delay, Seconds: n}
	}

	if t, ok := ParseHTTPDate(value); ok {
		return Hint{Kind: Instant, At: t}
	}

	return Hint{}
}

// FromHeader parses the Retry-After field of h. A nil header, or one
// without a Retry-After field, produces a None hint.
func FromHeader(h http.Header) Hint {
	return Parse(h.Get(Header))
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
