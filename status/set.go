// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package status

import (
	"net/http"
	"sort"
)

// A Set is an immutable set of HTTP response status codes. The zero
// value is the empty set.
type Set struct {
	m map[int]struct{}
}

// Successes contains the status codes commonly used to indicate
// success: every code in the range [200, 300).
var Successes = Range(200, 300)

// TransientFailures contains the status codes commonly used to indicate
// a transient failure, after which a subsequent attempt may succeed:
// 408 (Request Timeout); 429 (Too Many Requests); 500 (Internal Server
// Error); 502 (Bad Gateway); 503 (Service Unavailable); and 504
// (Gateway Timeout).
var TransientFailures = NewSet(
	http.StatusRequestTimeout,
	http.StatusTooManyRequests,
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
)

// NewSet constructs a set containing the given status codes.
func NewSet(codes ...int) Set {
	m := make(map[int]struct{}, len(codes))
	for _, code := range codes {
		m[code] = struct{}{}
	}
	return Set{m}
}

// Range constructs a set containing every status code in the half-open
// range [lo, hi).
func Range(lo, hi int) Set {
	if hi < lo {
		panic("httpretry/status: range end before start")
	}
	m := make(map[int]struct{}, hi-lo)
	for code := lo; code < hi; code++ {
		m[code] = struct{}{}
	}
	return Set{m}
}

// Contains reports whether code is in s.
func (s Set) Contains(code int) bool {
	_, ok := s.m[code]
	return ok
}

// Len returns the number of codes in s.
func (s Set) Len() int {
	return len(s.m)
}

// Union returns a new set containing the codes of s and of every set in
// others.
func (s Set) Union(others ...Set) Set {
	n := len(s.m)
	for _, o := range others {
		n += len(o.m)
	}
	m := make(map[int]struct{}, n)
	for code := range s.m {
		m[code] = struct{}{}
	}
	for _, o := range others {
		for code := range o.m {
			m[code] = struct{}{}
		}
	}
	return Set{m}
}

// Without returns a new set containing the codes of s except codes.
func (s Set) Without(codes ...int) Set {
	u := s.Union()
	for _, code := range codes {
		delete(u.m, code)
	}
	return u
}

// Intersects reports whether s and t have at least one code in common.
func (s Set) Intersects(t Set) bool {
	small, large := s, t
	if len(large.m) < len(small.m) {
		small, large = large, small
	}
	for code := range small.m {
		if large.Contains(code) {
			return true
		}
	}
	return false
}

// Codes returns the codes in s in ascending order.
func (s Set) Codes() []int {
	codes := make([]int, 0, len(s.m))
	for code := range s.m {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}
