// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retryafter parses the HTTP Retry-After response header into a
// hint about the earliest time a failed request may be retried.
//
// A Retry-After value is either a number of seconds to wait:
//
//	Retry-After: 120
//
// or an HTTP date after which to retry, in any of the three date
// formats HTTP/1.1 recipients must accept:
//
//	Retry-After: Sun, 06 Nov 1994 08:49:37 GMT   ; IMF-fixdate (RFC 1123)
//	Retry-After: Sunday, 06-Nov-94 08:49:37 GMT  ; obsolete RFC 850 format
//	Retry-After: Sun Nov  6 08:49:37 1994        ; ANSI C's asctime() format
//
// Values which can't be parsed are treated the same as a missing
// header: they produce a hint of kind None.
package retryafter
