// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the types Plan, which describes a logical HTTP
request, and Execution, which records the progress of a Plan through the
retry loop.

A Plan looks like a stripped-down http.Request with the server-side
fields removed and a pre-buffered []byte body, so that the same request
can be sent again on every attempt:

	p, err := request.NewPlan("GET", "https://example.com", nil)
	...
	e, err := client.Do(p)
	...

The Plan's context bounds the whole execution, including the waits
between attempts. Its deadline is separate from the per-attempt
timeouts chosen by the client's timeout.Policy: an attempt timeout may
be retried, a plan timeout never is.

Whether a Plan may be retried at all depends on its method. Use
IsIdempotent, or Plan.Idempotent, to apply the idempotency table of
RFC 9110: GET, HEAD, OPTIONS, TRACE, PUT and DELETE may be repeated,
any other method may not.

An Execution is returned by the client's executing methods and handed
to every policy and event handler invoked along the way. It carries the
attempt counter, the latest response and error, the status
classification of the latest response and the latest recovery action.
*/
package request
