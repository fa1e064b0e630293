// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package recovery decides how a retry loop should recover from a failed
request attempt: give up, retry now, or retry no earlier than a given
instant.

Application failures (see package httperror) are decided using HTTP
information. A permanent failure is never retried. A transient failure
is retried, no earlier than the server's Retry-After hint if the retry
loop's clock is anchored to real time. Any other error is handed to a
Fallback unchanged.

A Policy bundles these rules for use by a retry loop:

	p := recovery.NewWallClock(clock.System, recovery.TransientErr)
	...
	switch a := p.Recover(err, clock.System.Now()); a.Kind {
	case recovery.Abort:
		return err
	case recovery.RetryNow:
		...
	case recovery.RetryNoEarlierThan:
		... sleep until a.NotBefore ...
	}

A Retry-After value only means something relative to real time, so only
NewWallClock, which requires a clock.WallClock, builds a Policy which
honors it. A Policy built with New ignores Retry-After.
*/
package recovery
