// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package recovery

import (
	"time"

	"github.com/gogama/httpretry/httperror"
	"github.com/gogama/httpretry/retryafter"
)

// Decide derives the recovery action for an application failure
// without consulting the Retry-After header. Use Decide when the retry
// loop's clock is not anchored to real time.
//
// A permanent failure yields Abort and a transient failure yields
// RetryNow.
func Decide(v httperror.View, now time.Time) Action {
	if !v.IsTransient() {
		return AbortAction()
	}

	return RetryNowAction()
}

// DecideWallClock derives the recovery action for an application
// failure, honoring the Retry-After header of the failed response.
//
// Parameter now is the retry loop clock's current reading and wallNow
// is the current real time. A permanent failure yields Abort whatever
// its Retry-After value. For a transient failure:
//
// • with no usable Retry-After hint the action is RetryNow;
//
// • with a delay-seconds hint s the action is RetryNoEarlierThan at
// now+s;
//
// • with an HTTP date hint t the action is RetryNoEarlierThan at
// now+(t-wallNow). The date is turned into a delay against real time,
// and the delay is then added to the loop clock's reading, so any skew
// between the two clocks is absorbed.
func DecideWallClock(v httperror.View, now, wallNow time.Time) Action {
	if !v.IsTransient() {
		return AbortAction()
	}

	hint := retryafter.FromHeader(v.HTTPResponse().Header)
	switch hint.Kind {
	case retryafter.Delay:
		return RetryNoEarlierThanAction(now.Add(hint.Delay()))
	case retryafter.Instant:
		return RetryNoEarlierThanAction(now.Add(hint.At.Sub(wallNow)))
	default:
		return RetryNowAction()
	}
}
