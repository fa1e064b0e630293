// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry provides the budget and backoff half of a retry
// decision.
//
// Whether a failure can be retried at all, and the earliest moment a
// retry may happen, is decided by a recovery.Policy. A retry Policy then
// limits how many retries an execution gets (Decider) and how long the
// client backs off between attempts (Waiter). The client waits for the
// longer of the Waiter's backoff and the recovery action's minimum
// delay.
//
// A Policy is assembled from a Decider and a Waiter:
//
//	decider := retry.Times(3).And(retry.Before(5 * time.Second))
//	waiter := retry.NewExpWaiter(100*time.Millisecond, 2*time.Second, time.Now())
//	policy := retry.NewPolicy(decider, waiter)
//
// or taken from a backoff.BackOff:
//
//	policy := retry.NewBackOffPolicy(func() backoff.BackOff {
//		return backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4)
//	})
package retry
