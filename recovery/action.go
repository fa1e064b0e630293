// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package recovery

import "time"

// A Kind identifies a recovery action.
type Kind int

const (
	// Abort means the failure should be returned to the caller without
	// further attempts.
	Abort Kind = iota
	// RetryNow means another attempt may be made without any minimum
	// delay beyond the retry loop's own backoff.
	RetryNow
	// RetryNoEarlierThan means another attempt may be made, but not
	// before the action's NotBefore instant.
	RetryNoEarlierThan
)

var kindNames = []string{
	"Abort",
	"RetryNow",
	"RetryNoEarlierThan",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}
	return kindNames[k]
}

// An Action is the decision of whether, and when, to retry after a
// failed attempt.
type Action struct {
	// Kind is the kind of action.
	Kind Kind
	// NotBefore is the earliest instant, on the retry loop's clock, at
	// which the next attempt may start. It is only meaningful when Kind
	// is RetryNoEarlierThan.
	NotBefore time.Time
}

// AbortAction returns an Action of kind Abort.
func AbortAction() Action {
	return Action{Kind: Abort}
}

// RetryNowAction returns an Action of kind RetryNow.
func RetryNowAction() Action {
	return Action{Kind: RetryNow}
}

// RetryNoEarlierThanAction returns an Action of kind RetryNoEarlierThan
// with the given instant.
func RetryNoEarlierThanAction(t time.Time) Action {
	return Action{Kind: RetryNoEarlierThan, NotBefore: t}
}

// Retry reports whether a retries.
func (a Action) Retry() bool {
	return a.Kind != Abort
}

// MinDelay returns the minimum wait, measured from now, required by a.
// It is zero unless a is RetryNoEarlierThan with NotBefore after now.
func (a Action) MinDelay(now time.Time) time.Duration {
	if a.Kind != RetryNoEarlierThan {
		return 0
	}
	d := a.NotBefore.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// String returns a description of the action.
func (a Action) String() string {
	if a.Kind == RetryNoEarlierThan {
		return a.Kind.String() + "(" + a.NotBefore.Format(time.RFC3339Nano) + ")"
	}
	return a.Kind.String()
}
