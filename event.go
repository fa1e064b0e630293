// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpretry

// An Event identifies a point in the retry loop at which installed
// Handlers run.
type Event int

const (
	// BeforeExecutionStart occurs before the execution starts. Only
	// the execution's Plan is set.
	BeforeExecutionStart Event = iota
	// BeforeAttempt occurs before each attempt. The execution's
	// Request is the request that will be sent once the handlers
	// finish, and handlers may change it. Clone the URL and Header
	// before changing them, since they are shared with the plan.
	BeforeAttempt
	// BeforeReadBody occurs when an attempt produced a response, before
	// its body is read. It fires whatever the status code.
	BeforeReadBody
	// AfterAttemptTimeout occurs when an attempt failed with a timeout.
	// The attempt timeout counter has already been incremented.
	AfterAttemptTimeout
	// AfterAttempt occurs after every attempt. The response has been
	// classified: Classification is set, and if the status is a failure
	// Err holds an *httperror.Error[[]byte] with the response body.
	AfterAttempt
	// AfterRecoveryDecision occurs after the recovery policy decided
	// how to recover from a failed attempt, and before the retry budget
	// is consulted. The execution's Action holds the decision.
	//
	// AfterRecoveryDecision does not fire after a successful attempt,
	// nor for a plan that may not be retried because its method is
	// not idempotent.
	AfterRecoveryDecision
	// AfterPlanTimeout occurs when the deadline of the plan's context
	// is exceeded, either during an attempt or while waiting to retry.
	// It always follows the AfterAttempt of the last attempt.
	AfterPlanTimeout
	// AfterExecutionEnd occurs when the execution has ended and its End
	// time is set.
	AfterExecutionEnd

	eventSentinel
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeAttempt",
	"BeforeReadBody",
	"AfterAttemptTimeout",
	"AfterAttempt",
	"AfterRecoveryDecision",
	"AfterPlanTimeout",
	"AfterExecutionEnd",
}

// Events returns all events in the order in which they occur.
func Events() []Event {
	evts := make([]Event, numEvents)
	for i := range evts {
		evts[i] = Event(i)
	}
	return evts
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
