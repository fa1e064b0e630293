// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package clock defines the time source used by the retry loop to read
// the current time and to sleep between attempts.
//
// A Clock's readings need not be anchored to real time. Clocks whose
// readings are anchored to real (wall clock) time implement the
// WallClock interface, which allows server-provided Retry-After hints
// to be translated onto them.
package clock

import (
	"context"
	"sync"
	"time"
)

// A Clock is a time source.
//
// Implementations must be safe for concurrent use by multiple
// goroutines, and Now must never go backwards.
type Clock interface {
	// Now returns the current reading of the clock.
	Now() time.Time
	// Sleep blocks until d has elapsed on the clock or ctx is done,
	// whichever happens first. It returns ctx.Err() if ctx ended the
	// sleep, and nil otherwise.
	Sleep(ctx context.Context, d time.Duration) error
}

// A WallClock is a Clock whose readings are anchored to real time, so
// that an absolute time such as an HTTP date can be converted into a
// duration on the clock.
type WallClock interface {
	Clock
	// WallTime returns the current real time. It is used to convert an
	// absolute instant into a delay, which is then added to Now.
	WallTime() time.Time
}

// System is the real clock. Its Now and WallTime both return
// time.Now() and its Sleep uses a timer.
var System WallClock = system{}

type system struct{}

func (system) Now() time.Time {
	return time.Now()
}

func (system) WallTime() time.Time {
	return time.Now()
}

func (system) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		if !timer.Stop() {
			<-timer.C
		}
		return ctx.Err()
	}
}

// A Fake is a Clock which only moves when it is slept on or advanced.
// Sleeping on a Fake returns immediately after moving the clock forward,
// and the requested durations are recorded.
//
// A Fake is not a WallClock: its readings have no relation to real time.
// Use WallFake for a fake clock that is anchored to real time.
type Fake struct {
	lock   sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

// NewFake returns a Fake whose first reading is start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the fake clock's current reading.
func (f *Fake) Now() time.Time {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.now
}

// Sleep records d and advances the clock by d, unless ctx is already
// done.
func (f *Fake) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	f.sleeps = append(f.sleeps, d)
	if d > 0 {
		f.now = f.now.Add(d)
	}
	return nil
}

// Advance moves the clock forward by d. Negative values are ignored.
func (f *Fake) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	f.now = f.now.Add(d)
}

// Sleeps returns a copy of the durations passed to Sleep, in order.
func (f *Fake) Sleeps() []time.Duration {
	f.lock.Lock()
	defer f.lock.Unlock()
	s := make([]time.Duration, len(f.sleeps))
	copy(s, f.sleeps)
	return s
}

// A WallFake is a Fake anchored to real time: it starts at the real
// time when it is created and its WallTime is the real time.
type WallFake struct {
	*Fake
}

// NewWallFake returns a WallFake whose first reading is the current
// real time.
func NewWallFake() *WallFake {
	return &WallFake{NewFake(time.Now())}
}

// WallTime returns time.Now().
func (w *WallFake) WallTime() time.Time {
	return time.Now()
}
