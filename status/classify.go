// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package status

const overlapMsg = "httpretry/status: success and transient failure sets overlap"

// A Classification is the outcome of classifying an HTTP response
// status code, as reported by Classify.
type Classification int

const (
	// Success indicates the status code is in the success set.
	Success Classification = iota
	// TransientFailure indicates the status code is in the transient
	// failure set. A subsequent attempt may succeed.
	TransientFailure
	// PermanentFailure indicates the status code is in neither set.
	// Subsequent identical attempts will never succeed.
	PermanentFailure
)

var classificationNames = []string{
	"Success",
	"TransientFailure",
	"PermanentFailure",
}

// String returns the name of the classification.
func (c Classification) String() string {
	if c < 0 || int(c) >= len(classificationNames) {
		return "Classification(?)"
	}
	return classificationNames[c]
}

// Failed reports whether the classification is a failure of either
// kind.
func (c Classification) Failed() bool {
	return c != Success
}

// Classify classifies an HTTP response status code against a success
// set and a transient failure set.
//
// The two sets must be disjoint: Classify panics if they overlap.
func Classify(code int, success, transient Set) Classification {
	if success.Intersects(transient) {
		panic(overlapMsg)
	}

	if success.Contains(code) {
		return Success
	} else if transient.Contains(code) {
		return TransientFailure
	}

	return PermanentFailure
}

// A Config pairs the status code sets used to classify responses.
//
// The zero value is not useful; start from DefaultConfig or use
// NewConfig.
type Config struct {
	// Success contains the status codes which indicate success.
	Success Set
	// TransientFailure contains the status codes which indicate a
	// transient failure.
	TransientFailure Set
}

// DefaultConfig classifies Successes as success and TransientFailures
// as transient failures.
var DefaultConfig = Config{
	Success:          Successes,
	TransientFailure: TransientFailures,
}

// NewConfig constructs a Config from the given sets, panicking if they
// overlap.
func NewConfig(success, transient Set) Config {
	if success.Intersects(transient) {
		panic(overlapMsg)
	}
	return Config{Success: success, TransientFailure: transient}
}

// Classify classifies code using the sets in c. It panics if the sets
// overlap.
func (c Config) Classify(code int) Classification {
	return Classify(code, c.Success, c.TransientFailure)
}

// Zero reports whether c is the zero value, in which case callers
// typically substitute DefaultConfig.
func (c Config) Zero() bool {
	return c.Success.m == nil && c.TransientFailure.m == nil
}
