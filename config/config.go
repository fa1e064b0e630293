// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads the settings of an httpretry.Client from the
// environment or from a YAML document.
//
// Environment variables are prefixed with HTTPRETRY_, for example
// HTTPRETRY_MAX_RETRIES=3 or HTTPRETRY_TRANSIENT_STATUSES=409,425.
package config

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gogama/httpretry"
	"github.com/gogama/httpretry/clock"
	"github.com/gogama/httpretry/recovery"
	"github.com/gogama/httpretry/request"
	"github.com/gogama/httpretry/retry"
	"github.com/gogama/httpretry/status"
	"github.com/gogama/httpretry/timeout"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

// Prefix is the prefix of the environment variables read by FromEnv.
const Prefix = "HTTPRETRY"

// Backoff strategies.
const (
	// BackoffJitter waits a random duration up to an exponentially
	// growing ceiling.
	BackoffJitter = "jitter"
	// BackoffExponential uses the randomized exponential backoff of
	// github.com/cenkalti/backoff.
	BackoffExponential = "exponential"
	// BackoffFixed always waits BackoffBase.
	BackoffFixed = "fixed"
)

// Config holds the settings of a Client.
type Config struct {
	// MaxRetries is the number of retries allowed after the first
	// attempt.
	MaxRetries int `envconfig:"MAX_RETRIES" default:"5" yaml:"max_retries"`

	// Backoff selects the wait between attempts: one of BackoffJitter,
	// BackoffExponential or BackoffFixed.
	Backoff     string        `envconfig:"BACKOFF" default:"jitter" yaml:"backoff"`
	BackoffBase time.Duration `envconfig:"BACKOFF_BASE" default:"50ms" yaml:"backoff_base"`
	BackoffMax  time.Duration `envconfig:"BACKOFF_MAX" default:"1s" yaml:"backoff_max"`

	// AttemptTimeout is the timeout of each attempt. Zero means no
	// timeout.
	AttemptTimeout time.Duration `envconfig:"ATTEMPT_TIMEOUT" default:"5s" yaml:"attempt_timeout"`

	// SuccessStatuses and TransientStatuses are added to the default
	// success and transient failure sets. PermanentStatuses are removed
	// from both.
	SuccessStatuses   []int `envconfig:"SUCCESS_STATUSES" yaml:"success_statuses"`
	TransientStatuses []int `envconfig:"TRANSIENT_STATUSES" yaml:"transient_statuses"`
	PermanentStatuses []int `envconfig:"PERMANENT_STATUSES" yaml:"permanent_statuses"`

	// HonorRetryAfter makes the client wait for the server's
	// Retry-After hint before retrying.
	HonorRetryAfter bool `envconfig:"HONOR_RETRY_AFTER" default:"true" yaml:"honor_retry_after"`

	// MaxRetryAfter, if positive, gives up instead of retrying when the
	// server asks for a longer wait.
	MaxRetryAfter time.Duration `envconfig:"MAX_RETRY_AFTER" default:"0s" yaml:"max_retry_after"`

	// RateLimit is the maximum number of attempts per second. Zero
	// means no limit.
	RateLimit float64 `envconfig:"RATE_LIMIT" default:"0" yaml:"rate_limit"`
	RateBurst int     `envconfig:"RATE_BURST" default:"1" yaml:"rate_burst"`
}

// Default returns the configuration used when nothing is set. It
// matches the defaults of a zero-value Client.
func Default() Config {
	return Config{
		MaxRetries:      retry.DefaultTimes,
		Backoff:         BackoffJitter,
		BackoffBase:     50 * time.Millisecond,
		BackoffMax:      time.Second,
		AttemptTimeout:  5 * time.Second,
		HonorRetryAfter: true,
		RateBurst:       1,
	}
}

// FromEnv reads the configuration from HTTPRETRY_ environment
// variables. Unset variables take their default values.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("httpretry/config: failed to process environment variables: %w", err)
	}
	return cfg, cfg.Validate()
}

// Load reads the configuration from a YAML document. Fields missing
// from the document take their default values, and unknown fields are
// an error. An empty document yields Default().
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("httpretry/config: failed to decode YAML: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the configuration for values no Client can be built
// from.
func (c Config) Validate() error {
	if c.MaxRetries < 0 {
		return fmt.Errorf("httpretry/config: negative max retries: %d", c.MaxRetries)
	}
	switch c.Backoff {
	case BackoffJitter, BackoffExponential, BackoffFixed:
	default:
		return fmt.Errorf("httpretry/config: unknown backoff %q", c.Backoff)
	}
	if c.BackoffBase <= 0 {
		return fmt.Errorf("httpretry/config: backoff base must be positive: %s", c.BackoffBase)
	}
	if c.BackoffMax < c.BackoffBase {
		return fmt.Errorf("httpretry/config: backoff max %s is less than base %s", c.BackoffMax, c.BackoffBase)
	}
	if c.AttemptTimeout < 0 {
		return fmt.Errorf("httpretry/config: negative attempt timeout: %s", c.AttemptTimeout)
	}
	if c.MaxRetryAfter < 0 {
		return fmt.Errorf("httpretry/config: negative max retry after: %s", c.MaxRetryAfter)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("httpretry/config: negative rate limit: %g", c.RateLimit)
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("httpretry/config: rate burst must be positive: %d", c.RateBurst)
	}
	if _, err := c.Statuses(); err != nil {
		return err
	}
	return nil
}

// Statuses returns the status classification configuration. It
// returns an error if a code would be both a success and a transient
// failure.
func (c Config) Statuses() (status.Config, error) {
	success := status.Successes.
		Union(status.NewSet(c.SuccessStatuses...)).
		Without(c.PermanentStatuses...)
	transient := status.TransientFailures.
		Union(status.NewSet(c.TransientStatuses...)).
		Without(c.PermanentStatuses...)
	if success.Intersects(transient) {
		for _, code := range success.Codes() {
			if transient.Contains(code) {
				return status.Config{}, fmt.Errorf("httpretry/config: status %d is both a success and a transient failure", code)
			}
		}
	}
	return status.NewConfig(success, transient), nil
}

// RetryPolicy returns the retry policy selected by MaxRetries,
// MaxRetryAfter and the backoff settings.
func (c Config) RetryPolicy() retry.Policy {
	p := c.backoffPolicy()
	if c.MaxRetryAfter > 0 {
		return limitedPolicy{p, retry.MaxDelay(c.MaxRetryAfter, clock.System)}
	}
	return p
}

func (c Config) backoffPolicy() retry.Policy {
	switch c.Backoff {
	case BackoffExponential:
		maxRetries := uint64(c.MaxRetries)
		return retry.NewBackOffPolicy(func() backoff.BackOff {
			b := backoff.NewExponentialBackOff(
				backoff.WithInitialInterval(c.BackoffBase),
				backoff.WithMaxInterval(c.BackoffMax),
				backoff.WithMaxElapsedTime(0),
			)
			return backoff.WithMaxRetries(b, maxRetries)
		})
	case BackoffFixed:
		return retry.NewPolicy(retry.Times(c.MaxRetries), retry.NewFixedWaiter(c.BackoffBase))
	default:
		return retry.NewPolicy(retry.Times(c.MaxRetries), retry.NewExpWaiter(c.BackoffBase, c.BackoffMax, time.Now()))
	}
}

type limitedPolicy struct {
	retry.Policy
	limit retry.Decider
}

func (p limitedPolicy) Decide(e *request.Execution) bool {
	return p.limit.Decide(e) && p.Policy.Decide(e)
}

// TimeoutPolicy returns the attempt timeout policy.
func (c Config) TimeoutPolicy() timeout.Policy {
	if c.AttemptTimeout == 0 {
		return timeout.Infinite
	}
	return timeout.Fixed(c.AttemptTimeout)
}

// Recovery returns the recovery policy. It honors Retry-After over the
// system clock if HonorRetryAfter is set.
func (c Config) Recovery() recovery.Policy {
	if c.HonorRetryAfter {
		return recovery.DefaultPolicy
	}
	return recovery.New(recovery.TransientErr)
}

// Limiter returns the attempt rate limiter, or nil if RateLimit is
// zero.
func (c Config) Limiter() *rate.Limiter {
	if c.RateLimit == 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(c.RateLimit), c.RateBurst)
}

// Client builds a Client from the configuration. The client's HTTPDoer
// and Handlers are left nil for the caller to set.
func (c Config) Client() (*httpretry.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	statuses, err := c.Statuses()
	if err != nil {
		return nil, err
	}
	return &httpretry.Client{
		Statuses:      statuses,
		Recovery:      c.Recovery(),
		Limiter:       c.Limiter(),
		RetryPolicy:   c.RetryPolicy(),
		TimeoutPolicy: c.TimeoutPolicy(),
	}, nil
}
