// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httperror

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gogama/httpretry/status"
)

// Check returns an application failure error if r's status code is not
// a success according to cfg, and nil otherwise. If cfg is the zero
// value, status.DefaultConfig is used.
//
// The returned error, if any, has type *Error[Empty]. Check panics if
// the sets in cfg overlap.
func Check(r *http.Response, cfg status.Config) error {
	c := classify(r, cfg)
	if !c.Failed() {
		return nil
	}

	return New(NewResponse(r), c == status.TransientFailure)
}

// CheckWithBody is like Check but attaches a body to the returned
// error. The body is produced by makeBody, which is only called if r
// failed. The body may not have been fully received yet, so makeBody
// receives ctx and may block.
//
// If makeBody returns an error, CheckWithBody returns that error
// instead of the application failure: an inability to materialize the
// body is reported in preference to the failure it would have
// described.
//
// The returned application failure error, if any, has type *Error[B].
func CheckWithBody[B any](ctx context.Context, r *http.Response, cfg status.Config, makeBody func(context.Context) (B, error)) error {
	c := classify(r, cfg)
	if !c.Failed() {
		return nil
	}

	body, err := makeBody(ctx)
	if err != nil {
		return err
	}

	return NewWithBody(NewResponse(r), body, c == status.TransientFailure)
}

// ReadBody returns a body function for CheckWithBody which reads and
// closes r.Body, returning the bytes read.
func ReadBody(r *http.Response) func(context.Context) ([]byte, error) {
	return func(ctx context.Context) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if r.Body == nil {
			return nil, nil
		}
		defer func() {
			_ = r.Body.Close()
		}()
		return io.ReadAll(r.Body)
	}
}

// DecodeJSON returns a body function for CheckWithBody which decodes
// r.Body as JSON into a value of type B, then closes the body.
func DecodeJSON[B any](r *http.Response) func(context.Context) (B, error) {
	return func(ctx context.Context) (B, error) {
		var b B
		if err := ctx.Err(); err != nil {
			return b, err
		}
		if r.Body == nil {
			return b, io.ErrUnexpectedEOF
		}
		defer func() {
			_ = r.Body.Close()
		}()
		err := json.NewDecoder(r.Body).Decode(&b)
		return b, err
	}
}

func classify(r *http.Response, cfg status.Config) status.Classification {
	if r == nil {
		panic("httpretry/httperror: nil response")
	}
	if cfg.Zero() {
		cfg = status.DefaultConfig
	}
	return cfg.Classify(r.StatusCode)
}
