// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httperror

import (
	"errors"
	"net/http"
	"strconv"
)

// A Response is a copy of the parts of an HTTP response an application
// failure is judged on: the status and the header.
type Response struct {
	// StatusCode is the response status code, e.g. 503.
	StatusCode int
	// Status is the response status line, e.g. "503 Service
	// Unavailable".
	Status string
	// Header contains the response header fields.
	Header http.Header
}

// NewResponse copies the status and header from r. The header is
// cloned so that later changes to r do not affect the copy.
func NewResponse(r *http.Response) Response {
	if r == nil {
		panic("httpretry/httperror: nil response")
	}
	s := r.Status
	if s == "" {
		s = statusLine(r.StatusCode)
	}
	return Response{
		StatusCode: r.StatusCode,
		Status:     s,
		Header:     r.Header.Clone(),
	}
}

// Empty is the body type of an Error constructed without a body.
type Empty struct{}

// A View is implemented by every Error regardless of its body type. It
// allows an application failure to be recognized and inspected without
// knowing the body type.
type View interface {
	error
	// HTTPResponse returns the response to the failed request.
	HTTPResponse() Response
	// AnyBody returns the error's body as an untyped value. Use the
	// Body field of Error when the body type is known.
	AnyBody() interface{}
	// IsTransient reports whether the failure is transient. If the
	// failure is transient, a subsequent attempt may succeed. If not,
	// subsequent identical attempts will never succeed.
	IsTransient() bool
}

// An Error describes an HTTP application failure.
//
// An Error is never modified after it is constructed.
type Error[B any] struct {
	// Response is the response to the failed request.
	Response Response
	// Body is the response body, or details derived from it. It is
	// Empty if no body was requested.
	Body B
	// Transient indicates whether the failure is transient.
	Transient bool
}

// New constructs an Error without a body.
func New(r Response, transient bool) *Error[Empty] {
	return &Error[Empty]{Response: r, Transient: transient}
}

// NewWithBody constructs an Error with a body.
func NewWithBody[B any](r Response, body B, transient bool) *Error[B] {
	return &Error[B]{Response: r, Body: body, Transient: transient}
}

// Error returns a description of the failure, for example
// "httpretry: 503 Service Unavailable (transient failure)".
func (e *Error[B]) Error() string {
	kind := "permanent failure"
	if e.Transient {
		kind = "transient failure"
	}
	s := e.Response.Status
	if s == "" {
		s = statusLine(e.Response.StatusCode)
	}
	return "httpretry: " + s + " (" + kind + ")"
}

// HTTPResponse returns e.Response.
func (e *Error[B]) HTTPResponse() Response {
	return e.Response
}

// AnyBody returns e.Body.
func (e *Error[B]) AnyBody() interface{} {
	return e.Body
}

// IsTransient returns e.Transient.
func (e *Error[B]) IsTransient() bool {
	return e.Transient
}

// As finds the first error in err's chain that is an application
// failure of any body type.
func As(err error) (View, bool) {
	var v View
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// SameDecision reports whether a and b represent the same
// classification decision: their responses have the same status code
// and header fields, and they agree on transience. Bodies are not
// compared.
func SameDecision(a, b View) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := a.HTTPResponse(), b.HTTPResponse()
	return ra.StatusCode == rb.StatusCode &&
		a.IsTransient() == b.IsTransient() &&
		sameHeader(ra.Header, rb.Header)
}

func sameHeader(a, b http.Header) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if va[i] != vb[i] {
				return false
			}
		}
	}
	return true
}

func statusLine(code int) string {
	s := strconv.Itoa(code)
	if text := http.StatusText(code); text != "" {
		s += " " + text
	}
	return s
}
