// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
)

const (
	nilCtxMsg = "httpretry/request: nil context"
)

// A Plan is a logical HTTP request to be executed by the retry loop,
// possibly over several attempts.
//
// Its fields mirror those of http.Request, minus the server-only
// fields, with the body simplified to a byte slice and the trailer
// removed.
type Plan struct {
	// Method is the HTTP method. An empty string means GET.
	Method string

	// URL is the URL to access.
	URL *urlpkg.URL

	// Header contains the request header fields.
	Header http.Header

	// Body is the pre-buffered request body. A nil or empty body means
	// no body is sent.
	Body []byte

	// TransferEncoding lists the transfer encodings from outermost to
	// innermost. It can usually be left empty.
	TransferEncoding []string

	// Close asks for the connection to be closed after each attempt,
	// preventing connection reuse between attempts.
	Close bool

	// Host optionally overrides the Host header. If empty, URL.Host is
	// sent.
	Host string

	ctx context.Context
}

// NewPlan is NewPlanWithContext with the background context.
func NewPlan(method, url string, body interface{}) (*Plan, error) {
	return NewPlanWithContext(context.Background(), method, url, body)
}

// NewPlanWithContext returns a new Plan for a method, URL, and optional
// body.
//
// Parameter body may be nil, a string, a []byte, an io.Reader or an
// io.ReadCloser. Readers are read to the end and buffered, and closed
// if they are closers. An empty method means GET. The method must be a
// valid HTTP token.
func NewPlanWithContext(ctx context.Context, method, url string, body interface{}) (*Plan, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = http.MethodGet
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("httpretry/request: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	u.Host = strings.TrimSuffix(u.Host, ":")
	b, err := BodyBytes(body)
	if err != nil {
		return nil, err
	}
	return &Plan{
		ctx:    ctx,
		Method: method,
		URL:    u,
		Header: make(http.Header),
		Body:   b,
		Host:   u.Host,
	}, nil
}

// Context returns the plan's context, which is never nil. Use
// WithContext to change it.
func (p *Plan) Context() context.Context {
	if p.ctx != nil {
		return p.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of p with its context changed to
// ctx, which must be non-nil.
func (p *Plan) WithContext(ctx context.Context) *Plan {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	p2 := new(Plan)
	*p2 = *p
	p2.ctx = ctx
	return p2
}

// Idempotent reports whether the plan's method is idempotent, and thus
// whether the plan may safely be attempted more than once.
func (p *Plan) Idempotent() bool {
	return IsIdempotent(p.Method)
}

// AddCookie adds a cookie to the plan. All cookies are written into a
// single Cookie header field, separated by semicolons.
func (p *Plan) AddCookie(c *http.Cookie) {
	s := (&http.Cookie{Name: c.Name, Value: c.Value}).String()
	if h := p.Header.Get("Cookie"); h != "" {
		p.Header.Set("Cookie", h+"; "+s)
	} else {
		p.Header.Set("Cookie", s)
	}
}

// SetBasicAuth sets the plan's Authorization header to use HTTP Basic
// Authentication with the given username and password.
func (p *Plan) SetBasicAuth(username, password string) {
	auth := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	p.Header.Set("Authorization", "Basic "+auth)
}

// ToRequest creates the http.Request for one attempt at the plan, with
// its context set to ctx.
func (p *Plan) ToRequest(ctx context.Context) *http.Request {
	r := &http.Request{
		Method:           p.Method,
		URL:              p.URL,
		Proto:            "HTTP/1.1",
		ProtoMajor:       1,
		ProtoMinor:       1,
		Header:           p.Header,
		TransferEncoding: p.TransferEncoding,
		Close:            p.Close,
		Host:             p.Host,
	}
	if len(p.Body) > 0 {
		r.Body = io.NopCloser(bytes.NewReader(p.Body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(p.Body)), nil
		}
		r.ContentLength = int64(len(p.Body))
	}
	return r.WithContext(ctx)
}

func validMethod(method string) bool {
	return strings.IndexFunc(method, func(r rune) bool {
		return !httpguts.IsTokenRune(r)
	}) == -1
}

const badBodyTypeMsg = "httpretry/request: invalid body type (use nil, " +
	"string, []byte, io.Reader or io.ReadCloser)"

// BodyBytes converts a generic body value to a byte slice for use as a
// plan body.
//
// A nil body gives a nil slice. A []byte is returned as is, and a
// string is converted. An io.Reader is read to the end, and closed if
// it is an io.ReadCloser; a read or close error is returned with a nil
// slice. Any other type is an error.
func BodyBytes(body interface{}) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case io.ReadCloser:
		b, err := io.ReadAll(x)
		if err != nil {
			return nil, err
		}
		if err = x.Close(); err != nil {
			return nil, err
		}
		return b, nil
	case io.Reader:
		return BodyBytes(io.NopCloser(x))
	default:
		return nil, errors.New(badBodyTypeMsg)
	}
}
