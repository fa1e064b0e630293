// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"io"
	"syscall"
)

// A Category is the transience category of an error, as reported by
// Categorize.
//
// Not means another attempt is very unlikely to succeed. Every other
// category means another attempt has some prospect of success.
type Category int

const (
	// Not indicates any non-transient error, including a nil error and
	// the cancellation of the caller's context.
	Not Category = iota
	// Timeout indicates a client-side timeout. The server may be slow
	// for a while, or a later attempt with a longer timeout may succeed.
	//
	// Categorize returns Timeout if the error or any error it wraps has
	// a Timeout method that reports true.
	Timeout
	// ConnRefused indicates the remote host refused the connection
	// (ECONNREFUSED). A service which is starting or restarting is not
	// yet listening on its port, so refusal is often temporary.
	ConnRefused
	// ConnReset indicates the remote host reset a previously active TCP
	// connection (ECONNRESET), which commonly happens when a load
	// balancer or a service being redeployed drops in-flight requests.
	ConnReset
	// ConnClosed indicates the connection was closed before a complete
	// response was read, surfacing as io.EOF or io.ErrUnexpectedEOF.
	// This is typical of a keep-alive connection the server closed
	// while the client was reusing it.
	ConnClosed
)

var categoryNames = []string{
	"Not",
	"Timeout",
	"ConnRefused",
	"ConnReset",
	"ConnClosed",
}

// String returns the name of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Category(?)"
	}
	return categoryNames[c]
}

// Categorize returns the transience category of err.
//
// Categorize looks through the whole chain of wrapped errors. A
// Timeout takes precedence over the connection categories. A context
// cancellation is always Not, since the caller has given up. The
// Temporary method some errors have is never consulted.
func Categorize(err error) Category {
	if err == nil || errors.Is(err, context.Canceled) {
		return Not
	}

	var t timeouter
	if errors.As(err, &t) && t.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNRESET:
			return ConnReset
		case syscall.ECONNREFUSED:
			return ConnRefused
		}
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ConnClosed
	}

	return Not
}

// Is reports whether err is transient, i.e. whether its category is
// anything other than Not.
func Is(err error) bool {
	return Categorize(err) != Not
}

type timeouter interface {
	Timeout() bool
}
