// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpretry

import (
	"net/url"

	"github.com/gogama/httpretry/request"
)

// Doer is the interface that wraps the basic Do method.
//
// Do executes a plan and returns the final execution state and error.
// Implementations must behave substantially the same as Client.Do: in
// particular, they must not retry plans whose method is not idempotent.
type Doer interface {
	Do(p *request.Plan) (*request.Execution, error)
}

// UnsafeDoer is the interface that wraps the DoUnsafe method.
//
// DoUnsafe executes a plan like Doer.Do, but may retry it whatever its
// method. Client implements UnsafeDoer.
type UnsafeDoer interface {
	DoUnsafe(p *request.Plan) (*request.Execution, error)
}

// Getter is the interface that wraps the basic Get method.
type Getter interface {
	Get(url string) (*request.Execution, error)
}

// Header is the interface that wraps the basic Head method.
type Header interface {
	Head(url string) (*request.Execution, error)
}

// Poster is the interface that wraps the basic Post method.
type Poster interface {
	Post(url, contentType string, body interface{}) (*request.Execution, error)
}

// FormPoster is the interface that wraps the basic PostForm method.
type FormPoster interface {
	PostForm(url string, data url.Values) (*request.Execution, error)
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method, which closes idle keep-alive connections if the underlying
// implementation supports it and does nothing otherwise.
type IdleCloser interface {
	CloseIdleConnections()
}

// Executor is the interface that groups the basic Do, Get, Head, Post,
// PostForm, and CloseIdleConnections methods.
//
// Any Doer can be converted into an Executor with Inflate.
type Executor interface {
	Doer
	Getter
	Header
	Poster
	FormPoster
	IdleCloser
}

// Get uses d to issue a GET to the specified URL.
func Get(d Doer, url string) (*request.Execution, error) {
	p, err := request.NewPlan("GET", url, nil)
	if err != nil {
		return nil, err
	}
	return d.Do(p)
}

// Head uses d to issue a HEAD to the specified URL.
func Head(d Doer, url string) (*request.Execution, error) {
	p, err := request.NewPlan("HEAD", url, nil)
	if err != nil {
		return nil, err
	}
	return d.Do(p)
}

// Post uses d to issue a POST to the specified URL. Since d is a Doer,
// the POST is attempted at most once.
//
// The body may be nil, a string, a []byte, an io.Reader or an
// io.ReadCloser.
func Post(d Doer, url, contentType string, body interface{}) (*request.Execution, error) {
	p, err := newPost(url, contentType, body)
	if err != nil {
		return nil, err
	}
	return d.Do(p)
}

// PostUnsafe uses d to issue a POST to the specified URL, retrying
// failed attempts.
func PostUnsafe(d UnsafeDoer, url, contentType string, body interface{}) (*request.Execution, error) {
	p, err := newPost(url, contentType, body)
	if err != nil {
		return nil, err
	}
	return d.DoUnsafe(p)
}

// PostForm uses d to issue a POST to the specified URL, with data's
// keys and values URL-encoded as the request body.
func PostForm(d Doer, url string, data url.Values) (*request.Execution, error) {
	return Post(d, url, "application/x-www-form-urlencoded", data.Encode())
}

func newPost(url, contentType string, body interface{}) (*request.Plan, error) {
	p, err := request.NewPlan("POST", url, body)
	if err != nil {
		return nil, err
	}
	p.Header.Set("Content-Type", contentType)
	return p, nil
}

// Inflate converts any non-nil Doer into an Executor.
func Inflate(d Doer) Executor {
	if d == nil {
		panic("httpretry: nil doer")
	}

	if e, ok := d.(Executor); ok {
		return e
	}

	return inflated{d}
}

type inflated struct {
	doer Doer
}

func (i inflated) Do(p *request.Plan) (*request.Execution, error) {
	return i.doer.Do(p)
}

func (i inflated) Get(url string) (*request.Execution, error) {
	return Get(i.doer, url)
}

func (i inflated) Head(url string) (*request.Execution, error) {
	return Head(i.doer, url)
}

func (i inflated) Post(url, contentType string, body interface{}) (*request.Execution, error) {
	return Post(i.doer, url, contentType, body)
}

func (i inflated) PostForm(url string, data url.Values) (*request.Execution, error) {
	return PostForm(i.doer, url, data)
}

func (i inflated) CloseIdleConnections() {
	if ic, ok := i.doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}
