// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpretry

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

var serverKinds = []string{"http", "https", "http2"}

// A serverReply is one scripted response of a scriptServer.
type serverReply struct {
	HeaderPause time.Duration
	StatusCode  int
	Header      http.Header
	Body        string
}

// A scriptServer answers the n-th request it receives with the n-th
// scripted reply, repeating the last reply once the script runs out.
type scriptServer struct {
	*httptest.Server
	lock    sync.Mutex
	replies []serverReply
	methods []string
}

func newScriptServer(t *testing.T, kind string, replies ...serverReply) *scriptServer {
	if len(replies) == 0 {
		panic("no replies")
	}
	s := &scriptServer{replies: replies}
	s.Server = httptest.NewUnstartedServer(http.HandlerFunc(s.serve))
	switch kind {
	case "http":
		s.Start()
	case "https":
		s.StartTLS()
	case "http2":
		s.EnableHTTP2 = true
		s.StartTLS()
	default:
		panic("unknown server kind " + kind)
	}
	t.Cleanup(s.Close)
	return s
}

func (s *scriptServer) serve(w http.ResponseWriter, req *http.Request) {
	_, _ = io.Copy(io.Discard, req.Body)
	_ = req.Body.Close()

	s.lock.Lock()
	i := len(s.methods)
	if i >= len(s.replies) {
		i = len(s.replies) - 1
	}
	reply := s.replies[i]
	s.methods = append(s.methods, req.Method)
	s.lock.Unlock()

	for k, v := range reply.Header {
		w.Header()[k] = v
	}

	if reply.HeaderPause > 0 {
		select {
		case <-time.After(reply.HeaderPause):
		case <-req.Context().Done():
			return
		}
	}

	w.WriteHeader(reply.StatusCode)
	_, _ = io.WriteString(w, reply.Body)
}

// Methods returns the methods of the requests received so far.
func (s *scriptServer) Methods() []string {
	s.lock.Lock()
	defer s.lock.Unlock()
	m := make([]string, len(s.methods))
	copy(m, s.methods)
	return m
}
