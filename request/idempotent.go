// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import "net/http"

var idempotentMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
	http.MethodTrace:   true,
	http.MethodPut:     true,
	http.MethodDelete:  true,
}

// IsIdempotent reports whether a request with the given method may be
// sent more than once without changing its effect on the server.
//
// GET, HEAD, OPTIONS, TRACE, PUT and DELETE are idempotent. POST,
// PATCH, CONNECT and every extension method are not. Methods are
// tokens, so the comparison is case-sensitive: "get" is an extension
// method. The empty method means GET.
func IsIdempotent(method string) bool {
	if method == "" {
		return true
	}
	return idempotentMethods[method]
}
