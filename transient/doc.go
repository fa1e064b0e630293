// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient sorts the errors a request attempt can fail with
// before any HTTP response is received, such as timeouts and broken
// connections, into transience categories.
//
// HTTP-level failures are not errors of this kind: they are classified
// by status code in package status. Package transient is what the
// recovery.TransientErr fallback uses to decide the errors the HTTP
// classification cannot see.
//
// Package transient depends only on the standard library.
package transient
