// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package status classifies HTTP response status codes as a success, a
// transient failure, or a permanent failure.
//
// A classification is made against two disjoint sets of status codes:
// the codes that indicate success and the codes that indicate a
// transient failure. Every other code is a permanent failure.
//
//	c := status.DefaultConfig.Classify(resp.StatusCode)
//	if c == status.TransientFailure {
//		...
//	}
//
// Package status depends only on the standard library.
package status
