// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retryafter_test

import (
	"fmt"

	"github.com/gogama/httpretry/retryafter"
)

func ExampleParse() {
	for _, v := range []string{"120", "Wed, 21 Oct 2015 07:28:00 GMT", "tomorrow", ""} {
		h := retryafter.Parse(v)
		fmt.Println(h.Kind, h)
	}
	// Output:
	// Delay after 120s
	// Instant at 2015-10-21T07:28:00Z
	// None none
	// None none
}
