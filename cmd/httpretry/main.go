// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command httpretry sends HTTP requests with retries, and explains how
// responses are classified and how Retry-After headers are read.
//
// Usage:
//
//	httpretry get [--config file.yaml] [--debug] URL
//	httpretry retry-after VALUE...
//	httpretry classify [--config file.yaml] CODE...
//
// Without --config, settings are read from HTTPRETRY_ environment
// variables.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
