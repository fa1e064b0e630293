// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogama/httpretry"
	"github.com/gogama/httpretry/logging"
	"github.com/gogama/httpretry/request"

	"github.com/spf13/cobra"
)

func newGetCmd(opts *options) *cobra.Command {
	var (
		method string
		data   string
		unsafe bool
	)
	cmd := &cobra.Command{
		Use:   "get URL",
		Short: "Send a request, retrying failed attempts, and print the response body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			client, err := cfg.Client()
			if err != nil {
				return err
			}
			client.Handlers = logging.Handlers(opts.logger(cmd.ErrOrStderr()))

			ctx, cancel := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			var body interface{}
			if data != "" {
				body = data
			}
			p, err := request.NewPlanWithContext(ctx, method, args[0], body)
			if err != nil {
				return err
			}

			e, err := execute(client, p, unsafe)
			if e != nil && e.Body != nil {
				_, _ = cmd.OutOrStdout().Write(e.Body)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&method, "method", "X", "GET", "request method")
	cmd.Flags().StringVarP(&data, "data", "d", "", "request body")
	cmd.Flags().BoolVar(&unsafe, "unsafe", false, "retry the request even if its method is not idempotent")
	return cmd
}

func execute(client *httpretry.Client, p *request.Plan, unsafe bool) (*request.Execution, error) {
	if unsafe {
		return client.DoUnsafe(p)
	}
	return client.Do(p)
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
