// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
)

func newClassifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "classify CODE...",
		Short: "Classify status codes as success, transient failure or permanent failure",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			statuses, err := cfg.Statuses()
			if err != nil {
				return err
			}
			for _, arg := range args {
				code, err := strconv.Atoi(arg)
				if err != nil || code < 100 || code > 999 {
					return fmt.Errorf("invalid status code %q", arg)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n",
					code, http.StatusText(code), statuses.Classify(code))
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}
