// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gogama/httpretry/clock"
	"github.com/gogama/httpretry/httperror"
	"github.com/gogama/httpretry/recovery"
	"github.com/gogama/httpretry/retryafter"

	"github.com/spf13/cobra"
)

func newRetryAfterCmd() *cobra.Command {
	var code int
	cmd := &cobra.Command{
		Use:   "retry-after VALUE...",
		Short: "Parse Retry-After header values and show the recovery decision for each",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := clock.System.Now()
			wallNow := clock.System.WallTime()
			for _, value := range args {
				hint := retryafter.Parse(value)
				r := httperror.Response{
					StatusCode: code,
					Status:     strconv.Itoa(code),
					Header:     http.Header{retryafter.Header: {value}},
				}
				action := recovery.DecideWallClock(httperror.New(r, true), now, wallNow)
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%q\t%s\t%s\t%s\n",
					value, hint.Kind, hint, describe(action, now))
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&code, "status", 503, "status code of the transient response carrying the header")
	return cmd
}

func describe(a recovery.Action, now time.Time) string {
	if a.Kind != recovery.RetryNoEarlierThan {
		return a.Kind.String()
	}
	return fmt.Sprintf("%s (wait %s)", a.Kind, a.MinDelay(now).Round(time.Second))
}
