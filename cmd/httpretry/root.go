// Copyright 2024 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gogama/httpretry/config"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "httpretry",
		Short:        "HTTP client with response classification and recovery",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file (default: read HTTPRETRY_ environment variables)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newGetCmd(opts))
	cmd.AddCommand(newRetryAfterCmd())
	cmd.AddCommand(newClassifyCmd(opts))
	return cmd
}

func (o *options) loadConfig() (config.Config, error) {
	if o.configPath == "" {
		return config.FromEnv()
	}

	f, err := os.Open(o.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return config.Load(f)
}

func (o *options) logger(w io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if o.debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
