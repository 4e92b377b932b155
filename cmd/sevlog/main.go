// Copyright 2025 Emiliano Spinella (eminwux)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/eminwux/sevlog/cmd/sevlog/filter"
	"github.com/eminwux/sevlog/cmd/sevlog/get"
	"github.com/eminwux/sevlog/internal/common"
	"github.com/eminwux/sevlog/internal/env"
	"github.com/eminwux/sevlog/internal/sink"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

func main() {
	rootCmd := NewRootCmd()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	// rootCmd represents the base command when called without any subcommands.
	rootCmd := &cobra.Command{
		Use:   "sevlog",
		Short: "sevlog command line tool",
		Long: `sevlog keeps the Azure Functions log classifier honest.

The custom-handler runtime reads stdout as Information and stderr as
Error, unless a stderr line contains "warn" (case-insensitive), which
makes it a Warning. sevlog reads severity-prefixed log lines on stdin
and re-emits them so each line is classified as its author intended.

With no subcommand, sevlog runs as a line filter:
  some-handler 2>&1 | sevlog

Each input line is "LEVEL message" (error|warn|info|debug); lines with
no level prefix count as info. See also:
  sevlog filter --level error
  sevlog get profiles
`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			err := LoadConfig()
			if err != nil {
				fmt.Fprintln(os.Stderr, "Config error:", err)
				os.Exit(1)
			}

			h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: common.ParseLevel(viper.GetString(env.LOG_LEVEL.ViperKey)),
			})
			slog.SetDefault(slog.New(h))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			transform, err := filter.ResolveTransform(cmd.Context())
			if err != nil {
				return err
			}

			if term.IsTerminal(int(os.Stdin.Fd())) {
				fmt.Fprintln(os.Stderr, "reading log lines from stdin; finish with Ctrl-D")
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			logger := slog.New(sink.New(transform))
			return runFilterLoop(ctx, logger, os.Stdin)
		},
	}

	setupRootCmd(rootCmd)

	return rootCmd
}

func setupRootCmd(rootCmd *cobra.Command) {
	rootCmd.AddCommand(filter.NewFilterCmd())
	rootCmd.AddCommand(get.NewGetCmd())

	bindPersistentFlags(rootCmd.PersistentFlags())
}

func bindPersistentFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file (default is $HOME/.sevlog/config.yaml)")
	flags.String("log-level", "info", "Log level for sevlog diagnostics (debug, info, warn, error)")
	flags.String("profiles", "", "profiles manifests file")
	flags.String("profile", "", "filter profile name to apply")
	flags.String("policy", "", "transform policy: encode|rewrite|tag")
	flags.String("tag", "", "warning tag override")

	_ = viper.BindPFlag(env.CONFIG_FILE.ViperKey, flags.Lookup("config"))
	_ = viper.BindPFlag(env.LOG_LEVEL.ViperKey, flags.Lookup("log-level"))
	_ = viper.BindPFlag(env.PROFILES_FILE.ViperKey, flags.Lookup("profiles"))
	_ = viper.BindPFlag(env.PROFILE.ViperKey, flags.Lookup("profile"))
	_ = viper.BindPFlag(env.POLICY.ViperKey, flags.Lookup("policy"))
	_ = viper.BindPFlag(env.TAG.ViperKey, flags.Lookup("tag"))
}

// runFilterLoop reads severity-prefixed lines from r and replays them
// through logger until EOF or ctx cancellation. Cancellation sets an
// expired read deadline on r so a read blocked on an idle stream
// returns instead of waiting for the next line.
func runFilterLoop(ctx context.Context, logger *slog.Logger, r *os.File) error {
	g, ctx := errgroup.WithContext(ctx)
	lines := make(chan string)

	g.Go(func() error {
		defer close(lines)
		stop := context.AfterFunc(ctx, func() {
			_ = r.SetReadDeadline(time.Now())
		})
		defer stop()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err := scanner.Err(); err != nil && !errors.Is(err, os.ErrDeadlineExceeded) {
			return err
		}
		return ctx.Err()
	})

	g.Go(func() error {
		for {
			select {
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				routeLine(logger, line)
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// routeLine replays one input line at its declared severity.
func routeLine(logger *slog.Logger, line string) {
	sev, msg := splitSeverity(line)
	switch sev {
	case "error":
		logger.Error(msg)
	case "warning":
		logger.Warn(msg)
	case "debug":
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}

// splitSeverity peels a leading "LEVEL " or "LEVEL: " token off the line.
// Lines without a recognizable level are info in full.
func splitSeverity(line string) (string, string) {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' {
			continue
		}
		token := line[:i]
		if len(token) > 1 && token[len(token)-1] == ':' {
			token = token[:len(token)-1]
		}
		switch token {
		case "error", "err", "ERROR", "ERR":
			return "error", line[i+1:]
		case "warn", "warning", "WARN", "WARNING":
			return "warning", line[i+1:]
		case "info", "INFO":
			return "info", line[i+1:]
		case "debug", "DEBUG":
			return "debug", line[i+1:]
		}
		break
	}
	return "info", line
}

// LoadConfig loads config.yaml from the given path or HOME/.sevlog.
func LoadConfig() error {
	if viper.GetString(env.CONFIG_FILE.ViperKey) == "" {
		base, err := common.ConfigBase()
		if err != nil {
			return err
		}
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(base)
	} else {
		viper.SetConfigFile(viper.GetString(env.CONFIG_FILE.ViperKey))
	}
	_ = env.CONFIG_FILE.BindEnv()

	if viper.GetString(env.PROFILES_FILE.ViperKey) == "" {
		base, err := common.ConfigBase()
		if err != nil {
			return err
		}
		env.PROFILES_FILE.SetDefault(filepath.Join(base, "profiles.yaml"))
	}
	_ = env.PROFILES_FILE.BindEnv()

	_ = env.LOG_LEVEL.BindEnv()
	env.LOG_LEVEL.SetDefault("info")

	_ = env.PROFILE.BindEnv()
	_ = env.POLICY.BindEnv()
	env.POLICY.SetDefault("encode")
	_ = env.TAG.BindEnv()

	if err := viper.ReadInConfig(); err != nil {
		// File not found is OK if ENV is set
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return err // Config file was found but another error was produced
		}
	}

	return nil
}
