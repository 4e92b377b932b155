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

// Package filter implements the one-shot `sevlog filter` command: it
// treats all of stdin as a single log message of the given severity and
// prints the transformed text.
package filter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/eminwux/sevlog/internal/discovery"
	"github.com/eminwux/sevlog/internal/env"
	"github.com/eminwux/sevlog/internal/errdefs"
	"github.com/eminwux/sevlog/internal/marker"
	"github.com/eminwux/sevlog/internal/policy"
	"github.com/eminwux/sevlog/pkg/api"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const levelInput = "sevlog.filter.level"

func NewFilterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "filter",
		Short:        "Transform one message read from stdin",
		Long:         "Read all of stdin as a single log message of the given severity and print the transformed text.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return errdefs.ErrTooManyArguments
			}

			fi, err := os.Stdin.Stat()
			if err != nil {
				return fmt.Errorf("%w: %w", errdefs.ErrStdinStat, err)
			}
			if fi.Mode()&os.ModeCharDevice != 0 {
				return fmt.Errorf("%w: filter reads the message from stdin; use a pipe or redirect", errdefs.ErrInvalidFlag)
			}

			sev, err := api.ParseSeverity(viper.GetString(levelInput))
			if err != nil {
				return err
			}

			transform, err := ResolveTransform(cmd.Context())
			if err != nil {
				return err
			}

			out, err := filterReader(os.Stdin, sev, transform)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, out)
			return nil
		},
	}

	cmd.Flags().StringP("level", "l", "error", "Declared severity of the message: error|warn|info|debug")
	_ = viper.BindPFlag(levelInput, cmd.Flags().Lookup("level"))

	return cmd
}

// filterReader streams r through a marker scan in read-sized fragments
// and applies the severity rules on the assembled message.
func filterReader(r io.Reader, sev api.Severity, transform policy.Transform) (string, error) {
	var (
		scanner marker.Scanner
		msg     strings.Builder
		buf     = make([]byte, 4096)
	)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			scanner.Feed(string(buf[:n]))
			msg.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
	}

	// Trailing newlines are framing, not message content. The marker
	// contains no newline, so trimming cannot change the scan result.
	text := strings.TrimRight(msg.String(), "\n")
	has := scanner.Matched()

	switch sev {
	case api.SevError:
		if has {
			return transform.TransformError(text), nil
		}
		return text, nil
	case api.SevWarning:
		if !has {
			return transform.TransformWarning(text), nil
		}
		return text, nil
	default:
		return text, nil
	}
}

// ResolveTransform builds the transform policy from the active profile,
// if one is selected, or from the --policy/--tag flags.
func ResolveTransform(ctx context.Context) (policy.Transform, error) {
	profileName := viper.GetString(env.PROFILE.ViperKey)
	if profileName != "" {
		profilesFile := viper.GetString(env.PROFILES_FILE.ViperKey)
		p, err := discovery.FindProfileByName(ctx, profilesFile, profileName)
		if err != nil {
			return nil, err
		}
		slog.Debug("using filter profile",
			"profile", profileName,
			"policy", p.Spec.Policy,
			"profiles_file", profilesFile,
		)
		return discovery.BuildTransform(p)
	}

	return policy.ByName(
		viper.GetString(env.POLICY.ViperKey),
		viper.GetString(env.TAG.ViperKey),
	)
}
