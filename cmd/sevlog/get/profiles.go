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

package get

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/eminwux/sevlog/internal/discovery"
	"github.com/eminwux/sevlog/internal/env"
	"github.com/eminwux/sevlog/internal/errdefs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	outputFormatProfilesInput = "sevlog.get.profiles.output"
)

func NewGetProfilesCmd() *cobra.Command {
	// GetProfilesCmd represents the get profiles command.
	cmd := &cobra.Command{
		Use:          "profiles",
		Aliases:      []string{"profile", "prof", "pro", "p"},
		Short:        "Get filter profiles",
		Long:         "Get filter profiles from the sevlog environment.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// If user passed -o when listing, reject it
				if cmd.Flags().Changed("output") {
					return fmt.Errorf(
						"%w: the -o/--output flag is only valid when specifying a profile name",
						errdefs.ErrInvalidFlag,
					)
				}
				return listProfiles(cmd)
			} else if len(args) > 1 {
				return errdefs.ErrTooManyArguments
			}

			return getProfile(cmd, args)
		},
		// Positional completion for NAME
		ValidArgsFunction: completeProfiles,
	}

	setupNewGetProfilesCmd(cmd)
	return cmd
}

func setupNewGetProfilesCmd(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Output format: json|yaml (default: yaml)")
	_ = viper.BindPFlag(outputFormatProfilesInput, cmd.Flags().Lookup("output"))

	_ = cmd.RegisterFlagCompletionFunc(
		"output",
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return []string{"json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
		},
	)
}

func listProfiles(cmd *cobra.Command) error {
	slog.Debug("profiles list command invoked",
		"profiles_file", viper.GetString(env.PROFILES_FILE.ViperKey),
		"args", cmd.Flags().Args(),
	)

	err := discovery.ScanAndPrintProfiles(
		cmd.Context(),
		viper.GetString(env.PROFILES_FILE.ViperKey),
		os.Stdout,
	)
	if err != nil {
		slog.Debug("error scanning and printing profiles", "error", err)
		fmt.Fprintln(os.Stderr, "Could not scan profiles")
		return err
	}
	return nil
}

func getProfile(cmd *cobra.Command, args []string) error {
	profileName := args[0]
	format := viper.GetString(outputFormatProfilesInput)
	if format != "" && format != "json" && format != "yaml" {
		return fmt.Errorf("%w: %s", errdefs.ErrInvalidOutputFormat, format)
	}
	slog.Debug("get profile command invoked",
		"profile_name", profileName,
		"output_format", format,
	)

	return discovery.FindAndPrintProfile(
		cmd.Context(),
		viper.GetString(env.PROFILES_FILE.ViperKey),
		os.Stdout,
		profileName,
		format,
	)
}

func completeProfiles(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	names, err := fetchProfileNames(context.Background(), viper.GetString(env.PROFILES_FILE.ViperKey), toComplete)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}

func fetchProfileNames(ctx context.Context, path, toComplete string) ([]string, error) {
	profiles, err := discovery.LoadProfilesFromPath(ctx, path)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(profiles))
	for _, p := range profiles {
		if toComplete == "" || strings.HasPrefix(p.Metadata.Name, toComplete) {
			out = append(out, p.Metadata.Name)
		}
	}

	return out, nil
}
