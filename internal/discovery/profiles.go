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

// Package discovery provides helpers to load and list FilterProfile YAMLs.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/eminwux/sevlog/internal/errdefs"
	"github.com/eminwux/sevlog/internal/policy"
	"github.com/eminwux/sevlog/pkg/api"
	"gopkg.in/yaml.v3"
)

// ScanAndPrintProfiles loads all profiles from a YAML file (supports
// multiple '---' documents) and prints them in a table to w.
func ScanAndPrintProfiles(ctx context.Context, path string, w io.Writer) error {
	profiles, err := LoadProfilesFromPath(ctx, path)
	if err != nil {
		return err
	}
	return PrintProfilesTable(w, profiles)
}

// LoadProfilesFromPath reads a multi-document YAML file into []api.FilterProfileDoc.
func LoadProfilesFromPath(_ context.Context, path string) ([]api.FilterProfileDoc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profiles file %q: %w", path, err)
	}
	defer f.Close()
	return LoadProfilesFromReader(f)
}

// LoadProfilesFromReader decodes one or more YAML documents from r.
func LoadProfilesFromReader(r io.Reader) ([]api.FilterProfileDoc, error) {
	dec := yaml.NewDecoder(r)

	var out []api.FilterProfileDoc
	for {
		var p api.FilterProfileDoc
		if err := dec.Decode(&p); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decode profile: %w", err)
		}

		// Basic sanity checks; skip empty docs.
		if p.Metadata.Name == "" || string(p.APIVersion) == "" || string(p.Kind) == "" {
			slog.Debug("skipping empty/invalid profile document", "name", p.Metadata.Name)
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

// PrintProfilesTable renders a compact table of profiles.
func PrintProfilesTable(w io.Writer, profiles []api.FilterProfileDoc) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if len(profiles) == 0 {
		fmt.Fprintln(tw, "no profiles found")
		return tw.Flush()
	}

	fmt.Fprintln(tw, "NAME\tPOLICY\tTAG")
	for _, p := range profiles {
		pol := p.Spec.Policy
		if pol == "" {
			pol = policy.NameEncode
		}
		tag := p.Spec.Tag
		if tag == "" {
			tag = policy.WarningTag
		}
		fmt.Fprintf(tw, "%s\t%s\t%q\n", p.Metadata.Name, pol, tag)
	}

	return tw.Flush()
}

// FindProfileByName scans the YAML file at path and returns the profile
// whose metadata.name matches. The match is case-sensitive.
func FindProfileByName(ctx context.Context, path, name string) (*api.FilterProfileDoc, error) {
	profiles, err := LoadProfilesFromPath(ctx, path)
	if err != nil {
		return nil, err
	}

	for _, p := range profiles {
		if p.Metadata.Name == name {
			return &p, nil
		}
	}

	return nil, fmt.Errorf("%w: %q in %s", errdefs.ErrProfileNotFound, name, path)
}

// BuildTransform resolves a profile document into the transform policy it
// selects.
func BuildTransform(p *api.FilterProfileDoc) (policy.Transform, error) {
	return policy.ByName(p.Spec.Policy, p.Spec.Tag)
}
