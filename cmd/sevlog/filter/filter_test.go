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

package filter

import (
	"io"
	"strings"
	"testing"

	"github.com/eminwux/sevlog/internal/policy"
	"github.com/eminwux/sevlog/pkg/api"
)

// slowReader hands out one byte per Read to force fragment-at-a-time
// scanning.
type slowReader struct {
	s string
	i int
}

func (r *slowReader) Read(p []byte) (int, error) {
	if r.i >= len(r.s) {
		return 0, io.EOF
	}
	p[0] = r.s[r.i]
	r.i++
	return 1, nil
}

func Test_FilterReader_Error(t *testing.T) {
	p := policy.Rewrite{Tag: policy.WarningTag}

	got, err := filterReader(strings.NewReader("boot warn failed\n"), api.SevError, p)
	if err != nil {
		t.Fatalf("filterReader: %v", err)
	}
	if got != "boot wa𝗋n failed" {
		t.Errorf("got %q", got)
	}

	got, err = filterReader(strings.NewReader("clean failure\n"), api.SevError, p)
	if err != nil {
		t.Fatalf("filterReader: %v", err)
	}
	if got != "clean failure" {
		t.Errorf("marker-free error must pass through, got %q", got)
	}
}

func Test_FilterReader_Warning(t *testing.T) {
	p := policy.Encode{Tag: policy.WarningTag}

	got, err := filterReader(strings.NewReader("low disk space"), api.SevWarning, p)
	if err != nil {
		t.Fatalf("filterReader: %v", err)
	}
	if got != "warning: low disk space" {
		t.Errorf("got %q", got)
	}

	got, err = filterReader(strings.NewReader("warn: low disk space"), api.SevWarning, p)
	if err != nil {
		t.Fatalf("filterReader: %v", err)
	}
	if got != "warn: low disk space" {
		t.Errorf("marked warning must pass through, got %q", got)
	}
}

func Test_FilterReader_InfoPassesThrough(t *testing.T) {
	got, err := filterReader(strings.NewReader("warn on stdout is fine"), api.SevInfo, policy.Encode{Tag: policy.WarningTag})
	if err != nil {
		t.Fatalf("filterReader: %v", err)
	}
	if got != "warn on stdout is fine" {
		t.Errorf("got %q", got)
	}
}

func Test_FilterReader_FragmentedInput(t *testing.T) {
	// The marker arrives one byte per read; the scan must still see it.
	got, err := filterReader(&slowReader{s: "awarna"}, api.SevError, policy.Rewrite{Tag: policy.WarningTag})
	if err != nil {
		t.Fatalf("filterReader: %v", err)
	}
	if got != "awa𝗋na" {
		t.Errorf("got %q, want %q", got, "awa𝗋na")
	}
}
