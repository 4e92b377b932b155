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

package discovery

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eminwux/sevlog/internal/errdefs"
	"github.com/eminwux/sevlog/internal/policy"
)

const profilesYAML = `apiVersion: sevlog/v1beta1
kind: FilterProfile
metadata:
  name: default
spec:
  policy: encode
---
apiVersion: sevlog/v1beta1
kind: FilterProfile
metadata:
  name: quiet
spec:
  policy: rewrite
  tag: "NOTE: "
---
# an empty document must be skipped
---
apiVersion: sevlog/v1beta1
kind: FilterProfile
metadata:
  name: label-only
spec:
  policy: tag
`

func writeProfiles(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	if err := os.WriteFile(path, []byte(profilesYAML), 0o600); err != nil {
		t.Fatalf("write profiles: %v", err)
	}
	return path
}

func Test_LoadProfilesFromReader(t *testing.T) {
	profiles, err := LoadProfilesFromReader(strings.NewReader(profilesYAML))
	if err != nil {
		t.Fatalf("LoadProfilesFromReader: %v", err)
	}
	if len(profiles) != 3 {
		t.Fatalf("got %d profiles, want 3", len(profiles))
	}
	if profiles[1].Metadata.Name != "quiet" || profiles[1].Spec.Tag != "NOTE: " {
		t.Errorf("second profile decoded wrong: %+v", profiles[1])
	}
}

func Test_FindProfileByName(t *testing.T) {
	path := writeProfiles(t)

	p, err := FindProfileByName(context.Background(), path, "quiet")
	if err != nil {
		t.Fatalf("FindProfileByName: %v", err)
	}
	if p.Spec.Policy != policy.NameRewrite {
		t.Errorf("policy = %q, want rewrite", p.Spec.Policy)
	}

	if _, err := FindProfileByName(context.Background(), path, "missing"); !errors.Is(err, errdefs.ErrProfileNotFound) {
		t.Errorf("missing profile = %v, want ErrProfileNotFound", err)
	}
}

func Test_BuildTransform(t *testing.T) {
	path := writeProfiles(t)

	p, err := FindProfileByName(context.Background(), path, "quiet")
	if err != nil {
		t.Fatalf("FindProfileByName: %v", err)
	}
	tr, err := BuildTransform(p)
	if err != nil {
		t.Fatalf("BuildTransform: %v", err)
	}
	if got := tr.TransformWarning("x"); got != "NOTE: x" {
		t.Errorf("profile tag not applied, got %q", got)
	}
}

func Test_PrintProfilesTable(t *testing.T) {
	profiles, err := LoadProfilesFromReader(strings.NewReader(profilesYAML))
	if err != nil {
		t.Fatalf("LoadProfilesFromReader: %v", err)
	}

	var buf bytes.Buffer
	if err := PrintProfilesTable(&buf, profiles); err != nil {
		t.Fatalf("PrintProfilesTable: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"NAME", "default", "quiet", "label-only"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func Test_FindAndPrintProfile_YAML(t *testing.T) {
	path := writeProfiles(t)

	var buf bytes.Buffer
	if err := FindAndPrintProfile(context.Background(), path, &buf, "default", "yaml"); err != nil {
		t.Fatalf("FindAndPrintProfile: %v", err)
	}
	if !strings.Contains(buf.String(), "name: default") {
		t.Errorf("yaml output missing name:\n%s", buf.String())
	}

	if err := FindAndPrintProfile(context.Background(), path, &buf, "default", "toml"); !errors.Is(err, errdefs.ErrInvalidOutputFormat) {
		t.Errorf("bad format = %v, want ErrInvalidOutputFormat", err)
	}
}
