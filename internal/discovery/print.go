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
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/eminwux/sevlog/internal/errdefs"
)

// FindAndPrintProfile looks up one profile by name and writes it to w in
// the requested format (json|yaml; empty defaults to yaml).
func FindAndPrintProfile(ctx context.Context, path string, w io.Writer, name, format string) error {
	p, err := FindProfileByName(ctx, path, name)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case "yaml", "":
		b, err := yaml.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal profile %q: %w", name, err)
		}
		_, err = w.Write(b)
		return err
	}

	return fmt.Errorf("%w: %q (use json|yaml)", errdefs.ErrInvalidOutputFormat, format)
}
