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

// Package api holds the public types of sevlog: record severities and the
// FilterProfile YAML document schema.
package api

import (
	"fmt"
	"strings"

	"github.com/eminwux/sevlog/pkg/errdefs"
)

// Severity is the level a log record declares, independent of what the
// downstream classifier would infer from its text.
type Severity string

const (
	SevError   Severity = "error"
	SevWarning Severity = "warning"
	SevInfo    Severity = "info"
	SevDebug   Severity = "debug"
)

// ParseSeverity maps the usual spellings onto a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "error", "err":
		return SevError, nil
	case "warn", "warning":
		return SevWarning, nil
	case "info":
		return SevInfo, nil
	case "debug":
		return SevDebug, nil
	}
	return "", fmt.Errorf("%w: %q", errdefs.ErrUnknownSeverity, s)
}
