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

// Package policy holds the swappable message transforms applied before a
// record reaches the classifier-watched streams. A policy answers two
// questions only: what to do with an error-level message that contains
// the marker, and what to do with a warning-level message that does not.
// Implementations hold no mutable state and are safe to share across
// goroutines.
package policy

import (
	"encoding/base64"
	"fmt"

	"github.com/eminwux/sevlog/internal/errdefs"
	"github.com/eminwux/sevlog/internal/marker"
)

// WarningTag is prepended to warning-level messages that would otherwise
// be classified as errors.
const WarningTag = "warning: "

// Transform is the two-operation contract every policy implements.
type Transform interface {
	// TransformError rewrites an error-level message known to contain
	// the marker so the classifier stops seeing it as a warning.
	TransformError(msg string) string
	// TransformWarning rewrites a warning-level message known to not
	// contain the marker so the classifier sees it as one.
	TransformWarning(msg string) string
}

// Names of the built-in policies as accepted by config and flags.
const (
	NameEncode  = "encode"
	NameRewrite = "rewrite"
	NameTag     = "tag"
)

// ByName returns the built-in policy with the given name. tag may
// override WarningTag; empty keeps the default.
func ByName(name, tag string) (Transform, error) {
	if tag == "" {
		tag = WarningTag
	}
	switch name {
	case NameEncode, "":
		return Encode{Tag: tag}, nil
	case NameRewrite:
		return Rewrite{Tag: tag}, nil
	case NameTag:
		return Tag{Tag: tag}, nil
	}
	return nil, fmt.Errorf("%w: %q", errdefs.ErrUnknownPolicy, name)
}

// Tag leaves error messages alone and labels warning messages. The label
// itself contains the marker, which is the whole point.
type Tag struct {
	Tag string
}

func (t Tag) TransformError(msg string) string { return msg }

func (t Tag) TransformWarning(msg string) string { return t.Tag + msg }

// Rewrite replaces every marker occurrence inside an error message with
// its homoglyph form, preserving all surrounding text exactly.
type Rewrite struct {
	Tag string
}

func (r Rewrite) TransformError(msg string) string { return marker.Rewrite(msg) }

func (r Rewrite) TransformWarning(msg string) string { return r.Tag + msg }

// Encode base64-encodes an error message; if the encoded form still
// contains the marker it encodes once more, and if even that contains
// the marker it gives up and downgrades the message to a labelled
// warning. Reversible, unlike Rewrite, at the cost of readability.
type Encode struct {
	Tag string
}

const (
	encodedOncePrefix  = "base64-encoded log: "
	encodedTwicePrefix = "base64-encoded-twice log: "
	downgradeNotice    = "The following error log has to be logged as Warning: \n"
)

func (e Encode) TransformError(msg string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(msg))
	if !marker.Contains(encoded) {
		return encodedOncePrefix + encoded
	}

	encoded = base64.StdEncoding.EncodeToString([]byte(encoded))
	if !marker.Contains(encoded) {
		return encodedTwicePrefix + encoded
	}

	return downgradeNotice + msg
}

func (e Encode) TransformWarning(msg string) string { return e.Tag + msg }
