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

// Package marker detects and rewrites the "warn" marker word inside log
// text that arrives as an arbitrary sequence of fragments. The marker is
// what the Azure Functions custom-handler runtime sniffs on stderr to
// decide between Warning and Error, so both the detector and the rewriter
// must work across fragment boundaries without look-ahead and must leave
// every non-marker byte untouched.
package marker

// Word is the marker the downstream classifier looks for. Matching is
// ASCII case-insensitive; no other folding applies.
const Word = "warn"

// The rewriter swaps the marker's third letter for a visually similar
// non-ASCII glyph so the classifier no longer sees the word. The glyph is
// chosen by the case of the character actually observed in the input.
const (
	subIndex = 2

	subLower = '𝗋' // U+1D5CB, replaces 'r'
	subUpper = '𝖱' // U+1D5B1, replaces 'R'
)

// matchAt reports whether c matches the marker letter at position i,
// ignoring ASCII case.
func matchAt(c byte, i int) bool {
	return foldASCII(c) == Word[i]
}

func foldASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
