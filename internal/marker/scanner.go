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

package marker

// Scanner is a resumable recognizer for the marker word. Feed it the
// fragments of one logical text in order; progress carries across
// fragment boundaries, like the pending-escape state in a stdin filter
// carries across reads. The zero value is ready to use. A Scanner is for
// a single scan: do not share one across records or goroutines.
type Scanner struct {
	progress int // leading marker letters matched by the current suffix
	matched  bool
}

// Feed consumes one fragment and reports whether the marker has completed
// anywhere in the text seen so far. Once true, it stays true.
func (s *Scanner) Feed(fragment string) bool {
	if s.matched {
		return true
	}
	for i := 0; i < len(fragment); i++ {
		c := fragment[i]
		if matchAt(c, s.progress) {
			s.progress++
			if s.progress == len(Word) {
				s.matched = true
				return true
			}
			continue
		}
		// A character that fails at position k>0 may still open a new
		// occurrence, so re-test it against position 0 in the same step.
		// Plain reset under-detects ("warwarn"); no reset degenerates
		// into subsequence matching ("warbn").
		s.progress = 0
		if matchAt(c, 0) {
			s.progress = 1
		}
	}
	return false
}

// Matched reports the scan outcome so far without consuming input.
func (s *Scanner) Matched() bool {
	return s.matched
}

// Contains reports whether s contains the marker word, ASCII
// case-insensitively. Pure predicate; empty input is false.
func Contains(s string) bool {
	var sc Scanner
	return sc.Feed(s)
}
