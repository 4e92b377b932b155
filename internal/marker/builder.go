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

import (
	"strings"

	"github.com/eminwux/sevlog/internal/errdefs"
)

// Builder rebuilds a fragmented text in one forward pass, rewriting every
// completed marker occurrence in place and emitting everything else
// byte-for-byte. Characters matched toward an occurrence are held back
// with their original case until the occurrence either completes (and is
// rewritten) or falls through (and is flushed verbatim).
//
// Usage contract: any number of WriteString calls, then Finalize exactly
// once. Writing after Finalize, or finalizing twice, is a programming
// error and returns errdefs.ErrFinalized. The zero value is ready to use;
// one Builder serves one record on one goroutine.
type Builder struct {
	progress  int
	held      [len(Word)]byte // original-cased prefix of a pending occurrence
	out       strings.Builder
	finalized bool
}

// WriteString consumes the next fragment of the text.
func (b *Builder) WriteString(fragment string) error {
	if b.finalized {
		return errdefs.ErrFinalized
	}
	for i := 0; i < len(fragment); i++ {
		c := fragment[i]
		if matchAt(c, b.progress) {
			b.held[b.progress] = c
			b.progress++
			if b.progress == len(Word) {
				b.emitRewritten()
				b.progress = 0
			}
			continue
		}
		// Pending partial match did not pan out: its characters are
		// ordinary text. The failing character gets the same
		// re-test-at-zero treatment as in Scanner.Feed.
		b.flushHeld()
		if matchAt(c, 0) {
			b.held[0] = c
			b.progress = 1
			continue
		}
		b.out.WriteByte(c)
	}
	return nil
}

// Finalize flushes any trailing partial match verbatim and returns the
// completed text. Only a fully completed occurrence is ever rewritten.
func (b *Builder) Finalize() (string, error) {
	if b.finalized {
		return "", errdefs.ErrFinalized
	}
	b.flushHeld()
	b.finalized = true
	return b.out.String(), nil
}

// emitRewritten writes the held occurrence with the substitution glyph in
// place of its third letter, picked by the case actually observed there.
func (b *Builder) emitRewritten() {
	for j := 0; j < len(Word); j++ {
		if j == subIndex {
			if b.held[j] == foldASCII(b.held[j]) {
				b.out.WriteRune(subLower)
			} else {
				b.out.WriteRune(subUpper)
			}
			continue
		}
		b.out.WriteByte(b.held[j])
	}
}

func (b *Builder) flushHeld() {
	b.out.Write(b.held[:b.progress])
	b.progress = 0
}

// Rewrite is the single-buffer convenience: the whole text in, the
// transformed text out.
func Rewrite(s string) string {
	var b Builder
	_ = b.WriteString(s)
	out, _ := b.Finalize()
	return out
}
