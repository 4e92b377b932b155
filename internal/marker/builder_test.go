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
	"errors"
	"testing"

	"github.com/eminwux/sevlog/internal/errdefs"
)

func Test_Rewrite(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abcdefg", "abcdefg"},
		{"awarna", "awa𝗋na"},
		{"aWarNa", "aWa𝗋Na"},
		{"aWArn", "aWA𝗋n"}, // occurrence completes exactly at end of text
		{"aWaRn", "aWa𝖱n"}, // uppercase third letter picks the capital glyph
		{"abcdwar", "abcdwar"},
		{"warbn", "warbn"},
		{"warnwarn", "wa𝗋nwa𝗋n"},
		{"warwarn", "warwa𝗋n"},
		{"WARN", "WA𝖱N"},
	}

	for _, tc := range cases {
		if got := Rewrite(tc.in); got != tc.want {
			t.Errorf("Rewrite(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func Test_Rewrite_IdentityAgreesWithScanner(t *testing.T) {
	inputs := []string{"", "abcdefg", "awarna", "warbn", "abcdwar", "wa#rn", "WARNING"}
	for _, in := range inputs {
		changed := Rewrite(in) != in
		if changed != Contains(in) {
			t.Errorf("Rewrite changed %q: %v, but Contains = %v", in, changed, Contains(in))
		}
	}
}

func Test_Builder_ChunkingInvariance(t *testing.T) {
	inputs := []string{"awarna", "aWarNa", "abcdwar", "warwarn", "xxwArNyy", "warnwarn"}
	for _, in := range inputs {
		whole := Rewrite(in)

		// Feed the same text one byte at a time.
		var b Builder
		for i := 0; i < len(in); i++ {
			if err := b.WriteString(in[i : i+1]); err != nil {
				t.Fatalf("WriteString: %v", err)
			}
		}
		got, err := b.Finalize()
		if err != nil {
			t.Fatalf("Finalize: %v", err)
		}
		if got != whole {
			t.Errorf("byte-fed Builder on %q = %q, single fragment = %q", in, got, whole)
		}
	}
}

func Test_Builder_FragmentSplit(t *testing.T) {
	var b Builder
	if err := b.WriteString("awa"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if err := b.WriteString("rna"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	got, err := b.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if got != "awa𝗋na" {
		t.Errorf("split fragments produced %q, want %q", got, "awa𝗋na")
	}
}

func Test_Builder_ProtocolMisuse(t *testing.T) {
	var b Builder
	if err := b.WriteString("warn"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if _, err := b.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if _, err := b.Finalize(); !errors.Is(err, errdefs.ErrFinalized) {
		t.Errorf("second Finalize = %v, want ErrFinalized", err)
	}
	if err := b.WriteString("more"); !errors.Is(err, errdefs.ErrFinalized) {
		t.Errorf("WriteString after Finalize = %v, want ErrFinalized", err)
	}
}
