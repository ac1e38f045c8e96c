/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package brush

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#80333333", color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0x80}, true},
		{"#ff0000", color.NRGBA{R: 0xFF, A: 0xFF}, true},
		{"#8F00", color.NRGBA{R: 0xFF, A: 0x88}, true},
		{"#0F0", color.NRGBA{G: 0xFF, A: 0xFF}, true},
		{" 00000000 ", color.NRGBA{}, true},
		{"notacolor", Transparent, false},
		{"#12345", Transparent, false},
		{"", Transparent, false},
		{"#GGGGGGGG", Transparent, false},
	}
	for _, c := range cases {
		got, ok := ParseColor(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseColor(%q) = %v,%v want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestFormatColor(t *testing.T) {
	if got := FormatColor(color.NRGBA{R: 0xAB, G: 0x01, B: 0xEF, A: 0x7F}); got != "#7FAB01EF" {
		t.Fatalf("FormatColor = %q", got)
	}
	c, _ := ParseColor(FormatColor(color.NRGBA{R: 1, G: 2, B: 3, A: 4}))
	if c != (color.NRGBA{R: 1, G: 2, B: 3, A: 4}) {
		t.Fatalf("format/parse mismatch: %v", c)
	}
}
