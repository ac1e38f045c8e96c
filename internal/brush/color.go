/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package brush

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Transparent is the fallback for colors that cannot be parsed.
var Transparent = color.NRGBA{}

// ParseColor parses a hex color in one of the forms #AARRGGBB, #RRGGBB,
// #ARGB or #RGB (leading '#' optional, case-insensitive). Forms without an
// alpha component are opaque.
func ParseColor(s string) (color.NRGBA, bool) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3, 4, 6, 8:
	default:
		return Transparent, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Transparent, false
	}
	switch len(h) {
	case 3:
		return color.NRGBA{A: 0xFF, R: nibble(v >> 8), G: nibble(v >> 4), B: nibble(v)}, true
	case 4:
		return color.NRGBA{A: nibble(v >> 12), R: nibble(v >> 8), G: nibble(v >> 4), B: nibble(v)}, true
	case 6:
		return color.NRGBA{A: 0xFF, R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
	default:
		return color.NRGBA{A: uint8(v >> 24), R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
	}
}

// nibble expands a single hex digit to a full byte (0xA -> 0xAA).
func nibble(v uint64) uint8 {
	n := uint8(v & 0xF)
	return n<<4 | n
}

// ColorOrTransparent parses s and falls back to transparent black.
func ColorOrTransparent(s string) color.NRGBA {
	c, _ := ParseColor(s)
	return c
}

// FormatColor renders c as #AARRGGBB with upper-case digits.
func FormatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
}

// canonicalColor rewrites a parsable color as FormatColor does and leaves
// anything else untouched, so bad input stays visible to validation.
func canonicalColor(s string) string {
	if c, ok := ParseColor(s); ok {
		return FormatColor(c)
	}
	return s
}
