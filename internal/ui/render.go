/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image"

	"smokescreen/internal/brush"
	"smokescreen/internal/config"
	"smokescreen/internal/patch"
	"smokescreen/internal/vector"
)

// composite paints p over a w×h pixel image, sampling the paint in unit
// square coordinates and scaling its alpha by the clip mask. A nil mask
// paints everything.
func composite(p brush.Paint, mask *image.Alpha, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	if p == nil || w <= 0 || h <= 0 {
		return img
	}
	for y := 0; y < h; y++ {
		v := (float64(y) + 0.5) / float64(h)
		for x := 0; x < w; x++ {
			var m uint8 = 0xFF
			if mask != nil {
				m = mask.AlphaAt(x, y).A
				if m == 0 {
					continue
				}
			}
			c := p.ColorAt((float64(x)+0.5)/float64(w), v)
			if m != 0xFF {
				c.A = uint8(uint16(c.A) * uint16(m) / 0xFF)
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// renderPatch rasterizes a patch of logical width lw at w×h pixels.
func renderPatch(p brush.Paint, clip *vector.Path, lw float32, w, h int) *image.NRGBA {
	var mask *image.Alpha
	if clip != nil {
		scale := float32(1)
		if lw > 0 {
			scale = float32(w) / lw
		}
		mask = clip.Mask(w, h, scale)
	}
	return composite(p, mask, w, h)
}

// defaultsFrom converts the configured patch defaults.
func defaultsFrom(cfg config.AppConfig) patch.Defaults {
	d := cfg.Patch
	desc := brush.DefaultSolid()
	if d.Color != "" {
		desc = brush.NewSolid(d.Color)
	}
	return patch.Defaults{
		Bounds: vector.R(float32(d.Left), float32(d.Top), float32(d.Width), float32(d.Height)),
		Brush:  desc,
	}
}
