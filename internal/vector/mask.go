/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"image"
	"image/draw"

	xvector "golang.org/x/image/vector"
)

// Mask rasterizes the clip region into a w×h alpha mask. Path coordinates
// are multiplied by scale first, so a path in device independent units can be
// rendered at the canvas pixel density.
//
// Every figure is rasterized on its own and merged with max(), which keeps
// union semantics for overlapping strokes regardless of winding direction.
// A nil path yields a fully opaque mask (unshaped patch).
func (p *Path) Mask(w, h int, scale float32) *image.Alpha {
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return dst
	}
	if p == nil {
		draw.Draw(dst, dst.Bounds(), image.Opaque, image.Point{}, draw.Src)
		return dst
	}
	if scale <= 0 {
		scale = 1
	}

	z := xvector.NewRasterizer(w, h)
	fig := image.NewAlpha(dst.Bounds())
	for _, f := range p.Figures() {
		if len(f) < 3 {
			continue
		}
		z.Reset(w, h)
		z.MoveTo(f[0].X*scale, f[0].Y*scale)
		for _, pt := range f[1:] {
			z.LineTo(pt.X*scale, pt.Y*scale)
		}
		z.ClosePath()
		clear(fig.Pix)
		z.Draw(fig, fig.Bounds(), image.Opaque, image.Point{})
		for i, a := range fig.Pix {
			if a > dst.Pix[i] {
				dst.Pix[i] = a
			}
		}
	}
	return dst
}
