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
	"math"
)

// Paint is the renderable form of a brush. ColorAt samples it at unit-square
// coordinates (0,0 top-left, 1,1 bottom-right).
type Paint interface {
	ColorAt(u, v float64) color.NRGBA
}

// SolidPaint paints one color everywhere.
type SolidPaint struct {
	Color color.NRGBA
}

func (p SolidPaint) ColorAt(_, _ float64) color.NRGBA { return p.Color }

// GradientStop is a color at an offset along the gradient axis.
type GradientStop struct {
	Color  color.NRGBA
	Offset float64
}

// LinearGradientPaint interpolates its stops along Start→End. Points outside
// the axis are projected onto it and clamped to the end stops.
type LinearGradientPaint struct {
	Stops      []GradientStop
	Start, End Point
}

func (p LinearGradientPaint) ColorAt(u, v float64) color.NRGBA {
	if len(p.Stops) == 0 {
		return Transparent
	}
	dx, dy := p.End.X-p.Start.X, p.End.Y-p.Start.Y
	t := 0.0
	if l2 := dx*dx + dy*dy; l2 > 0 {
		t = ((u-p.Start.X)*dx + (v-p.Start.Y)*dy) / l2
	}
	if t <= p.Stops[0].Offset {
		return p.Stops[0].Color
	}
	for i := 1; i < len(p.Stops); i++ {
		a, b := p.Stops[i-1], p.Stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return lerp(a.Color, b.Color, (t-a.Offset)/span)
		}
	}
	return p.Stops[len(p.Stops)-1].Color
}

func lerp(a, b color.NRGBA, f float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*f))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// Renderable converts the descriptor into a Paint. It never fails: colors
// that do not parse become transparent black.
func (d Descriptor) Renderable() Paint {
	if d.Kind == KindLinear {
		return LinearGradientPaint{
			Stops: []GradientStop{
				{Color: ColorOrTransparent(d.Linear.StartColor), Offset: 0},
				{Color: ColorOrTransparent(d.Linear.EndColor), Offset: 1},
			},
			Start: d.Linear.StartPoint,
			End:   d.Linear.EndPoint,
		}
	}
	return SolidPaint{Color: ColorOrTransparent(d.Solid.Color)}
}

// FromRenderable produces the descriptor for a paint. Gradients are read from
// their first two stops; this package only builds two stop gradients.
// Descriptors carry canonical colors, so FromRenderable(d.Renderable())
// equals d whenever d's colors parse.
func FromRenderable(p Paint) Descriptor {
	switch v := p.(type) {
	case SolidPaint:
		return NewSolid(FormatColor(v.Color))
	case *SolidPaint:
		return NewSolid(FormatColor(v.Color))
	case LinearGradientPaint:
		return fromGradient(v)
	case *LinearGradientPaint:
		return fromGradient(*v)
	default:
		return DefaultSolid()
	}
}

func fromGradient(g LinearGradientPaint) Descriptor {
	return NewLinear(FormatColor(g.Stops[0].Color), FormatColor(g.Stops[1].Color), g.Start, g.End)
}
