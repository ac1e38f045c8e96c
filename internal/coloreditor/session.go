/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package coloreditor is the model behind the modeless color dialog: a brush
// kind, two ARGB colors and a gradient angle. Every edit streams the
// resulting brush to the owner for live preview.
package coloreditor

import (
	"image/color"
	"math"

	"smokescreen/internal/brush"
)

// Channel selects one component of an ARGB color.
type Channel int

const (
	Alpha Channel = iota
	Red
	Green
	Blue
)

// Stop indexes the two colors. A solid brush only uses First.
type Stop int

const (
	First Stop = iota
	Second
)

// DefaultAngle is the gradient direction shown for a solid brush: top to
// bottom.
const DefaultAngle = 90

// Session holds the dialog state for one patch.
type Session struct {
	kind     brush.Kind
	colors   [2]color.NRGBA
	angle    float64
	onChange func(brush.Descriptor)
}

// New initializes a session from the owner's brush and emits the resulting
// brush once. onChange may be nil.
func New(initial brush.Descriptor, onChange func(brush.Descriptor)) *Session {
	s := &Session{
		kind:     brush.KindSolid,
		colors:   [2]color.NRGBA{brush.ColorOrTransparent(brush.DefaultSolidColor), brush.ColorOrTransparent(brush.DefaultLinearEndColor)},
		angle:    DefaultAngle,
		onChange: onChange,
	}
	switch initial.Kind {
	case brush.KindLinear:
		s.kind = brush.KindLinear
		s.colors[First] = brush.ColorOrTransparent(initial.Linear.StartColor)
		s.colors[Second] = brush.ColorOrTransparent(initial.Linear.EndColor)
		s.angle = brush.AngleFromPoints(initial.Linear.StartPoint, initial.Linear.EndPoint)
	default:
		s.colors[First] = brush.ColorOrTransparent(initial.Solid.Color)
	}
	s.emit()
	return s
}

func (s *Session) Kind() brush.Kind                 { return s.kind }
func (s *Session) Color(i Stop) color.NRGBA         { return s.colors[i] }
func (s *Session) Angle() float64                   { return s.angle }
func (s *Session) Channel(i Stop, ch Channel) uint8 { return channel(s.colors[i], ch) }

// SetKind switches between solid and linear. Unknown kinds are treated as
// solid.
func (s *Session) SetKind(k brush.Kind) {
	if k != brush.KindLinear {
		k = brush.KindSolid
	}
	s.kind = k
	s.emit()
}

func (s *Session) SetColor(i Stop, c color.NRGBA) {
	s.colors[i] = c
	s.emit()
}

// SetChannel changes one component of a color, as a slider does.
func (s *Session) SetChannel(i Stop, ch Channel, v uint8) {
	c := s.colors[i]
	switch ch {
	case Alpha:
		c.A = v
	case Red:
		c.R = v
	case Green:
		c.G = v
	case Blue:
		c.B = v
	}
	s.SetColor(i, c)
}

// SetAngle sets the gradient direction in degrees, normalized to [0,360).
func (s *Session) SetAngle(deg float64) {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	s.angle = deg
	s.emit()
}

// Descriptor returns the brush the dialog currently shows.
func (s *Session) Descriptor() brush.Descriptor {
	if s.kind == brush.KindLinear {
		start, end := brush.PointsFromAngle(s.angle)
		return brush.NewLinear(brush.FormatColor(s.colors[First]), brush.FormatColor(s.colors[Second]), start, end)
	}
	return brush.NewSolid(brush.FormatColor(s.colors[First]))
}

func (s *Session) emit() {
	if s.onChange != nil {
		s.onChange(s.Descriptor())
	}
}

func channel(c color.NRGBA, ch Channel) uint8 {
	switch ch {
	case Alpha:
		return c.A
	case Red:
		return c.R
	case Green:
		return c.G
	default:
		return c.B
	}
}
