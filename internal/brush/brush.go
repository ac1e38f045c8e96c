/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package brush models the tint painted over a patch: a solid color or a two
// stop linear gradient. A Descriptor is the serializable form, a Paint the
// renderable one.
package brush

import (
	"encoding/json"
	"fmt"
)

// Kind tags the Descriptor variant. Its string form is the JSON discriminator.
type Kind string

const (
	KindSolid  Kind = "Solid"
	KindLinear Kind = "Linear"
)

// Point is a position relative to the unit square of the painted area.
type Point struct {
	X float64 `json:"X"`
	Y float64 `json:"Y"`
}

// Solid is a single color brush.
type Solid struct {
	Color string
}

// Linear is a two stop gradient running from StartPoint to EndPoint.
type Linear struct {
	StartColor string
	EndColor   string
	StartPoint Point
	EndPoint   Point
}

// Descriptor is a tagged union over Solid and Linear. Only the payload named
// by Kind is meaningful. Descriptors are comparable with ==.
type Descriptor struct {
	Kind   Kind
	Solid  Solid
	Linear Linear
}

// Defaults used when a patch has no stored brush or a kind is switched on.
const (
	DefaultSolidColor       = "#80333333"
	DefaultLinearStartColor = "#FFFFFFFF"
	DefaultLinearEndColor   = "#00000000"
)

// NewSolid returns a solid descriptor. Colors are stored in canonical
// #AARRGGBB form when they parse and verbatim otherwise.
func NewSolid(color string) Descriptor {
	return Descriptor{Kind: KindSolid, Solid: Solid{Color: canonicalColor(color)}}
}

// NewLinear returns a linear gradient descriptor with canonical colors.
func NewLinear(startColor, endColor string, start, end Point) Descriptor {
	return Descriptor{Kind: KindLinear, Linear: Linear{
		StartColor: canonicalColor(startColor),
		EndColor:   canonicalColor(endColor),
		StartPoint: start,
		EndPoint:   end,
	}}
}

// DefaultSolid is the tint of a fresh patch.
func DefaultSolid() Descriptor { return NewSolid(DefaultSolidColor) }

// DefaultLinear is a top-to-bottom white fade.
func DefaultLinear() Descriptor {
	return NewLinear(DefaultLinearStartColor, DefaultLinearEndColor, Point{0.5, 0}, Point{0.5, 1})
}

func (d Descriptor) String() string {
	switch d.Kind {
	case KindLinear:
		return fmt.Sprintf("Linear(%s->%s %.3g,%.3g->%.3g,%.3g)", d.Linear.StartColor, d.Linear.EndColor,
			d.Linear.StartPoint.X, d.Linear.StartPoint.Y, d.Linear.EndPoint.X, d.Linear.EndPoint.Y)
	default:
		return fmt.Sprintf("Solid(%s)", d.Solid.Color)
	}
}

// wire is the flattened JSON shape: a "$type" discriminator plus the fields
// of whichever variant is tagged.
type wire struct {
	Type       Kind   `json:"$type"`
	Color      string `json:"Color,omitempty"`
	StartColor string `json:"StartColor,omitempty"`
	EndColor   string `json:"EndColor,omitempty"`
	StartPoint *Point `json:"StartPoint,omitempty"`
	EndPoint   *Point `json:"EndPoint,omitempty"`
}

func (d Descriptor) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case KindLinear:
		sp, ep := d.Linear.StartPoint, d.Linear.EndPoint
		return json.Marshal(wire{Type: KindLinear, StartColor: d.Linear.StartColor, EndColor: d.Linear.EndColor, StartPoint: &sp, EndPoint: &ep})
	case KindSolid, "":
		return json.Marshal(wire{Type: KindSolid, Color: d.Solid.Color})
	default:
		return nil, fmt.Errorf("brush: unknown kind %q", d.Kind)
	}
}

// UnmarshalJSON is lenient: a missing or unknown discriminator is resolved
// from the fields present, and missing gradient points take the default
// top-to-bottom direction. Parsable colors are canonicalized; others are kept
// verbatim and render transparent.
func (d *Descriptor) UnmarshalJSON(b []byte) error {
	var w wire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	kind := w.Type
	if kind != KindSolid && kind != KindLinear {
		kind = KindSolid
		if w.Color == "" && (w.StartColor != "" || w.EndColor != "") {
			kind = KindLinear
		}
	}
	if kind == KindSolid {
		*d = NewSolid(w.Color)
		return nil
	}
	def := DefaultLinear().Linear
	sp, ep := def.StartPoint, def.EndPoint
	if w.StartPoint != nil {
		sp = *w.StartPoint
	}
	if w.EndPoint != nil {
		ep = *w.EndPoint
	}
	*d = NewLinear(w.StartColor, w.EndColor, sp, ep)
	return nil
}
