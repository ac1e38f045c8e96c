/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Path commands and figures. Clip paths only ever contain straight segments.

type PathOp uint8

const (
	MoveTo PathOp = iota
	LineTo
	Close
)

type PathCmd struct {
	Op PathOp
	Pt Pt // unused for Close
}

// Path is a sequence of figures, each started by a MoveTo.
// The zero value is an empty path.
type Path struct{ Cmds []PathCmd }

func (p *Path) MoveTo(x, y float32) { p.Cmds = append(p.Cmds, PathCmd{Op: MoveTo, Pt: Pt{x, y}}) }
func (p *Path) LineTo(x, y float32) { p.Cmds = append(p.Cmds, PathCmd{Op: LineTo, Pt: Pt{x, y}}) }
func (p *Path) Close()              { p.Cmds = append(p.Cmds, PathCmd{Op: Close}) }

// Empty reports whether the path has no commands.
func (p *Path) Empty() bool { return p == nil || len(p.Cmds) == 0 }

// Figures splits the path into its point sequences. A LineTo without a
// preceding MoveTo starts a figure at the origin. Close does not repeat the
// start point; figures are treated as implicitly closed for filling.
func (p *Path) Figures() [][]Pt {
	if p == nil {
		return nil
	}
	var figs [][]Pt
	var cur []Pt
	for _, c := range p.Cmds {
		switch c.Op {
		case MoveTo:
			if len(cur) > 0 {
				figs = append(figs, cur)
			}
			cur = []Pt{c.Pt}
		case LineTo:
			if len(cur) == 0 {
				cur = []Pt{{}}
			}
			cur = append(cur, c.Pt)
		case Close:
			// no-op; filling closes every figure anyway
		}
	}
	if len(cur) > 0 {
		figs = append(figs, cur)
	}
	return figs
}

// Contains reports whether pt lies inside any figure of the path. Figures
// are filled with the nonzero winding rule, the rule Mask rasterizes with, so
// a press hits exactly the painted pixels. Figures combine as a union; those
// with fewer than three points have no area.
func (p *Path) Contains(pt Pt) bool {
	for _, fig := range p.Figures() {
		if len(fig) < 3 {
			continue
		}
		if winding(fig, pt) != 0 {
			return true
		}
	}
	return false
}

// winding returns the winding number of the closed polygon around pt.
func winding(poly []Pt, pt Pt) int {
	n := 0
	a := poly[len(poly)-1]
	for _, b := range poly {
		side := (b.X-a.X)*(pt.Y-a.Y) - (pt.X-a.X)*(b.Y-a.Y)
		switch {
		case a.Y <= pt.Y && b.Y > pt.Y && side > 0:
			n++
		case a.Y > pt.Y && b.Y <= pt.Y && side < 0:
			n--
		}
		a = b
	}
	return n
}
