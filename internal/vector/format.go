/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Clip paths are persisted in the path mini-language: "M10,10L20,20 30,10z".
// Supported: M/L/Z, their relative forms m/l/z, implicit repeated coordinate
// pairs and a leading fill rule token (F0/F1) which is ignored.

// String formats the path in the path mini-language. Runs of LineTo share a
// single L command with space separated coordinate pairs.
func (p *Path) String() string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	var last PathOp = Close
	for i, c := range p.Cmds {
		switch c.Op {
		case MoveTo:
			b.WriteByte('M')
			writePt(&b, c.Pt)
		case LineTo:
			if last == LineTo && i > 0 {
				b.WriteByte(' ')
			} else {
				b.WriteByte('L')
			}
			writePt(&b, c.Pt)
		case Close:
			b.WriteByte('z')
		}
		last = c.Op
	}
	return b.String()
}

func writePt(b *strings.Builder, pt Pt) {
	b.WriteString(strconv.FormatFloat(float64(pt.X), 'g', -1, 32))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(float64(pt.Y), 'g', -1, 32))
}

// ErrEmptyPath is returned by ParsePath when the input holds no figures,
// including input made of close commands only.
var ErrEmptyPath = errors.New("empty path")

// ParsePath parses a path mini-language string produced by Path.String or by
// other tools emitting the same subset.
func ParsePath(s string) (*Path, error) {
	sc := pathScanner{s: s}
	p := &Path{}
	var cmd byte
	var cur, start Pt
	for {
		sc.skipSep()
		if sc.done() {
			break
		}
		c := sc.s[sc.i]
		if isCommand(c) {
			sc.i++
			switch c {
			case 'F', 'f':
				if len(p.Cmds) > 0 {
					return nil, fmt.Errorf("fill rule at offset %d: must lead the path", sc.i-1)
				}
				if _, err := sc.number(); err != nil {
					return nil, fmt.Errorf("fill rule: %w", err)
				}
				continue
			case 'Z', 'z':
				p.Close()
				cur = start
				cmd = 0
				continue
			case 'M', 'm', 'L', 'l':
				cmd = c
			default:
				return nil, fmt.Errorf("unsupported path command %q at offset %d", c, sc.i-1)
			}
		} else if cmd == 0 {
			return nil, fmt.Errorf("expected path command at offset %d", sc.i)
		}

		pt, err := sc.point()
		if err != nil {
			return nil, err
		}
		if cmd == 'm' || cmd == 'l' {
			pt = Pt{cur.X + pt.X, cur.Y + pt.Y}
		}
		switch cmd {
		case 'M', 'm':
			p.MoveTo(pt.X, pt.Y)
			start = pt
			// pairs following a move are implicit line segments
			if cmd == 'M' {
				cmd = 'L'
			} else {
				cmd = 'l'
			}
		default:
			p.LineTo(pt.X, pt.Y)
		}
		cur = pt
	}
	if len(p.Figures()) == 0 {
		return nil, ErrEmptyPath
	}
	return p, nil
}

func isCommand(c byte) bool {
	return (c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z') && c != 'e' && c != 'E'
}

type pathScanner struct {
	s string
	i int
}

func (sc *pathScanner) done() bool { return sc.i >= len(sc.s) }

func (sc *pathScanner) skipSep() {
	for sc.i < len(sc.s) {
		switch sc.s[sc.i] {
		case ' ', '\t', '\n', '\r', ',':
			sc.i++
		default:
			return
		}
	}
}

func (sc *pathScanner) point() (Pt, error) {
	x, err := sc.number()
	if err != nil {
		return Pt{}, err
	}
	y, err := sc.number()
	if err != nil {
		return Pt{}, err
	}
	return Pt{x, y}, nil
}

func (sc *pathScanner) number() (float32, error) {
	sc.skipSep()
	begin := sc.i
	if sc.i < len(sc.s) && (sc.s[sc.i] == '+' || sc.s[sc.i] == '-') {
		sc.i++
	}
	for sc.i < len(sc.s) {
		c := sc.s[sc.i]
		if c >= '0' && c <= '9' || c == '.' {
			sc.i++
			continue
		}
		if (c == 'e' || c == 'E') && sc.i > begin {
			sc.i++
			if sc.i < len(sc.s) && (sc.s[sc.i] == '+' || sc.s[sc.i] == '-') {
				sc.i++
			}
			continue
		}
		break
	}
	if sc.i == begin {
		return 0, fmt.Errorf("expected number at offset %d", begin)
	}
	v, err := strconv.ParseFloat(sc.s[begin:sc.i], 32)
	if err != nil {
		return 0, fmt.Errorf("number at offset %d: %w", begin, err)
	}
	return float32(v), nil
}
