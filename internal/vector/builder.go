/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// BuildClip turns freehand strokes into one clip path: per stroke a MoveTo to
// its first point followed by a LineTo through each remaining point.
// Strokes become independent figures of the same region.
//
// Callers treat an empty stroke list as "no clip" and should not call
// BuildClip for it; nil is returned in that case. Strokes without points are
// skipped, a single point stroke yields a zero-area figure.
func BuildClip(strokes [][]Pt) *Path {
	var p Path
	for _, s := range strokes {
		if len(s) == 0 {
			continue
		}
		p.MoveTo(s[0].X, s[0].Y)
		for _, pt := range s[1:] {
			p.LineTo(pt.X, pt.Y)
		}
	}
	if p.Empty() {
		return nil
	}
	return &p
}
