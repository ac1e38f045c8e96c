/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package brush

import "math"

// PointsFromAngle returns gradient end points for an angle in degrees: a unit
// vector centred on the unit square and rotated clockwise (y grows down).
func PointsFromAngle(deg float64) (start, end Point) {
	rad := deg * math.Pi / 180
	x, y := math.Cos(rad), math.Sin(rad)
	return Point{0.5 - x/2, 0.5 - y/2}, Point{0.5 + x/2, 0.5 + y/2}
}

// AngleFromPoints is the inverse of PointsFromAngle, normalized to [0,360).
func AngleFromPoints(start, end Point) float64 {
	deg := math.Atan2(end.Y-start.Y, end.X-start.X) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg -= 360
	}
	return deg
}
