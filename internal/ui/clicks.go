/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"time"

	"smokescreen/internal/vector"
)

const (
	doubleClickInterval = 400 * time.Millisecond
	doubleClickSlop     = 4 // DIPs
)

// clickCounter derives a click count from successive presses, the way the
// OS reports it: presses close in time and space increase the count.
type clickCounter struct {
	last  time.Time
	pos   vector.Pt
	count int
}

func (c *clickCounter) press(pos vector.Pt, now time.Time) int {
	dx, dy := pos.X-c.pos.X, pos.Y-c.pos.Y
	near := dx*dx+dy*dy <= doubleClickSlop*doubleClickSlop
	if c.count > 0 && near && now.Sub(c.last) <= doubleClickInterval {
		c.count++
	} else {
		c.count = 1
	}
	c.last, c.pos = now, pos
	return c.count
}
