/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package patch

import (
	"smokescreen/internal/brush"
	"smokescreen/internal/settings"
	"smokescreen/internal/vector"
)

// Window is the overlay window driven by a Controller. Bounds are in device
// independent units: X is the left edge, Y the top edge.
type Window interface {
	Bounds() vector.Rect
	SetBounds(vector.Rect)
	// SetHitTestable switches between receiving mouse input and click-through.
	SetHitTestable(bool)
	SetBackground(brush.Paint)
	// SetClip restricts painting to the region; nil paints the whole rectangle.
	SetClip(*vector.Path)
	// SetEditControls shows or hides the Apply and Clear controls.
	SetEditControls(bool)
	// BeginMove starts an OS move-drag for the current pointer press.
	BeginMove()
}

// InkSurface captures freehand strokes on top of the window.
type InkSurface interface {
	SetActive(bool)
	Strokes() [][]vector.Pt
	Clear()
}

// Store loads and saves the record of one patch slot.
type Store interface {
	LoadPatch(slot int) (settings.PatchRecord, bool)
	SavePatch(slot int, rec settings.PatchRecord) error
}

// Editor is an open color editor.
type Editor interface {
	Activate()
	Close()
}

// EditorFactory opens color editors. onChange receives every edit, onClosed
// fires once when the editor goes away for any reason.
type EditorFactory interface {
	OpenColorEditor(initial brush.Descriptor, onChange func(brush.Descriptor), onClosed func()) Editor
}
