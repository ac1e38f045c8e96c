/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package patchtest provides in-memory implementations of the patch
// controller's collaborators for tests.
package patchtest

import (
	"smokescreen/internal/brush"
	"smokescreen/internal/patch"
	"smokescreen/internal/settings"
	"smokescreen/internal/vector"
)

// Window records what the controller pushed to it.
type Window struct {
	Rect         vector.Rect
	HitTestable  bool
	Background   brush.Paint
	Clip         *vector.Path
	EditControls bool
	Moves        int
}

func (w *Window) Bounds() vector.Rect          { return w.Rect }
func (w *Window) SetBounds(r vector.Rect)      { w.Rect = r }
func (w *Window) SetHitTestable(on bool)       { w.HitTestable = on }
func (w *Window) SetBackground(p brush.Paint)  { w.Background = p }
func (w *Window) SetClip(p *vector.Path)       { w.Clip = p }
func (w *Window) SetEditControls(visible bool) { w.EditControls = visible }
func (w *Window) BeginMove()                   { w.Moves++ }

// Ink is a stroke buffer filled by Draw.
type Ink struct {
	Active bool
	Buffer [][]vector.Pt
}

// Draw appends one stroke.
func (i *Ink) Draw(pts ...vector.Pt) { i.Buffer = append(i.Buffer, pts) }

func (i *Ink) SetActive(on bool)      { i.Active = on }
func (i *Ink) Strokes() [][]vector.Pt { return i.Buffer }
func (i *Ink) Clear()                 { i.Buffer = nil }

// Store keeps records in memory.
type Store struct {
	Records map[int]settings.PatchRecord
	Saves   int
	Err     error
}

func NewStore() *Store { return &Store{Records: map[int]settings.PatchRecord{}} }

func (s *Store) LoadPatch(slot int) (settings.PatchRecord, bool) {
	rec, ok := s.Records[slot]
	return rec, ok
}

func (s *Store) SavePatch(slot int, rec settings.PatchRecord) error {
	s.Saves++
	if s.Err != nil {
		return s.Err
	}
	s.Records[slot] = rec
	return nil
}

// Editors opens Editor values and keeps every one it opened.
type Editors struct {
	Opened []*Editor
}

func (f *Editors) OpenColorEditor(initial brush.Descriptor, onChange func(brush.Descriptor), onClosed func()) patch.Editor {
	e := &Editor{Initial: initial, OnChange: onChange, onClosed: onClosed}
	f.Opened = append(f.Opened, e)
	return e
}

// Last returns the most recently opened editor or nil.
func (f *Editors) Last() *Editor {
	if len(f.Opened) == 0 {
		return nil
	}
	return f.Opened[len(f.Opened)-1]
}

// Editor is a fake color editor. Tests drive it through OnChange and Dismiss.
type Editor struct {
	Initial     brush.Descriptor
	OnChange    func(brush.Descriptor)
	Activations int
	Closed      bool
	onClosed    func()
}

func (e *Editor) Activate() { e.Activations++ }

func (e *Editor) Close() {
	if e.Closed {
		return
	}
	e.Closed = true
	e.onClosed()
}

// Dismiss simulates the user closing the editor window.
func (e *Editor) Dismiss() { e.Close() }
