/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package patch_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"

	"smokescreen/internal/brush"
	"smokescreen/internal/patch"
	"smokescreen/internal/patch/patchtest"
	"smokescreen/internal/settings"
	"smokescreen/internal/vector"
)

type rig struct {
	c      *patch.Controller
	win    *patchtest.Window
	ink    *patchtest.Ink
	store  *patchtest.Store
	eds    *patchtest.Editors
	active []uuid.UUID
	closed []uuid.UUID
}

func newRig(t *testing.T, store *patchtest.Store) *rig {
	t.Helper()
	if store == nil {
		store = patchtest.NewStore()
	}
	r := &rig{win: &patchtest.Window{}, ink: &patchtest.Ink{}, store: store, eds: &patchtest.Editors{}}
	r.c = patch.New(patch.Options{
		Slot:    0,
		Window:  r.win,
		Ink:     r.ink,
		Store:   r.store,
		Editors: r.eds,
		Defaults: patch.Defaults{
			Bounds: vector.R(100, 100, 400, 300),
			Brush:  brush.DefaultSolid(),
		},
		OnActivated: func(id uuid.UUID) { r.active = append(r.active, id) },
		OnClosed:    func(id uuid.UUID) { r.closed = append(r.closed, id) },
	})
	return r
}

func triangle() []vector.Pt { return []vector.Pt{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 100}} }

func TestNewStartsIdleWithDefaults(t *testing.T) {
	r := newRig(t, nil)
	if r.c.State() != patch.Idle {
		t.Fatalf("initial state = %v, want idle", r.c.State())
	}
	if r.win.Rect != vector.R(100, 100, 400, 300) {
		t.Fatalf("default bounds not applied: %v", r.win.Rect)
	}
	if !r.win.HitTestable || r.win.Clip != nil || r.ink.Active {
		t.Fatalf("unexpected initial window state: %+v ink=%v", r.win, r.ink.Active)
	}
	if r.c.Brush() != brush.DefaultSolid() {
		t.Fatalf("brush = %v, want default", r.c.Brush())
	}
	if r.c.ID() == uuid.Nil {
		t.Fatalf("expected a generated ID")
	}
}

func TestNewRestoresRecord(t *testing.T) {
	store := patchtest.NewStore()
	b := brush.DefaultLinear()
	store.Records[0] = settings.PatchRecord{Top: 5, Left: 6, Width: 70, Height: 80, Brush: &b, ClipGeometry: "M0,0L10,0 10,10"}
	r := newRig(t, store)
	if r.win.Rect != vector.R(6, 5, 70, 80) {
		t.Fatalf("bounds = %v", r.win.Rect)
	}
	if r.c.Brush() != b {
		t.Fatalf("brush = %v, want %v", r.c.Brush(), b)
	}
	if r.c.Clip() == nil || r.win.Clip == nil {
		t.Fatalf("expected restored clip")
	}
}

func TestNewMalformedGeometryMeansNoClip(t *testing.T) {
	store := patchtest.NewStore()
	store.Records[0] = settings.PatchRecord{Width: 10, Height: 10, ClipGeometry: "M0,0 L banana"}
	r := newRig(t, store)
	if r.c.Clip() != nil {
		t.Fatalf("malformed geometry should yield no clip")
	}
	if r.c.Brush() != brush.DefaultSolid() {
		t.Fatalf("missing brush should fall back to default, got %v", r.c.Brush())
	}
}

func TestNewIgnoresEmptyGeometry(t *testing.T) {
	store := patchtest.NewStore()
	store.Records[0] = settings.PatchRecord{}
	r := newRig(t, store)
	if r.win.Rect != vector.R(100, 100, 400, 300) {
		t.Fatalf("zero sized record should keep default bounds, got %v", r.win.Rect)
	}
}

func TestToggleEditShowsFeedback(t *testing.T) {
	r := newRig(t, nil)
	r.c.ToggleEdit()
	if r.c.State() != patch.Editing {
		t.Fatalf("state = %v, want editing", r.c.State())
	}
	if !r.ink.Active || !r.win.EditControls || !r.win.HitTestable {
		t.Fatalf("edit surface not shown: %+v ink=%v", r.win, r.ink.Active)
	}
	if got := r.win.Background.ColorAt(0.5, 0.5); got != patch.EditFeedback {
		t.Fatalf("background = %v, want feedback white", got)
	}

	r.ink.Draw(triangle()...)
	r.c.ToggleEdit()
	if r.c.State() != patch.Idle {
		t.Fatalf("state = %v, want idle", r.c.State())
	}
	if r.c.Clip() != nil {
		t.Fatalf("toggling off must not apply strokes")
	}
	if len(r.ink.Buffer) != 0 || r.ink.Active || r.win.EditControls {
		t.Fatalf("edit exit should clear and hide the ink surface")
	}
	if got := r.win.Background.ColorAt(0.5, 0.5); got != brush.ColorOrTransparent(brush.DefaultSolidColor) {
		t.Fatalf("brush not restored, got %v", got)
	}
}

func TestEditClearsClipWhileDrawingAndRestoresIt(t *testing.T) {
	r := newRig(t, nil)
	r.c.ToggleEdit()
	r.ink.Draw(triangle()...)
	r.c.ApplyShape()
	committed := r.c.Clip()
	if committed == nil || r.win.Clip != committed {
		t.Fatalf("applied clip not installed")
	}

	r.c.ToggleEdit()
	if r.win.Clip != nil {
		t.Fatalf("clip should be lifted while editing")
	}
	r.c.ToggleEdit()
	if r.win.Clip != committed {
		t.Fatalf("leaving edit mode should restore the committed clip")
	}
}

func TestApplyShapeBuildsClip(t *testing.T) {
	r := newRig(t, nil)
	r.c.ToggleEdit()
	r.ink.Draw(triangle()...)
	r.ink.Draw(vector.Pt{X: 300, Y: 300})
	r.c.ApplyShape()
	if r.c.State() != patch.Idle {
		t.Fatalf("apply should leave edit mode, state = %v", r.c.State())
	}
	clip := r.c.Clip()
	if clip == nil {
		t.Fatalf("expected clip")
	}
	if got := len(clip.Figures()); got != 2 {
		t.Fatalf("figures = %d, want 2", got)
	}
	if !clip.Contains(vector.Pt{X: 10, Y: 10}) || clip.Contains(vector.Pt{X: 90, Y: 90}) {
		t.Fatalf("clip region does not match the stroke")
	}
}

func TestApplyShapeWithoutStrokesKeepsClip(t *testing.T) {
	r := newRig(t, nil)
	r.c.ToggleEdit()
	r.ink.Draw(triangle()...)
	r.c.ApplyShape()
	before := r.c.Clip().String()

	r.c.ToggleEdit()
	r.c.ApplyShape()
	if r.c.State() != patch.Idle {
		t.Fatalf("empty apply should still leave edit mode")
	}
	if got := r.c.Clip().String(); got != before {
		t.Fatalf("clip changed: %q -> %q", before, got)
	}
}

func TestApplyShapeOutsideEditingIsNoop(t *testing.T) {
	r := newRig(t, nil)
	r.ink.Draw(triangle()...)
	r.c.ApplyShape()
	if r.c.Clip() != nil || r.c.State() != patch.Idle {
		t.Fatalf("apply outside edit mode should do nothing")
	}
}

func TestClearShapeAnyState(t *testing.T) {
	for _, st := range []patch.State{patch.Locked, patch.Idle, patch.Editing} {
		r := newRig(t, nil)
		r.c.ToggleEdit()
		r.ink.Draw(triangle()...)
		r.c.ApplyShape()
		switch st {
		case patch.Locked:
			r.c.SetInteractive(false)
		case patch.Editing:
			r.c.ToggleEdit()
			r.ink.Draw(triangle()...)
		}
		r.c.ClearShape()
		if r.c.Clip() != nil || r.win.Clip != nil {
			t.Fatalf("%v: clip should be gone", st)
		}
		if len(r.ink.Buffer) != 0 {
			t.Fatalf("%v: stroke buffer should be empty", st)
		}
		if r.c.State() != st {
			t.Fatalf("%v: clear changed state to %v", st, r.c.State())
		}
	}
}

func TestLockWhileEditingForcesExit(t *testing.T) {
	r := newRig(t, nil)
	r.c.ToggleEdit()
	r.ink.Draw(triangle()...)
	r.c.SetInteractive(false)
	if r.c.Interactive() || r.c.Editing() {
		t.Fatalf("want {interactive:false editing:false}, got {%v %v}", r.c.Interactive(), r.c.Editing())
	}
	if r.c.Clip() != nil {
		t.Fatalf("forced exit must not apply strokes")
	}
	if len(r.ink.Buffer) != 0 || r.win.HitTestable {
		t.Fatalf("locked window should be click-through with no strokes")
	}
}

func TestConfigurationActionsUnlock(t *testing.T) {
	r := newRig(t, nil)
	r.c.SetInteractive(false)
	r.c.ToggleEdit()
	if r.c.State() != patch.Editing || !r.win.HitTestable {
		t.Fatalf("edit from locked should unlock, state = %v", r.c.State())
	}

	r = newRig(t, nil)
	r.c.SetInteractive(false)
	r.c.ShowColorEditor()
	if r.c.State() != patch.Idle {
		t.Fatalf("color editor from locked should unlock, state = %v", r.c.State())
	}
}

func TestSetBrushWhileEditingKeepsFeedback(t *testing.T) {
	r := newRig(t, nil)
	red := brush.NewSolid("#FFFF0000")
	r.c.ToggleEdit()
	r.c.SetBrush(red)
	if got := r.win.Background.ColorAt(0, 0); got != patch.EditFeedback {
		t.Fatalf("background changed during edit: %v", got)
	}
	r.c.ToggleEdit()
	if got := r.win.Background.ColorAt(0, 0); got != brush.ColorOrTransparent("#FFFF0000") {
		t.Fatalf("new brush not shown after edit: %v", got)
	}

	blue := brush.NewSolid("#FF0000FF")
	r.c.SetBrush(blue)
	if got := r.win.Background.ColorAt(0, 0); got != brush.ColorOrTransparent("#FF0000FF") {
		t.Fatalf("brush not repainted immediately: %v", got)
	}
}

func TestColorEditorSingleSession(t *testing.T) {
	r := newRig(t, nil)
	r.c.ShowColorEditor()
	r.c.ShowColorEditor()
	if len(r.eds.Opened) != 1 {
		t.Fatalf("opened %d editors, want 1", len(r.eds.Opened))
	}
	ed := r.eds.Last()
	if ed.Activations != 1 {
		t.Fatalf("second request should activate the open editor")
	}
	if ed.Initial != brush.DefaultSolid() {
		t.Fatalf("editor initial brush = %v", ed.Initial)
	}
	green := brush.NewSolid("#FF00FF00")
	ed.OnChange(green)
	if r.c.Brush() != green {
		t.Fatalf("editor change not applied")
	}

	ed.Dismiss()
	if r.c.EditorOpen() {
		t.Fatalf("dismissed editor should be forgotten")
	}
	r.c.ShowColorEditor()
	if len(r.eds.Opened) != 2 {
		t.Fatalf("expected a fresh editor after dismiss")
	}
}

func TestHandlePrimaryDown(t *testing.T) {
	r := newRig(t, nil)
	r.c.HandlePrimaryDown(1)
	if r.win.Moves != 1 {
		t.Fatalf("single click should start a move")
	}
	r.c.HandlePrimaryDown(2)
	if r.c.State() != patch.Editing {
		t.Fatalf("double click should enter edit mode")
	}
	r.c.HandlePrimaryDown(1)
	if r.win.Moves != 1 {
		t.Fatalf("no move while editing")
	}
	r.c.HandlePrimaryDown(3)
	if r.c.State() != patch.Idle {
		t.Fatalf("double click should leave edit mode")
	}
	if len(r.active) != 4 {
		t.Fatalf("every press should activate, got %d", len(r.active))
	}
	for _, id := range r.active {
		if id != r.c.ID() {
			t.Fatalf("activation reported wrong id")
		}
	}
}

func TestCloseSavesOnce(t *testing.T) {
	r := newRig(t, nil)
	red := brush.NewSolid("#FFFF0000")
	r.c.SetBrush(red)
	r.c.ToggleEdit()
	r.ink.Draw(triangle()...)
	r.c.ApplyShape()
	r.win.Rect = vector.R(1, 2, 3, 4)
	r.c.ShowColorEditor()
	ed := r.eds.Last()

	r.c.Close()
	r.c.Close()
	if r.store.Saves != 1 {
		t.Fatalf("saves = %d, want 1", r.store.Saves)
	}
	if !ed.Closed {
		t.Fatalf("close should close the color editor")
	}
	if len(r.closed) != 1 || r.closed[0] != r.c.ID() {
		t.Fatalf("close notification = %v", r.closed)
	}
	rec := r.store.Records[0]
	if rec.Left != 1 || rec.Top != 2 || rec.Width != 3 || rec.Height != 4 {
		t.Fatalf("geometry not captured: %+v", rec)
	}
	if rec.Brush == nil || *rec.Brush != red {
		t.Fatalf("brush not saved: %+v", rec.Brush)
	}
	if rec.ClipGeometry != r.c.Clip().String() || rec.ClipGeometry == "" {
		t.Fatalf("clip not saved: %q", rec.ClipGeometry)
	}

	r.c.ToggleEdit()
	if r.c.Editing() {
		t.Fatalf("closed controller should ignore commands")
	}
}

func TestCloseSaveFailureStillCloses(t *testing.T) {
	store := patchtest.NewStore()
	store.Err = errors.New("disk full")
	r := newRig(t, store)
	r.c.Close()
	if !r.c.Closed() || len(r.closed) != 1 {
		t.Fatalf("save failure must not block close")
	}
}

func TestCloseThenReopenRestores(t *testing.T) {
	r := newRig(t, nil)
	r.c.SetBrush(brush.DefaultLinear())
	r.c.ToggleEdit()
	r.ink.Draw(triangle()...)
	r.c.ApplyShape()
	r.c.Close()

	again := newRig(t, r.store)
	if again.c.Brush() != brush.DefaultLinear() {
		t.Fatalf("brush not restored: %v", again.c.Brush())
	}
	if again.c.Clip().String() != r.c.Clip().String() {
		t.Fatalf("clip not restored: %q vs %q", again.c.Clip().String(), r.c.Clip().String())
	}
}

func TestEditingImpliesInteractive(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	r := newRig(t, nil)
	ops := []func(){
		func() { r.c.SetInteractive(false) },
		func() { r.c.SetInteractive(true) },
		func() { r.c.ToggleEdit() },
		func() { r.ink.Draw(triangle()...); r.c.ApplyShape() },
		func() { r.c.ClearShape() },
		func() { r.c.ShowColorEditor() },
		func() { r.c.SetBrush(brush.DefaultLinear()) },
		func() { r.c.HandlePrimaryDown(1 + rng.IntN(2)) },
		func() {
			if ed := r.eds.Last(); ed != nil {
				ed.Dismiss()
			}
		},
	}
	for i := 0; i < 5000; i++ {
		ops[rng.IntN(len(ops))]()
		if r.c.Editing() && !r.c.Interactive() {
			t.Fatalf("step %d: editing while click-through", i)
		}
		if r.win.HitTestable != r.c.Interactive() {
			t.Fatalf("step %d: window hit-testing out of sync", i)
		}
		if r.ink.Active != r.c.Editing() || r.win.EditControls != r.c.Editing() {
			t.Fatalf("step %d: ink surface out of sync", i)
		}
	}
}
