//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// These tests validate the Fyne-based UI components. They are gated behind the
// "fyne" build tag so CI (which is headless) does not need Fyne or a display.
// To run locally:
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/google/uuid"

	"smokescreen/internal/brush"
	applog "smokescreen/internal/log"
	"smokescreen/internal/patch"
	"smokescreen/internal/settings"
	"smokescreen/internal/supervisor"
	"smokescreen/internal/vector"
)

func press(clicks int, do func(*desktop.MouseEvent)) { pressAt(fyne.NewPos(5, 5), clicks, do) }

func pressAt(pos fyne.Position, clicks int, do func(*desktop.MouseEvent)) {
	for i := 0; i < clicks; i++ {
		do(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: pos}, Button: desktop.MouseButtonPrimary})
	}
}

func newTestSupervisor(t *testing.T, a fyne.App) (*supervisor.Supervisor, *host) {
	t.Helper()
	h := newHost(a, applog.WithComponent("ui"))
	sup := supervisor.New(supervisor.Options{
		Host:     h,
		Store:    settings.NewStore(filepath.Join(t.TempDir(), "settings.json")),
		Defaults: patch.Defaults{Bounds: vector.R(0, 0, 200, 100), Brush: brush.DefaultSolid()},
	})
	return sup, h
}

func TestPatchWindow_BoundsAndControls(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	p := newPatchWindow(a, uuid.New(), applog.WithComponent("ui"))
	p.SetBounds(vector.R(30, 40, 200, 100))
	b := p.Bounds()
	if b.X != 30 || b.Y != 40 {
		t.Fatalf("position should be kept, got %v", b)
	}
	p.SetEditControls(true)
	if !p.controls.Visible() {
		t.Fatalf("edit controls should be visible")
	}
	p.SetEditControls(false)
	if p.controls.Visible() {
		t.Fatalf("edit controls should be hidden")
	}
}

func TestInkCanvas_CollectsStrokes(t *testing.T) {
	ink := newInkCanvas()
	ink.SetActive(true)
	ink.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(10, 10)}, Dragged: fyne.Delta{DX: 2, DY: 0}})
	ink.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(20, 15)}, Dragged: fyne.Delta{DX: 10, DY: 5}})
	ink.DragEnd()
	ink.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(50, 50)}, Dragged: fyne.Delta{DX: 1, DY: 1}})
	ink.DragEnd()

	strokes := ink.Strokes()
	if len(strokes) != 2 {
		t.Fatalf("strokes = %d, want 2", len(strokes))
	}
	if len(strokes[0]) != 3 || strokes[0][0] != (vector.Pt{X: 8, Y: 10}) {
		t.Fatalf("first stroke = %v", strokes[0])
	}
	ink.Clear()
	if len(ink.Strokes()) != 0 {
		t.Fatalf("clear should drop strokes")
	}
	ink.SetActive(false)
	if ink.Visible() {
		t.Fatalf("inactive ink surface should be hidden")
	}
}

func TestPatchWindow_DoubleClickEntersEdit(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	sup, h := newTestSupervisor(t, a)
	sup.Restore()
	c := sup.Patches()[0]
	if sup.LastActive() != c {
		t.Fatalf("restored patch should be the tray target")
	}
	win := h.windows[c.ID()]
	if win == nil || win.ctrl != c {
		t.Fatalf("window not attached to its controller")
	}

	press(2, win.view.MouseDown)
	if c.State() != patch.Editing {
		t.Fatalf("double click should enter edit mode, state = %v", c.State())
	}
	if !win.ink.Visible() || !win.controls.Visible() {
		t.Fatalf("edit surface should be shown")
	}

	win.ink.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(100, 0)}, Dragged: fyne.Delta{DX: 100, DY: 0}})
	win.ink.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(0, 100)}, Dragged: fyne.Delta{DX: -100, DY: 100}})
	win.ink.DragEnd()
	c.ApplyShape()
	if c.Clip() == nil || c.State() != patch.Idle {
		t.Fatalf("apply should install a clip and leave edit mode")
	}

	c.SetInteractive(false)
	press(2, win.view.MouseDown)
	if c.State() != patch.Locked {
		t.Fatalf("locked patch must ignore presses")
	}

	sup.Exit()
	if len(h.windows) != 0 {
		t.Fatalf("exit should dispose every window, %d left", len(h.windows))
	}
}

func TestPatchView_PressOutsideClipIsIgnored(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	sup, h := newTestSupervisor(t, a)
	sup.Restore()
	sup.NewPatch()
	first, second := sup.Patches()[0], sup.Patches()[1]
	win := h.windows[first.ID()]
	// the same square traced twice, painted under the nonzero rule
	sq := []vector.Pt{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}, {X: 0, Y: 50}}
	win.SetClip(vector.BuildClip([][]vector.Pt{append(sq, sq...)}))

	pressAt(fyne.NewPos(150, 80), 2, win.view.MouseDown)
	if sup.LastActive() != second || first.State() != patch.Idle {
		t.Fatalf("press outside the clip must not reach the patch")
	}
	pressAt(fyne.NewPos(25, 25), 2, win.view.MouseDown)
	if sup.LastActive() != first || first.State() != patch.Editing {
		t.Fatalf("press inside the clip should activate and toggle, state = %v", first.State())
	}
}

func TestColorDialog_EmitsOnInitAndEdit(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	var got []brush.Descriptor
	closed := 0
	d := newColorDialog(a, brush.NewSolid("#80112233"), func(b brush.Descriptor) { got = append(got, b) }, func() { closed++ })
	if len(got) != 1 || got[0] != brush.NewSolid("#80112233") {
		t.Fatalf("init emissions = %v", got)
	}
	d.sess.SetChannel(0, 0, 0xFF)
	if got[len(got)-1] != brush.NewSolid("#FF112233") {
		t.Fatalf("edit not streamed: %v", got[len(got)-1])
	}
	if d.gradient.Visible() {
		t.Fatalf("gradient controls hidden for solid brushes")
	}
	d.Close()
	if closed != 1 {
		t.Fatalf("onClosed called %d times", closed)
	}
}

func TestBuildTrayMenu(t *testing.T) {
	var invoked []supervisor.Command
	items := []supervisor.MenuItem{
		{Command: supervisor.CmdSetupMode, Label: "Setup Mode", Checkable: true, Checked: true},
		{},
		{Command: supervisor.CmdExit, Label: "Exit"},
	}
	m := buildTrayMenu(items, func(c supervisor.Command) { invoked = append(invoked, c) })
	if len(m.Items) != 3 {
		t.Fatalf("items = %d", len(m.Items))
	}
	if !m.Items[0].Checked || !m.Items[1].IsSeparator || !m.Items[2].IsQuit {
		t.Fatalf("menu flags not mapped: %+v", m.Items)
	}
	m.Items[0].Action()
	m.Items[2].Action()
	if len(invoked) != 2 || invoked[0] != supervisor.CmdSetupMode || invoked[1] != supervisor.CmdExit {
		t.Fatalf("invoked = %v", invoked)
	}
}
