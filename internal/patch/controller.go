/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package patch holds the per-window controller of an overlay patch: its
// interaction mode, edit mode, brush and clip region, loaded from the
// settings store at construction and saved back once at close.
//
// A controller is in one of three states. Locked windows are click-through.
// Idle windows take mouse input: a press starts a move, a double click enters
// Editing. Editing shows the ink surface over a fixed translucent white
// background until the shape is applied or edit mode is toggled off.
//
// Controllers are not safe for concurrent use; every call is expected on the
// UI thread.
package patch

import (
	"image/color"
	"log/slog"

	"github.com/google/uuid"

	"smokescreen/internal/brush"
	applog "smokescreen/internal/log"
	"smokescreen/internal/settings"
	"smokescreen/internal/vector"
)

// EditFeedback is the background shown while drawing strokes.
var EditFeedback = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x80}

// State is the interaction mode of a patch.
type State int

const (
	Locked State = iota
	Idle
	Editing
)

func (s State) String() string {
	switch s {
	case Locked:
		return "locked"
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	default:
		return "unknown"
	}
}

// Defaults describe a patch with no stored record.
type Defaults struct {
	Bounds vector.Rect
	Brush  brush.Descriptor
}

// Options configure a Controller. Window, Ink and Store are required.
type Options struct {
	ID       uuid.UUID // zero means a fresh random ID
	Slot     int
	Window   Window
	Ink      InkSurface
	Store    Store
	Editors  EditorFactory
	Defaults Defaults

	OnActivated func(uuid.UUID)
	OnChanged   func(uuid.UUID)
	OnClosed    func(uuid.UUID)

	Logger *slog.Logger
}

// Controller owns one overlay window.
type Controller struct {
	id      uuid.UUID
	slot    int
	win     Window
	ink     InkSurface
	store   Store
	editors EditorFactory
	log     *slog.Logger

	onActivated func(uuid.UUID)
	onChanged   func(uuid.UUID)
	onClosed    func(uuid.UUID)

	interactive bool
	editing     bool
	brush       brush.Descriptor
	clip        *vector.Path
	editor      Editor
	closed      bool
}

// New creates a controller in the Idle state, restores the record stored for
// its slot and pushes the resulting appearance to the window.
func New(opts Options) *Controller {
	id := opts.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	lg := opts.Logger
	if lg == nil {
		lg = applog.WithComponent("patch")
	}
	c := &Controller{
		id:          id,
		slot:        opts.Slot,
		win:         opts.Window,
		ink:         opts.Ink,
		store:       opts.Store,
		editors:     opts.Editors,
		log:         lg.With(slog.String("patch", id.String()), slog.Int("slot", opts.Slot)),
		onActivated: opts.OnActivated,
		onChanged:   opts.OnChanged,
		onClosed:    opts.OnClosed,
		interactive: true,
		brush:       opts.Defaults.Brush,
	}
	if c.brush.Kind == "" {
		c.brush = brush.DefaultSolid()
	}
	bounds := opts.Defaults.Bounds
	if rec, ok := c.store.LoadPatch(c.slot); ok {
		if rec.Width > 0 && rec.Height > 0 {
			bounds = vector.R(float32(rec.Left), float32(rec.Top), float32(rec.Width), float32(rec.Height))
		}
		c.brush = rec.BrushOrDefault(c.brush)
		c.clip = parseClip(c.log, rec.ClipGeometry)
		c.log.Debug("patch restored", slog.String("brush", c.brush.String()), slog.Bool("shaped", c.clip != nil))
	}

	c.win.SetBounds(bounds)
	c.win.SetHitTestable(true)
	c.win.SetEditControls(false)
	c.win.SetBackground(c.brush.Renderable())
	c.win.SetClip(c.clip)
	c.ink.SetActive(false)
	return c
}

// parseClip turns a stored geometry string into a clip. Failures are logged
// and yield no clip so a damaged record still shows the full rectangle.
func parseClip(lg *slog.Logger, s string) *vector.Path {
	if s == "" {
		return nil
	}
	p, err := vector.ParsePath(s)
	if err != nil {
		lg.Warn("ignoring malformed clip geometry", slog.String("geometry", s), slog.Any("err", err))
		return nil
	}
	return p
}

func (c *Controller) ID() uuid.UUID           { return c.id }
func (c *Controller) Slot() int               { return c.slot }
func (c *Controller) Interactive() bool       { return c.interactive }
func (c *Controller) Editing() bool           { return c.editing }
func (c *Controller) Brush() brush.Descriptor { return c.brush }
func (c *Controller) Clip() *vector.Path      { return c.clip }
func (c *Controller) EditorOpen() bool        { return c.editor != nil }
func (c *Controller) Closed() bool            { return c.closed }

// State derives the interaction mode from the interactive and editing flags.
func (c *Controller) State() State {
	switch {
	case !c.interactive:
		return Locked
	case c.editing:
		return Editing
	default:
		return Idle
	}
}

// SetInteractive switches between click-through (false) and hit-testable.
// Locking a window that is editing leaves edit mode first and discards the
// strokes without touching the clip.
func (c *Controller) SetInteractive(on bool) {
	if c.closed || c.interactive == on {
		return
	}
	if !on && c.editing {
		c.exitEdit()
	}
	c.interactive = on
	c.win.SetHitTestable(on)
	c.log.Debug("interactive changed", slog.Bool("interactive", on))
	c.changed()
}

// ensureInteractive unlocks the window before a configuration action.
func (c *Controller) ensureInteractive() {
	if !c.interactive {
		c.SetInteractive(true)
	}
}

// ToggleEdit enters Editing from Idle or Locked, or leaves it without
// applying the strokes.
func (c *Controller) ToggleEdit() {
	if c.closed {
		return
	}
	if c.editing {
		c.exitEdit()
		c.changed()
		return
	}
	c.ensureInteractive()
	c.editing = true
	c.ink.SetActive(true)
	c.win.SetHitTestable(true)
	c.win.SetBackground(brush.SolidPaint{Color: EditFeedback})
	c.win.SetClip(nil)
	c.win.SetEditControls(true)
	c.log.Debug("edit mode entered")
	c.changed()
}

// exitEdit restores the committed appearance and drops the stroke buffer.
func (c *Controller) exitEdit() {
	c.editing = false
	c.ink.Clear()
	c.ink.SetActive(false)
	c.win.SetEditControls(false)
	c.win.SetBackground(c.brush.Renderable())
	c.win.SetClip(c.clip)
	c.win.SetHitTestable(c.interactive)
	c.log.Debug("edit mode left")
}

// ApplyShape commits the captured strokes as the clip region and leaves edit
// mode. Without strokes the clip stays as it was. Outside Editing it does
// nothing.
func (c *Controller) ApplyShape() {
	if c.closed || !c.editing {
		return
	}
	if clip := vector.BuildClip(c.ink.Strokes()); clip != nil {
		c.clip = clip
		c.log.Info("shape applied", slog.Int("figures", len(clip.Figures())))
	}
	c.exitEdit()
	c.changed()
}

// ClearShape removes the clip region and empties the stroke buffer. It does
// not change the mode.
func (c *Controller) ClearShape() {
	if c.closed {
		return
	}
	c.clip = nil
	c.ink.Clear()
	if !c.editing {
		c.win.SetClip(nil)
	}
	c.log.Debug("shape cleared")
}

// SetBrush replaces the brush. While editing the feedback background stays
// until edit mode is left.
func (c *Controller) SetBrush(d brush.Descriptor) {
	if c.closed {
		return
	}
	c.brush = d
	if !c.editing {
		c.win.SetBackground(d.Renderable())
	}
}

// ShowColorEditor opens the color editor, or brings the open one forward.
func (c *Controller) ShowColorEditor() {
	if c.closed || c.editors == nil {
		return
	}
	c.ensureInteractive()
	if c.editor != nil {
		c.editor.Activate()
		return
	}
	var ed Editor
	ed = c.editors.OpenColorEditor(c.brush, c.SetBrush, func() {
		if c.editor == ed {
			c.editor = nil
		}
	})
	c.editor = ed
}

// HandlePrimaryDown handles a primary button press on the window. A single
// press on an idle window starts a move, a double click toggles edit mode.
func (c *Controller) HandlePrimaryDown(clicks int) {
	if c.closed {
		return
	}
	c.Activate()
	switch {
	case clicks >= 2:
		c.ToggleEdit()
	case clicks == 1 && c.interactive && !c.editing:
		c.win.BeginMove()
	}
}

// Activate reports the patch as the target of tray commands.
func (c *Controller) Activate() {
	if c.closed || c.onActivated == nil {
		return
	}
	c.onActivated(c.id)
}

// Snapshot returns the record Close would save.
func (c *Controller) Snapshot() settings.PatchRecord {
	b := c.win.Bounds()
	d := c.brush
	return settings.PatchRecord{
		Top:          float64(b.Y),
		Left:         float64(b.X),
		Width:        float64(b.W),
		Height:       float64(b.H),
		Brush:        &d,
		ClipGeometry: c.clip.String(),
	}
}

// Save writes the current record to the store without closing.
func (c *Controller) Save() error {
	return c.store.SavePatch(c.slot, c.Snapshot())
}

// Close closes the color editor, saves the record and reports the patch as
// gone. Unapplied strokes are dropped. Later calls do nothing.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	if c.editor != nil {
		ed := c.editor
		c.editor = nil
		ed.Close()
	}
	if c.editing {
		c.exitEdit()
	}
	if err := c.Save(); err != nil {
		c.log.Error("saving patch failed", slog.Any("err", err))
	} else {
		c.log.Info("patch saved")
	}
	c.closed = true
	if c.onClosed != nil {
		c.onClosed(c.id)
	}
}

func (c *Controller) changed() {
	if c.onChanged != nil {
		c.onChanged(c.id)
	}
}
