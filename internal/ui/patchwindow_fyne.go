//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image"
	"image/color"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"

	"smokescreen/internal/brush"
	"smokescreen/internal/config"
	"smokescreen/internal/patch"
	"smokescreen/internal/vector"
)

var inkColor = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}

// patchWindow is a borderless window showing one patch. It implements
// supervisor.Surface.
type patchWindow struct {
	id       uuid.UUID
	win      fyne.Window
	view     *patchView
	ink      *inkCanvas
	controls *fyne.Container
	rect     vector.Rect
	ctrl     *patch.Controller
	log      *slog.Logger

	onDispose func()
}

func newPatchWindow(a fyne.App, id uuid.UUID, lg *slog.Logger) *patchWindow {
	var w fyne.Window
	if drv, ok := a.Driver().(desktop.Driver); ok {
		w = drv.CreateSplashWindow()
	} else {
		w = a.NewWindow(config.AppName)
	}
	w.SetPadded(false)

	p := &patchWindow{
		id:   id,
		win:  w,
		view: newPatchView(),
		ink:  newInkCanvas(),
		log:  lg.With(slog.String("patch", id.String())),
	}
	applyBtn := widget.NewButton("Apply", func() {
		if p.ctrl != nil {
			p.ctrl.ApplyShape()
		}
	})
	applyBtn.Importance = widget.HighImportance
	clearBtn := widget.NewButton("Clear", func() {
		if p.ctrl != nil {
			p.ctrl.ClearShape()
		}
	})
	p.controls = container.NewHBox(layout.NewSpacer(), clearBtn, applyBtn)
	p.controls.Hide()
	w.SetContent(container.NewStack(p.view, p.ink, container.NewVBox(layout.NewSpacer(), p.controls)))
	return p
}

func (p *patchWindow) Bounds() vector.Rect {
	r := p.rect
	if sz := p.win.Canvas().Size(); sz.Width > 0 && sz.Height > 0 {
		r.W, r.H = sz.Width, sz.Height
	}
	return r
}

// SetBounds resizes the window. The position is kept for persistence only;
// placement is up to the window manager.
func (p *patchWindow) SetBounds(r vector.Rect) {
	p.rect = r
	p.win.Resize(fyne.NewSize(r.W, r.H))
}

func (p *patchWindow) SetHitTestable(on bool)      { p.view.hitTestable = on }
func (p *patchWindow) SetBackground(b brush.Paint) { p.view.setPaint(b) }
func (p *patchWindow) SetClip(c *vector.Path)      { p.view.setClip(c) }
func (p *patchWindow) Ink() patch.InkSurface       { return p.ink }

func (p *patchWindow) SetEditControls(visible bool) {
	if visible {
		p.controls.Show()
	} else {
		p.controls.Hide()
	}
}

func (p *patchWindow) BeginMove() {
	p.log.Debug("move requested; window placement is left to the window manager")
}

func (p *patchWindow) Attach(c *patch.Controller) {
	p.ctrl = c
	p.view.onPress = c.HandlePrimaryDown
	p.ink.onPress = c.HandlePrimaryDown
	p.win.SetCloseIntercept(c.Close)
	p.win.Show()
}

func (p *patchWindow) Dispose() {
	p.win.Close()
	if p.onDispose != nil {
		p.onDispose()
	}
}

// patchView paints the brush inside the clip region and turns primary
// presses inside that region into click counts.
type patchView struct {
	widget.BaseWidget
	paint       brush.Paint
	clip        *vector.Path
	raster      *canvas.Raster
	clicks      clickCounter
	hitTestable bool
	onPress     func(clicks int)
}

func newPatchView() *patchView {
	v := &patchView{hitTestable: true}
	v.raster = canvas.NewRaster(v.draw)
	v.ExtendBaseWidget(v)
	return v
}

func (v *patchView) draw(w, h int) image.Image {
	return renderPatch(v.paint, v.clip, v.Size().Width, w, h)
}

func (v *patchView) setPaint(p brush.Paint) {
	v.paint = p
	v.raster.Refresh()
}

func (v *patchView) setClip(c *vector.Path) {
	v.clip = c
	v.raster.Refresh()
}

func (v *patchView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.raster)
}

func (v *patchView) MouseDown(e *desktop.MouseEvent) {
	if !v.hitTestable || e.Button != desktop.MouseButtonPrimary || v.onPress == nil {
		return
	}
	pos := vector.Pt{X: e.Position.X, Y: e.Position.Y}
	// a shaped patch only reacts where it is painted
	if v.clip != nil && !v.clip.Contains(pos) {
		return
	}
	v.onPress(v.clicks.press(pos, time.Now()))
}

func (v *patchView) MouseUp(*desktop.MouseEvent) {}

// inkCanvas collects freehand strokes while the patch is in edit mode. It
// implements patch.InkSurface and is hidden when inactive.
type inkCanvas struct {
	widget.BaseWidget
	strokes [][]vector.Pt
	drawing bool
	clicks  clickCounter
	onPress func(clicks int)
}

func newInkCanvas() *inkCanvas {
	i := &inkCanvas{}
	i.ExtendBaseWidget(i)
	i.Hide()
	return i
}

func (i *inkCanvas) SetActive(on bool) {
	i.drawing = false
	if on {
		i.Show()
	} else {
		i.Hide()
	}
}

func (i *inkCanvas) Strokes() [][]vector.Pt { return i.strokes }

func (i *inkCanvas) Clear() {
	i.strokes = nil
	i.drawing = false
	i.Refresh()
}

func (i *inkCanvas) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || i.onPress == nil {
		return
	}
	i.onPress(i.clicks.press(vector.Pt{X: e.Position.X, Y: e.Position.Y}, time.Now()))
}

func (i *inkCanvas) MouseUp(*desktop.MouseEvent) {}

func (i *inkCanvas) Dragged(e *fyne.DragEvent) {
	pt := vector.Pt{X: e.Position.X, Y: e.Position.Y}
	if !i.drawing {
		start := vector.Pt{X: e.Position.X - e.Dragged.DX, Y: e.Position.Y - e.Dragged.DY}
		i.strokes = append(i.strokes, []vector.Pt{start})
		i.drawing = true
	}
	last := len(i.strokes) - 1
	i.strokes[last] = append(i.strokes[last], pt)
	i.Refresh()
}

func (i *inkCanvas) DragEnd() { i.drawing = false }

func (i *inkCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &inkRenderer{ink: i}
}

type inkRenderer struct {
	ink     *inkCanvas
	objects []fyne.CanvasObject
}

func (r *inkRenderer) Layout(fyne.Size)             {}
func (r *inkRenderer) MinSize() fyne.Size           { return fyne.NewSize(0, 0) }
func (r *inkRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *inkRenderer) Destroy()                     {}

func (r *inkRenderer) Refresh() {
	r.objects = r.objects[:0]
	for _, s := range r.ink.strokes {
		for k := 1; k < len(s); k++ {
			l := canvas.NewLine(inkColor)
			l.StrokeWidth = 2
			l.Position1 = fyne.NewPos(s[k-1].X, s[k-1].Y)
			l.Position2 = fyne.NewPos(s[k].X, s[k].Y)
			r.objects = append(r.objects, l)
		}
	}
	canvas.Refresh(r.ink)
}
