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

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"smokescreen/internal/brush"
	"smokescreen/internal/coloreditor"
)

// colorDialog is the modeless color settings window of one patch. It
// implements patch.Editor.
type colorDialog struct {
	win      fyne.Window
	sess     *coloreditor.Session
	preview  *canvas.Raster
	gradient *fyne.Container
}

func newColorDialog(a fyne.App, initial brush.Descriptor, onChange func(brush.Descriptor), onClosed func()) *colorDialog {
	d := &colorDialog{win: a.NewWindow("Color Settings")}
	d.preview = canvas.NewRaster(d.drawPreview)
	d.preview.SetMinSize(fyne.NewSize(260, 60))
	d.sess = coloreditor.New(initial, func(desc brush.Descriptor) {
		d.preview.Refresh()
		if onChange != nil {
			onChange(desc)
		}
	})

	angle := widget.NewSlider(0, 359)
	angle.Step = 1
	angle.Value = d.sess.Angle()
	angle.OnChanged = d.sess.SetAngle

	d.gradient = container.NewVBox(
		widget.NewLabel("End color"),
		d.channelSliders(coloreditor.Second),
		widget.NewLabel("Angle"),
		angle,
	)

	kind := widget.NewSelect([]string{string(brush.KindSolid), string(brush.KindLinear)}, nil)
	kind.Selected = string(d.sess.Kind())
	kind.OnChanged = func(s string) {
		d.sess.SetKind(brush.Kind(s))
		d.syncKind()
	}
	d.syncKind()

	d.win.SetContent(container.NewVBox(
		kind,
		widget.NewLabel("Color"),
		d.channelSliders(coloreditor.First),
		d.gradient,
		d.preview,
	))
	d.win.Resize(fyne.NewSize(320, 0))
	if onClosed != nil {
		d.win.SetOnClosed(onClosed)
	}
	d.win.Show()
	return d
}

func (d *colorDialog) channelSliders(stop coloreditor.Stop) fyne.CanvasObject {
	form := container.New(layout.NewFormLayout())
	channels := []struct {
		label string
		ch    coloreditor.Channel
	}{
		{"A", coloreditor.Alpha},
		{"R", coloreditor.Red},
		{"G", coloreditor.Green},
		{"B", coloreditor.Blue},
	}
	for _, c := range channels {
		s := widget.NewSlider(0, 255)
		s.Step = 1
		s.Value = float64(d.sess.Channel(stop, c.ch))
		s.OnChanged = func(v float64) { d.sess.SetChannel(stop, c.ch, uint8(v)) }
		form.Add(widget.NewLabel(c.label))
		form.Add(s)
	}
	return form
}

func (d *colorDialog) syncKind() {
	if d.sess.Kind() == brush.KindLinear {
		d.gradient.Show()
	} else {
		d.gradient.Hide()
	}
}

func (d *colorDialog) drawPreview(w, h int) image.Image {
	if d.sess == nil {
		return image.NewNRGBA(image.Rect(0, 0, w, h))
	}
	return composite(d.sess.Descriptor().Renderable(), nil, w, h)
}

func (d *colorDialog) Activate() {
	d.win.Show()
	d.win.RequestFocus()
}

func (d *colorDialog) Close() { d.win.Close() }
