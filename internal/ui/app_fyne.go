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
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/google/uuid"

	"smokescreen/internal/autorun"
	"smokescreen/internal/brush"
	"smokescreen/internal/config"
	"smokescreen/internal/crash"
	applog "smokescreen/internal/log"
	"smokescreen/internal/patch"
	"smokescreen/internal/settings"
	"smokescreen/internal/supervisor"
)

// Run starts the tray application: it restores the stored patches and
// blocks until Exit is chosen from the tray menu or the process is
// interrupted.
func Run(cfg config.AppConfig) error {
	l := applog.WithComponent("ui")
	path, err := config.SettingsPath(cfg)
	if err != nil {
		return fmt.Errorf("resolve settings path: %w", err)
	}

	fyneApp := app.NewWithID("io.smokescreen")
	fyneApp.SetIcon(theme.ColorPaletteIcon())
	h := newHost(fyneApp, l)

	var tray *trayMenu
	sup := supervisor.New(supervisor.Options{
		Host:     h,
		Store:    settings.NewStore(path),
		Autorun:  newRegistrar(l),
		Defaults: defaultsFrom(cfg),
		OnMenuChanged: func() {
			if tray != nil {
				tray.refresh()
			}
		},
	})
	defer crash.Recover(filepath.Dir(path), sup)

	if desk, ok := fyneApp.(desktop.App); ok {
		tray = &trayMenu{desk: desk, sup: sup}
		desk.SetSystemTrayIcon(theme.ColorPaletteIcon())
		tray.refresh()
	} else {
		l.Warn("system tray not available; closing every patch ends the app")
	}

	sup.Restore()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case s := <-sigs:
			l.Info("signal received, exiting", slog.String("signal", s.String()))
			fyne.Do(sup.Exit)
		case <-done:
		}
	}()

	l.Info("starting UI", slog.String("settings", path))
	fyneApp.Run()
	l.Info("UI stopped")
	return nil
}

func newRegistrar(l *slog.Logger) autorun.Registrar {
	exe, err := autorun.Executable()
	if err != nil {
		l.Warn("run at startup unavailable", slog.Any("err", err))
		return nil
	}
	reg, err := autorun.New(exe)
	if err != nil {
		l.Warn("run at startup unavailable", slog.Any("err", err))
		return nil
	}
	return reg
}

// host implements supervisor.Host on top of Fyne.
type host struct {
	app     fyne.App
	log     *slog.Logger
	windows map[uuid.UUID]*patchWindow
}

func newHost(a fyne.App, l *slog.Logger) *host {
	return &host{app: a, log: l, windows: map[uuid.UUID]*patchWindow{}}
}

func (h *host) NewPatchWindow(id uuid.UUID) supervisor.Surface {
	p := newPatchWindow(h.app, id, h.log)
	p.onDispose = func() { delete(h.windows, id) }
	h.windows[id] = p
	return p
}

func (h *host) OpenColorEditor(initial brush.Descriptor, onChange func(brush.Descriptor), onClosed func()) patch.Editor {
	return newColorDialog(h.app, initial, onChange, onClosed)
}

func (h *host) Quit() { h.app.Quit() }

// trayMenu mirrors the supervisor's menu model into the system tray.
type trayMenu struct {
	desk desktop.App
	sup  *supervisor.Supervisor
}

func (t *trayMenu) refresh() {
	t.desk.SetSystemTrayMenu(buildTrayMenu(t.sup.Menu(), t.sup.Invoke))
}

func buildTrayMenu(items []supervisor.MenuItem, invoke func(supervisor.Command)) *fyne.Menu {
	out := make([]*fyne.MenuItem, 0, len(items))
	for _, it := range items {
		if it.Separator() {
			out = append(out, fyne.NewMenuItemSeparator())
			continue
		}
		mi := fyne.NewMenuItem(it.Label, func() { invoke(it.Command) })
		mi.Checked = it.Checked
		mi.Disabled = it.Disabled
		mi.IsQuit = it.Command == supervisor.CmdExit
		out = append(out, mi)
	}
	return fyne.NewMenu(config.AppName, out...)
}
