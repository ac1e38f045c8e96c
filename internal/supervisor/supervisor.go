/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package supervisor coordinates the live patches of the process: it creates
// and restores them, tracks which one was activated last and routes tray
// commands to it.
package supervisor

import (
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"smokescreen/internal/autorun"
	applog "smokescreen/internal/log"
	"smokescreen/internal/patch"
	"smokescreen/internal/settings"
)

// Surface is a patch window created by the Host.
type Surface interface {
	patch.Window
	Ink() patch.InkSurface
	// Attach routes the window's input to c and shows the window.
	Attach(c *patch.Controller)
	// Dispose destroys the window once its controller has closed.
	Dispose()
}

// Host is the UI toolkit side of the supervisor.
type Host interface {
	patch.EditorFactory
	NewPatchWindow(id uuid.UUID) Surface
	Quit()
}

// Store is the settings store as the supervisor needs it.
type Store interface {
	patch.Store
	Load() (settings.Settings, error)
}

// Options configure a Supervisor. Autorun may be nil when the platform has
// no registrar.
type Options struct {
	Host     Host
	Store    Store
	Autorun  autorun.Registrar
	Defaults patch.Defaults
	// OnMenuChanged is called whenever Menu would return something new.
	OnMenuChanged func()
	Logger        *slog.Logger
}

type entry struct {
	c    *patch.Controller
	surf Surface
}

// Supervisor owns the live controllers. Like the controllers it is used from
// the UI thread only.
type Supervisor struct {
	host          Host
	store         Store
	autorun       autorun.Registrar
	defaults      patch.Defaults
	onMenuChanged func()
	log           *slog.Logger

	patches    []entry
	lastActive uuid.UUID
	nextSlot   int
	exiting    bool
}

func New(opts Options) *Supervisor {
	lg := opts.Logger
	if lg == nil {
		lg = applog.WithComponent("supervisor")
	}
	return &Supervisor{
		host:          opts.Host,
		store:         opts.Store,
		autorun:       opts.Autorun,
		defaults:      opts.Defaults,
		onMenuChanged: opts.OnMenuChanged,
		log:           lg,
	}
}

// Restore creates one patch per stored record, or a single default patch
// when nothing usable is stored, and activates the last one opened.
func (s *Supervisor) Restore() {
	st, err := s.store.Load()
	if err != nil {
		s.log.Warn("settings unreadable, starting with a default patch", slog.Any("err", err))
	}
	n := max(len(st.Patches), 1)
	var last *patch.Controller
	for slot := 0; slot < n; slot++ {
		last = s.open(slot)
	}
	// the last window shown holds focus, so it is the first tray target
	s.Activate(last.ID())
	s.log.Info("patches restored", slog.Int("count", n))
}

// NewPatch opens a patch in the next free slot and makes it the target of
// tray commands.
func (s *Supervisor) NewPatch() *patch.Controller {
	c := s.open(s.nextSlot)
	s.Activate(c.ID())
	return c
}

func (s *Supervisor) open(slot int) *patch.Controller {
	id := uuid.New()
	surf := s.host.NewPatchWindow(id)
	c := patch.New(patch.Options{
		ID:          id,
		Slot:        slot,
		Window:      surf,
		Ink:         surf.Ink(),
		Store:       s.store,
		Editors:     s.host,
		Defaults:    s.defaults,
		OnActivated: s.Activate,
		OnChanged:   func(uuid.UUID) { s.menuChanged() },
		OnClosed:    s.closed,
	})
	s.patches = append(s.patches, entry{c: c, surf: surf})
	s.nextSlot = max(s.nextSlot, slot+1)
	surf.Attach(c)
	s.menuChanged()
	return c
}

// Activate makes the patch with id the target of tray commands. Unknown ids
// are ignored.
func (s *Supervisor) Activate(id uuid.UUID) {
	if s.find(id) < 0 || s.lastActive == id {
		return
	}
	s.lastActive = id
	s.menuChanged()
}

func (s *Supervisor) closed(id uuid.UUID) {
	i := s.find(id)
	if i < 0 {
		return
	}
	surf := s.patches[i].surf
	s.patches = slices.Delete(s.patches, i, i+1)
	if s.lastActive == id {
		s.lastActive = uuid.Nil
	}
	surf.Dispose()
	s.menuChanged()
}

func (s *Supervisor) find(id uuid.UUID) int {
	return slices.IndexFunc(s.patches, func(e entry) bool { return e.c.ID() == id })
}

// Patches returns the live controllers in creation order.
func (s *Supervisor) Patches() []*patch.Controller {
	out := make([]*patch.Controller, len(s.patches))
	for i, e := range s.patches {
		out[i] = e.c
	}
	return out
}

// LastActive returns the routing target or nil.
func (s *Supervisor) LastActive() *patch.Controller {
	if i := s.find(s.lastActive); i >= 0 {
		return s.patches[i].c
	}
	return nil
}

// ToggleSetupMode flips the routing target between interactive and
// click-through.
func (s *Supervisor) ToggleSetupMode() {
	if c := s.LastActive(); c != nil {
		c.SetInteractive(!c.Interactive())
	}
}

func (s *Supervisor) ToggleEditMode() {
	if c := s.LastActive(); c != nil {
		c.ToggleEdit()
	}
}

func (s *Supervisor) ShowColorSettings() {
	if c := s.LastActive(); c != nil {
		c.ShowColorEditor()
	}
}

// RunAtStartup reports the autorun registration.
func (s *Supervisor) RunAtStartup() bool {
	return s.autorun != nil && s.autorun.IsRegistered()
}

// SetRunAtStartup registers or unregisters autorun. Failures are logged and
// otherwise ignored.
func (s *Supervisor) SetRunAtStartup(on bool) {
	if s.autorun == nil {
		s.log.Warn("run at startup not available on this platform")
		return
	}
	var err error
	if on {
		err = s.autorun.Register()
	} else {
		err = s.autorun.Unregister()
	}
	if err != nil {
		s.log.Warn("changing run at startup failed", slog.Bool("enable", on), slog.Any("err", err))
	} else {
		s.log.Info("run at startup changed", slog.Bool("enable", on))
	}
	s.menuChanged()
}

// SaveAll writes every live patch without closing it.
func (s *Supervisor) SaveAll() {
	for _, e := range s.patches {
		if err := e.c.Save(); err != nil {
			s.log.Error("saving patch failed", slog.Int("slot", e.c.Slot()), slog.Any("err", err))
		}
	}
}

// Exit closes every live patch, each saving its record, then quits the host.
func (s *Supervisor) Exit() {
	if s.exiting {
		return
	}
	s.exiting = true
	for _, c := range s.Patches() {
		c.Close()
	}
	s.log.Info("exiting")
	s.host.Quit()
}

func (s *Supervisor) menuChanged() {
	if s.onMenuChanged != nil && !s.exiting {
		s.onMenuChanged()
	}
}
