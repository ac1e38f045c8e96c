/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package supervisor

// Command identifies a tray menu action.
type Command string

const (
	CmdSetupMode     Command = "setup-mode"
	CmdEditMode      Command = "edit-mode"
	CmdColorSettings Command = "color-settings"
	CmdNewPatch      Command = "new-patch"
	CmdRunAtStartup  Command = "run-at-startup"
	CmdExit          Command = "exit"
)

// MenuItem is one entry of the tray menu. A zero Command marks a separator.
type MenuItem struct {
	Command   Command
	Label     string
	Checkable bool
	Checked   bool
	Disabled  bool
}

// Separator reports whether the item is a separator line.
func (m MenuItem) Separator() bool { return m.Command == "" }

// Menu returns the tray menu for the current state. Patch commands are
// disabled while there is no routing target.
func (s *Supervisor) Menu() []MenuItem {
	c := s.LastActive()
	noTarget := c == nil
	setup := true
	editing := false
	if c != nil {
		setup = c.Interactive()
		editing = c.Editing()
	}
	return []MenuItem{
		{Command: CmdSetupMode, Label: "Setup Mode", Checkable: true, Checked: setup, Disabled: noTarget},
		{Command: CmdEditMode, Label: "Edit Mode", Checkable: true, Checked: editing, Disabled: noTarget},
		{Command: CmdColorSettings, Label: "Color Settings...", Disabled: noTarget},
		{},
		{Command: CmdNewPatch, Label: "New Patch"},
		{},
		{Command: CmdRunAtStartup, Label: "Run at startup", Checkable: true, Checked: s.RunAtStartup(), Disabled: s.autorun == nil},
		{},
		{Command: CmdExit, Label: "Exit"},
	}
}

// Invoke runs a menu command. Unknown commands are ignored.
func (s *Supervisor) Invoke(cmd Command) {
	switch cmd {
	case CmdSetupMode:
		s.ToggleSetupMode()
	case CmdEditMode:
		s.ToggleEditMode()
	case CmdColorSettings:
		s.ShowColorSettings()
	case CmdNewPatch:
		s.NewPatch()
	case CmdRunAtStartup:
		s.SetRunAtStartup(!s.RunAtStartup())
	case CmdExit:
		s.Exit()
	default:
		s.log.Debug("unknown menu command", "command", string(cmd))
	}
}
