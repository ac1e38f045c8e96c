/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package autorun

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LaunchAgent registers through a per-user launchd property list in Dir
// (normally ~/Library/LaunchAgents).
type LaunchAgent struct {
	Dir string
	Exe string
}

// Label is the launchd job label.
func (l *LaunchAgent) Label() string { return "com.smokescreen." + AppName }

func (l *LaunchAgent) path() string { return filepath.Join(l.Dir, l.Label()+".plist") }

func (l *LaunchAgent) IsRegistered() bool {
	_, err := os.Stat(l.path())
	return err == nil
}

func (l *LaunchAgent) Register() error {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return fmt.Errorf("create launch agents dir: %w", err)
	}
	var b bytes.Buffer
	b.WriteString(xml.Header)
	b.WriteString(`<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">` + "\n")
	b.WriteString("<plist version=\"1.0\">\n<dict>\n")
	b.WriteString("\t<key>Label</key>\n\t<string>")
	if err := xml.EscapeText(&b, []byte(l.Label())); err != nil {
		return err
	}
	b.WriteString("</string>\n\t<key>ProgramArguments</key>\n\t<array>\n\t\t<string>")
	if err := xml.EscapeText(&b, []byte(l.Exe)); err != nil {
		return err
	}
	b.WriteString("</string>\n\t</array>\n\t<key>RunAtLoad</key>\n\t<true/>\n</dict>\n</plist>\n")
	if err := os.WriteFile(l.path(), b.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write launch agent: %w", err)
	}
	return nil
}

func (l *LaunchAgent) Unregister() error {
	if err := os.Remove(l.path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove launch agent: %w", err)
	}
	return nil
}
