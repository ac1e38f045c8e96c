/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package autorun

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func exercise(t *testing.T, r Registrar) {
	t.Helper()
	if r.IsRegistered() {
		t.Fatalf("fresh registrar should not be registered")
	}
	if err := r.Unregister(); err != nil {
		t.Fatalf("Unregister() without registration: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := r.Register(); err != nil {
			t.Fatalf("Register() #%d: %v", i+1, err)
		}
		if !r.IsRegistered() {
			t.Fatalf("expected registered after Register()")
		}
	}
	if err := r.Unregister(); err != nil {
		t.Fatalf("Unregister(): %v", err)
	}
	if r.IsRegistered() {
		t.Fatalf("expected unregistered after Unregister()")
	}
}

func TestDesktopEntry(t *testing.T) {
	d := &DesktopEntry{Dir: filepath.Join(t.TempDir(), "autostart"), Exe: "/opt/smoke screen/smokescreen"}
	exercise(t, d)

	if err := d.Register(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(d.Dir, "smokescreen.desktop"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `Exec="/opt/smoke screen/smokescreen"`) {
		t.Fatalf("Exec line should quote the path, got:\n%s", data)
	}
}

func TestLaunchAgent(t *testing.T) {
	l := &LaunchAgent{Dir: t.TempDir(), Exe: "/Applications/Smoke & Mirrors.app/smokescreen"}
	exercise(t, l)

	if err := l.Register(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(l.Dir, l.Label()+".plist"))
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, "Smoke &amp; Mirrors.app") {
		t.Fatalf("program path should be escaped, got:\n%s", s)
	}
	if !strings.Contains(s, "<key>RunAtLoad</key>") {
		t.Fatalf("missing RunAtLoad, got:\n%s", s)
	}
}

func TestDesktopQuote(t *testing.T) {
	tests := map[string]string{
		"/usr/bin/smokescreen": "/usr/bin/smokescreen",
		"/a b/c":               `"/a b/c"`,
		`/a$b`:                 `"/a\$b"`,
	}
	for in, want := range tests {
		if got := desktopQuote(in); got != want {
			t.Errorf("desktopQuote(%q) = %q, want %q", in, got, want)
		}
	}
}
