/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	applog "smokescreen/internal/log"
)

// Store reads and writes the settings file. Every Save replaces the whole
// file. Stores do no locking; concurrent writers race and the last one wins.
type Store struct {
	path string
	log  *slog.Logger
}

// NewStore returns a store for the settings file at path.
func NewStore(path string) *Store {
	return &Store{path: path, log: applog.WithComponent("settings").With(slog.String("path", path))}
}

// Path returns the settings file location.
func (s *Store) Path() string { return s.path }

// Load reads the settings file. A missing file is not an error and yields
// empty settings. Schema violations are logged, not returned: decoding is
// lenient and the caller gets whatever could be read. An unparsable file
// yields empty settings together with the error.
func (s *Store) Load() (Settings, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	if problems, verr := Validate(data); verr == nil {
		for _, p := range problems {
			s.log.Warn("settings schema violation", slog.String("problem", p))
		}
	}
	var st Settings
	if err := json.Unmarshal(data, &st); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return st, nil
}

// Save writes st pretty-printed, creating the directory if needed. The file
// is written to a temp file and renamed over the target.
func (s *Store) Save(st Settings) error {
	if st.Patches == nil {
		st.Patches = []PatchRecord{}
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp settings: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp settings: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync temp settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp settings: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

// LoadPatch returns the record stored at slot. Read or parse failures are
// logged and reported as "no record" so a patch can always start.
func (s *Store) LoadPatch(slot int) (PatchRecord, bool) {
	st, err := s.Load()
	if err != nil {
		s.log.Warn("settings unreadable, using defaults", slog.Int("slot", slot), slog.Any("err", err))
		return PatchRecord{}, false
	}
	if slot < 0 || slot >= len(st.Patches) {
		return PatchRecord{}, false
	}
	return st.Patches[slot], true
}

// SavePatch stores rec at slot, keeping the other records. Missing slots
// before it are filled with empty records. An unreadable existing file is
// replaced.
func (s *Store) SavePatch(slot int, rec PatchRecord) error {
	if slot < 0 {
		return fmt.Errorf("invalid patch slot %d", slot)
	}
	st, err := s.Load()
	if err != nil {
		s.log.Warn("replacing unreadable settings", slog.Any("err", err))
		st = Settings{}
	}
	for len(st.Patches) <= slot {
		st.Patches = append(st.Patches, PatchRecord{})
	}
	st.Patches[slot] = rec
	if err := s.Save(st); err != nil {
		return err
	}
	s.log.Debug("patch saved", slog.Int("slot", slot))
	return nil
}
