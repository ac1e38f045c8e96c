/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package autorun registers the application to start at user login. Windows
// uses the per-user Run registry key, macOS a LaunchAgent and everything else
// an XDG autostart entry. Every registrar is keyed by AppName and idempotent.
package autorun

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName keys the registration in every backend.
const AppName = "SmokeScreen"

// Registrar is the OS login-item facility.
type Registrar interface {
	// IsRegistered reports whether a registration exists. Errors read as false.
	IsRegistered() bool
	Register() error
	Unregister() error
}

// New returns the registrar for the running OS, launching exe at login.
func New(exe string) (Registrar, error) {
	return newPlatform(exe)
}

// Executable resolves the path of the running binary.
func Executable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return exe, nil
}
