/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package settings persists patch records to the JSON settings file.
// The file holds an object {"Patches": [...]} with one record per patch in
// creation order; a patch finds its record by slot index.
package settings

import "smokescreen/internal/brush"

// PatchRecord is the persisted appearance and geometry of one patch.
// Brush nil means the default tint; an empty ClipGeometry means unshaped.
type PatchRecord struct {
	Top          float64           `json:"Top"`
	Left         float64           `json:"Left"`
	Width        float64           `json:"Width"`
	Height       float64           `json:"Height"`
	Brush        *brush.Descriptor `json:"Brush"`
	ClipGeometry string            `json:"ClipGeometry,omitempty"`
}

// Settings is the root object of the settings file.
type Settings struct {
	Patches []PatchRecord `json:"Patches"`
}

// BrushOrDefault returns the record's brush or fallback when none is stored.
func (r PatchRecord) BrushOrDefault(fallback brush.Descriptor) brush.Descriptor {
	if r.Brush == nil {
		return fallback
	}
	return *r.Brush
}
