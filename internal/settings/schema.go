/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package settings

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// schemaJSON describes the settings file. It is deliberately permissive about
// values (colors and geometry are checked when used) and strict about shape.
const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "SmokeScreen settings",
  "type": "object",
  "properties": {
    "Patches": {
      "type": ["array", "null"],
      "items": { "$ref": "#/definitions/patch" }
    }
  },
  "definitions": {
    "point": {
      "type": "object",
      "properties": { "X": { "type": "number" }, "Y": { "type": "number" } },
      "required": ["X", "Y"]
    },
    "brush": {
      "type": "object",
      "required": ["$type"],
      "properties": {
        "$type": { "enum": ["Solid", "Linear"] },
        "Color": { "type": "string" },
        "StartColor": { "type": "string" },
        "EndColor": { "type": "string" },
        "StartPoint": { "$ref": "#/definitions/point" },
        "EndPoint": { "$ref": "#/definitions/point" }
      }
    },
    "patch": {
      "type": "object",
      "required": ["Top", "Left", "Width", "Height"],
      "properties": {
        "Top": { "type": "number" },
        "Left": { "type": "number" },
        "Width": { "type": "number", "minimum": 0 },
        "Height": { "type": "number", "minimum": 0 },
        "Brush": { "oneOf": [{ "type": "null" }, { "$ref": "#/definitions/brush" }] },
        "ClipGeometry": { "type": ["string", "null"] }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(schemaJSON)

// Validate checks a settings document against the schema and returns one
// message per violation. A non-nil error means the document could not be
// checked at all (for example it is not JSON).
func Validate(data []byte) ([]string, error) {
	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}
	if res.Valid() {
		return nil, nil
	}
	out := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		out = append(out, e.String())
	}
	return out, nil
}
