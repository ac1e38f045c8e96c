/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"smokescreen/internal/brush"
	"smokescreen/internal/settings"
	"smokescreen/internal/vector"
)

// patchSummary is the human readable view of one stored record.
type patchSummary struct {
	Slot   int     `yaml:"slot"`
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Brush  string  `yaml:"brush"`
	Shaped bool    `yaml:"shaped"`
}

func (c *cli) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect the stored patch settings",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the settings file location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := c.store()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s.Path())
				return nil
			},
		},
		c.settingsShowCmd(),
		&cobra.Command{
			Use:   "validate [file]",
			Short: "Check a settings file against the schema, colors and clip geometry",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				path := ""
				if len(args) == 1 {
					path = args[0]
				} else {
					s, err := c.store()
					if err != nil {
						return err
					}
					path = s.Path()
				}
				return validateFile(cmd, path)
			},
		},
	)
	return cmd
}

func (c *cli) settingsShowCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored patches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.store()
			if err != nil {
				return err
			}
			st, err := s.Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				if st.Patches == nil {
					st.Patches = []settings.PatchRecord{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(st)
			}
			doc := struct {
				Path    string         `yaml:"path"`
				Patches []patchSummary `yaml:"patches"`
			}{Path: s.Path(), Patches: summarize(st)}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(doc)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw settings document")
	return cmd
}

func summarize(st settings.Settings) []patchSummary {
	out := make([]patchSummary, 0, len(st.Patches))
	for i, r := range st.Patches {
		out = append(out, patchSummary{
			Slot:   i,
			Left:   r.Left,
			Top:    r.Top,
			Width:  r.Width,
			Height: r.Height,
			Brush:  r.BrushOrDefault(brush.DefaultSolid()).String(),
			Shaped: r.ClipGeometry != "",
		})
	}
	return out
}

// errInvalid makes the command fail after the problems have been printed.
var errInvalid = errors.New("settings file has problems")

func validateFile(cmd *cobra.Command, path string) error {
	out := cmd.OutOrStdout()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(out, "%s: no settings file, defaults apply\n", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	problems, err := settings.Validate(data)
	if err != nil {
		return err
	}
	var st settings.Settings
	if err := json.Unmarshal(data, &st); err == nil {
		problems = append(problems, recordProblems(st)...)
	}
	if len(problems) == 0 {
		fmt.Fprintf(out, "%s: ok\n", path)
		return nil
	}
	for _, p := range problems {
		fmt.Fprintf(out, "%s: %s\n", path, p)
	}
	return errInvalid
}

// recordProblems reports values the loader tolerates but silently replaces:
// unparsable colors and clip geometry.
func recordProblems(st settings.Settings) []string {
	var out []string
	for i, r := range st.Patches {
		if r.Brush != nil {
			var colors []string
			switch r.Brush.Kind {
			case brush.KindLinear:
				colors = []string{r.Brush.Linear.StartColor, r.Brush.Linear.EndColor}
			default:
				colors = []string{r.Brush.Solid.Color}
			}
			for _, col := range colors {
				if _, ok := brush.ParseColor(col); !ok {
					out = append(out, fmt.Sprintf("patch %d: color %q is not a hex ARGB color and renders transparent", i, col))
				}
			}
		}
		if r.ClipGeometry != "" {
			if _, err := vector.ParsePath(r.ClipGeometry); err != nil {
				out = append(out, fmt.Sprintf("patch %d: clip geometry ignored: %v", i, err))
			}
		}
	}
	return out
}
