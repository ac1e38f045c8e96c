/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"smokescreen/internal/config"
	applog "smokescreen/internal/log"
	"smokescreen/internal/settings"
	"smokescreen/internal/ui"
	"smokescreen/internal/version"
)

// cli carries what every command needs after the persistent pre-run.
type cli struct {
	cfg config.AppConfig
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{cfg: config.Defaults()}
	root := &cobra.Command{
		Use:          "smokescreen",
		Short:        "Translucent overlay patches controlled from the system tray",
		Long:         "SmokeScreen shows translucent, shapeable overlay windows above other applications.\nRun without arguments to start the tray application (build with -tags fyne).",
		Version:      version.String(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd.Name() == "run" || cmd.Name() == "smokescreen")
		},
		RunE: func(cmd *cobra.Command, args []string) error { return c.run() },
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Start the tray application",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, args []string) error { return c.run() },
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), "SmokeScreen", version.String())
			},
		},
		c.settingsCmd(),
		c.autorunCmd(),
		c.configCmd(),
	)
	return root
}

// setup loads the configuration and initializes logging. The UI logs to a
// rotated file in the app directory unless a file is configured.
func (c *cli) setup(gui bool) error {
	cfg, err := config.Load()
	c.cfg = cfg
	opts := applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	}
	if gui && opts.File == "" {
		if dir, derr := config.AppDir(); derr == nil {
			opts.File = filepath.Join(dir, config.LogFileName)
		}
	}
	applog.Init(opts)
	c.log = applog.WithComponent("cli")
	if err != nil {
		c.log.Warn("config unreadable, using defaults", slog.Any("err", err))
	}
	return nil
}

func (c *cli) run() error {
	defer func() { _ = applog.Close() }()
	return ui.Run(c.cfg)
}

func (c *cli) store() (*settings.Store, error) {
	path, err := config.SettingsPath(c.cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve settings path: %w", err)
	}
	return settings.NewStore(path), nil
}
