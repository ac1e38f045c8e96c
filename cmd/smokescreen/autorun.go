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

	"github.com/spf13/cobra"

	"smokescreen/internal/autorun"
)

// newRegistrar is swapped in tests.
var newRegistrar = func() (autorun.Registrar, error) {
	exe, err := autorun.Executable()
	if err != nil {
		return nil, err
	}
	return autorun.New(exe)
}

func (c *cli) autorunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autorun",
		Short: "Manage starting SmokeScreen at login",
	}
	withRegistrar := func(fn func(cmd *cobra.Command, r autorun.Registrar) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			r, err := newRegistrar()
			if err != nil {
				return fmt.Errorf("autorun unavailable: %w", err)
			}
			return fn(cmd, r)
		}
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Report whether SmokeScreen starts at login",
			Args:  cobra.NoArgs,
			RunE: withRegistrar(func(cmd *cobra.Command, r autorun.Registrar) error {
				state := "disabled"
				if r.IsRegistered() {
					state = "enabled"
				}
				fmt.Fprintln(cmd.OutOrStdout(), state)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "enable",
			Short: "Start SmokeScreen at login",
			Args:  cobra.NoArgs,
			RunE: withRegistrar(func(cmd *cobra.Command, r autorun.Registrar) error {
				if err := r.Register(); err != nil {
					return err
				}
				c.log.Info("autorun enabled")
				fmt.Fprintln(cmd.OutOrStdout(), "enabled")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "disable",
			Short: "Stop starting SmokeScreen at login",
			Args:  cobra.NoArgs,
			RunE: withRegistrar(func(cmd *cobra.Command, r autorun.Registrar) error {
				if err := r.Unregister(); err != nil {
					return err
				}
				c.log.Info("autorun disabled")
				fmt.Fprintln(cmd.OutOrStdout(), "disabled")
				return nil
			}),
		},
	)
	return cmd
}
