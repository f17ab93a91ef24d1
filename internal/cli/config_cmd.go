// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/carter/internal/config"
)

func newConfigCmd(opts *options) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
		Long: `Inspect or create the carter configuration.

  carter config show    Print the effective configuration (key redacted)
  carter config path    Print the config file path
  carter config init    Write a default config file`,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := opts.loadConfig(); err != nil {
				return err
			}
			cfg := config.Global()
			out := cmd.OutOrStdout()
			if path, err := opts.configFile(); err == nil {
				fmt.Fprintln(out, LabelStyle.Render("file"), path)
			}
			fmt.Fprintln(out, LabelStyle.Render("api key"), newClient(cfg).APIKeyMasked())
			fmt.Fprintln(out)
			fmt.Fprint(out, cfg.String())
			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.configFile()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				p, err := config.ConfigPathTOML()
				if err != nil {
					return err
				}
				path = p
			}

			_, err := os.Stat(path)
			if err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			cfg := config.Default()
			switch {
			case opts.configPath == "":
				err = config.Save(cfg)
			case strings.HasSuffix(path, ".json"):
				err = config.SaveJSON(cfg, path)
			default:
				err = config.SaveTOML(cfg, path)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	configCmd.AddCommand(showCmd, pathCmd, initCmd)
	return configCmd
}
