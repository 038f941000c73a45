package cli

// ABOUTME: CLI commands for reading and writing repoview config.yaml settings.

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kstenerud/repoview/internal/config"
	"github.com/kstenerud/repoview/internal/pager"
	"github.com/spf13/cobra"
)

var errKeyNotFound = errors.New("key not set")

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Get or set configuration values",
		GroupID: groupAdmin,
	}

	cmd.AddCommand(
		newConfigGetCmd(a),
		newConfigSetCmd(),
	)

	return cmd
}

func newConfigGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Print configuration value(s)",
		Long: `Print configuration values from ~/.repoview/config.yaml.

Without arguments, prints the entire config file.
With a dotted key (e.g., core.pager), prints just that value. Keys not set
in config.yaml are looked up in your global git config.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				data, err := config.ReadRaw()
				if err != nil {
					return err
				}
				if data != nil {
					_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
					return err
				}
				return nil
			}

			value, found := a.cfg.Lookup(args[0])
			if !found {
				return fmt.Errorf("%s: %w", args[0], errKeyNotFound)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value in ~/.repoview/config.yaml.

Uses dotted paths for nested keys (e.g., core.pager, pager.log).
Creates the config file if it doesn't exist.
Preserves comments and formatting.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := validateSetting(args[0], args[1]); err != nil {
				return err
			}
			return config.UpdateFields(map[string]string{
				args[0]: args[1],
			})
		},
	}
}

// validateSetting rejects values repoview would fail to load later.
func validateSetting(key, value string) error {
	switch {
	case key == "":
		return NewUsageError("empty config key")
	case key == config.KeyPagerStrategy:
		if _, err := pager.ParseStrategy(value); err != nil {
			return NewUsageError("%s: %w", key, err)
		}
	case key == config.KeyColorUI:
		if _, ok := parseColorMode(value); !ok {
			return NewUsageError("%s: unknown value %q (valid: auto, always, never)", key, value)
		}
	case strings.HasPrefix(key, config.PagerKeyPrefix):
		if _, ok := config.New(map[string]string{key: value}).GetBool(key); !ok {
			return NewUsageError("%s: %q is not a boolean", key, value)
		}
	}
	return nil
}
