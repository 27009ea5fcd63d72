// Package config provides configuration management commands for arbctl.
package config

import "github.com/spf13/cobra"

// NewConfigCmd creates the config parent command with all subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage arbctl configuration.

Subcommands:
  init    Write a commented arbctl.toml to the home directory
  show    Display the effective configuration with sources

Examples:
  # Generate a config file
  arbctl config init

  # Show the settings testnet commands would use
  arbctl config show --network testnet`,
	}

	cmd.AddCommand(
		NewInitCmd(),
		NewShowCmd(),
	)

	return cmd
}
