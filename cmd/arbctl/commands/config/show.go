package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/arbctl/types/ctxconfig"
)

// NewShowCmd creates the config show subcommand.
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current effective configuration",
		Long: `Display the current effective configuration with sources.

Shows all configuration values and where they came from:
  - default: Built-in default value
  - arbctl.toml: Value from config file
  - environment: Value from an ARBCTL_* variable or .env
  - flag: Value from command-line flag

The mnemonic is never printed, only whether it is set.

Examples:
  arbctl config show
  arbctl config show --network testnet`,
		Args: cobra.NoArgs,
		RunE: runShow,
	}

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := ctxconfig.MustFromContext(cmd.Context())
	out := cfg.Logger().Writer()

	cfg.Effective().ToTable(out)

	mnemonic := "not set"
	if _, err := cfg.Env().Mnemonic(); err == nil {
		mnemonic = "set"
	}
	fmt.Fprintf(out, "\nMNEMONIC: %s\n", mnemonic)

	if path := cfg.Effective().ConfigFilePath; path != "" {
		fmt.Fprintf(out, "Config file: %s\n", path)
	} else {
		fmt.Fprintln(out, "No config file loaded")
	}

	return nil
}
