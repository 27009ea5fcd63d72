package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/arbctl/internal/config"
	"github.com/altuslabsxyz/arbctl/types/ctxconfig"
)

// NewInitCmd creates the config init subcommand.
func NewInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented arbctl.toml",
		Long: `Write arbctl.toml to the home directory. Every option is listed with its
default, commented out. Values from the current arbctl.toml files are kept.

Examples:
  arbctl config init
  arbctl config init --home ./ops --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctxconfig.MustFromContext(cmd.Context())
			writer := config.NewConfigWriter(cfg.HomeDir())

			if writer.Exists() && !force {
				return &config.ConfigurationError{
					Field:  "config",
					Reason: fmt.Sprintf("%s already exists, use --force to overwrite", writer.Path()),
				}
			}
			if err := writer.Write(cfg.FileConfig()); err != nil {
				return err
			}

			cfg.Logger().Success("Wrote %s", writer.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}
