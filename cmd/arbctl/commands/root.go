// Package commands provides the CLI command implementations for arbctl.
// This file defines the root command and registers all subcommands.
package commands

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	configcmd "github.com/altuslabsxyz/arbctl/cmd/arbctl/commands/config"
	"github.com/altuslabsxyz/arbctl/cmd/arbctl/commands/query"
	"github.com/altuslabsxyz/arbctl/cmd/arbctl/commands/tx"
	"github.com/altuslabsxyz/arbctl/internal/config"
	"github.com/altuslabsxyz/arbctl/internal/output"
	"github.com/altuslabsxyz/arbctl/internal/paths"
	"github.com/altuslabsxyz/arbctl/internal/version"
	"github.com/altuslabsxyz/arbctl/types/ctxconfig"
)

// Command group IDs for organized help output.
const (
	GroupTx     = "tx"
	GroupQuery  = "query"
	GroupConfig = "config"
)

// Option customizes the root command.
type Option func(*rootOptions)

type rootOptions struct {
	out     io.Writer
	errOut  io.Writer
	confirm func(context.Context, string) (bool, error)
}

// WithOutput redirects operator output.
func WithOutput(out, errOut io.Writer) Option {
	return func(o *rootOptions) {
		o.out = out
		o.errOut = errOut
	}
}

// WithConfirm replaces the terminal confirmation prompt.
func WithConfirm(confirm func(context.Context, string) (bool, error)) Option {
	return func(o *rootOptions) { o.confirm = confirm }
}

// NewRootCmd creates the root command with all subcommands registered.
func NewRootCmd(opts ...Option) *cobra.Command {
	ro := &rootOptions{out: os.Stdout, errOut: os.Stderr}
	for _, opt := range opts {
		opt(ro)
	}

	var (
		homeDir    string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "arbctl",
		Short: "Operator tool for the leveraged bLUNA arbitrage contract on Terra",
		Long: `arbctl signs and broadcasts the operator transactions for the leveraged
bLUNA arbitrage contract and the Mars protocol contracts it depends on.

Every transaction is shown in full and must be confirmed before it is
broadcast. The signing key is derived from MNEMONIC, read from the
environment or a .env file.

Examples:
  # Buy MARS with 1 UST on testnet
  arbctl swap --network testnet --offer-amount 1000000

  # Upload and instantiate the contract
  arbctl store-code --network localterra --wasm artifacts/arb.wasm
  arbctl instantiate --network localterra --code-id 42 --init-msg init.json --arb-config

  # Run and settle an arbitrage
  arbctl execute-arb --network testnet --contract-address terra1... --amount 1000000
  arbctl finalize-arb --network testnet --contract-address terra1...`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRunE(cmd, ro, homeDir, configPath)
		},
	}
	cmd.SetOut(ro.out)
	cmd.SetErr(ro.errOut)

	cmd.PersistentFlags().StringVarP(&homeDir, "home", "H", paths.DefaultHomeDir(),
		"Directory holding arbctl.toml and .env")
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to arbctl.toml file")
	config.AddFlags(cmd)

	cmd.AddGroup(&cobra.Group{ID: GroupTx, Title: "Transaction Commands:"})
	cmd.AddGroup(&cobra.Group{ID: GroupQuery, Title: "Query Commands:"})
	cmd.AddGroup(&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"})

	registerCommands(cmd)

	return cmd
}

// persistentPreRunE loads configuration and stores it in the command context.
func persistentPreRunE(cmd *cobra.Command, ro *rootOptions, homeDir, configPath string) error {
	logger := output.NewLoggerWithWriters(ro.out, ro.errOut)

	loader := config.NewConfigLoader(homeDir, configPath, logger)
	fileCfg, configFilePath, err := loader.LoadFileConfig()
	if err != nil {
		return err
	}

	env, err := config.LoadEnv(loader.EnvFiles()...)
	if err != nil {
		return &config.ConfigurationError{Field: "env", Reason: "cannot read .env", Err: err}
	}

	// Priority: default < arbctl.toml < env < flag
	effective, err := config.Resolve(cmd, fileCfg, env)
	if err != nil {
		return err
	}
	effective.ConfigFilePath = configFilePath

	logger.SetNoColor(effective.NoColor.Value)
	logger.SetVerbose(effective.Verbose.Value)
	if configFilePath != "" {
		logger.Debug("Using config file: %s", configFilePath)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ctxconfig.WithConfig(ctx, ctxconfig.New(
		ctxconfig.WithHomeDir(homeDir),
		ctxconfig.WithConfigPath(configPath),
		ctxconfig.WithEffective(effective),
		ctxconfig.WithFileConfig(fileCfg),
		ctxconfig.WithEnv(env),
		ctxconfig.WithLogger(logger),
		ctxconfig.WithConfirm(ro.confirm),
	))
	cmd.SetContext(ctx)

	return nil
}

// registerCommands registers all subcommands with appropriate group assignments.
func registerCommands(rootCmd *cobra.Command) {
	txCmds := []*cobra.Command{
		tx.NewSwapCmd(),
		tx.NewCreateProposalCmd(),
		tx.NewCastVoteCmd(),
		tx.NewEndProposalCmd(),
		tx.NewExecuteArbCmd(),
		tx.NewFinalizeArbCmd(),
		tx.NewStoreCodeCmd(),
		tx.NewInstantiateCmd(),
	}
	for _, c := range txCmds {
		c.GroupID = GroupTx
		rootCmd.AddCommand(c)
	}

	queryCmd := query.NewQueryArbCmd()
	queryCmd.GroupID = GroupQuery
	proposalsCmd := query.NewProposalsCmd()
	proposalsCmd.GroupID = GroupQuery

	configCmd := configcmd.NewConfigCmd()
	configCmd.GroupID = GroupConfig

	rootCmd.AddCommand(queryCmd, proposalsCmd, configCmd, version.NewCmd())
}
