// Package query provides read-only commands. They never sign or broadcast.
package query

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/arbctl/cmd/arbctl/commands/shared"
	"github.com/altuslabsxyz/arbctl/internal/config"
	"github.com/altuslabsxyz/arbctl/pkg/network/wasm"
)

// NewQueryArbCmd creates the query-arb command.
func NewQueryArbCmd() *cobra.Command {
	var contractAddress string

	cmd := &cobra.Command{
		Use:       "query-arb config|status",
		Short:     "Read the arbitrage contract's config or status",
		ValidArgs: []string{"config", "status"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Long: `Query the arbitrage contract. "config" returns its instantiate settings,
"status" returns its outstanding debt and unbonding state.

Examples:
  arbctl query-arb config --network testnet --contract-address terra1...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := wasm.ArbConfigQuery()
			if args[0] == "status" {
				req = wasm.ArbStatusQuery()
			}

			ctx := cmd.Context()
			runner, err := shared.NewRunner(ctx)
			if err != nil {
				return err
			}
			raw, err := runner.Client.QueryContract(ctx, contractAddress, req)
			if err != nil {
				return err
			}

			return printJSON(cmd, raw)
		},
	}

	cmd.Flags().StringVar(&contractAddress, "contract-address", "", "Arbitrage contract address")
	_ = cmd.MarkFlagRequired("contract-address")

	return cmd
}

// NewProposalsCmd creates the proposals command.
func NewProposalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proposals",
		Short: "Show the council's proposal count and the id the next proposal gets",
		Long: `Show the number of council proposals. create-proposal votes for the id
printed here as "next".

Examples:
  arbctl proposals --network testnet`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := shared.NewRunner(ctx)
			if err != nil {
				return err
			}
			council, err := runner.Contract(config.ContractMarsCouncil)
			if err != nil {
				return err
			}
			count, err := wasm.ProposalCount(ctx, runner.Client, council)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "count: %d\nnext:  %d\n", count, count+1)
			return nil
		},
	}

	return cmd
}

func printJSON(cmd *cobra.Command, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	buf.WriteByte('\n')
	_, err := cmd.OutOrStdout().Write(buf.Bytes())
	return err
}
