package tx

import (
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/arbctl/cmd/arbctl/commands/shared"
	"github.com/altuslabsxyz/arbctl/internal/config"
	"github.com/altuslabsxyz/arbctl/pkg/network/wasm"
)

// NewExecuteArbCmd creates the execute-arb command.
func NewExecuteArbCmd() *cobra.Command {
	var (
		contractAddress string
		amount          string
		minimumProfit   string
	)

	cmd := &cobra.Command{
		Use:   "execute-arb",
		Short: "Borrow uluna and start an arbitrage",
		Long: `Ask the arbitrage contract to borrow --amount uluna from the red bank, swap
it to bLUNA and start unbonding. The contract rejects the trade if the expected
profit ratio is below --minimum-profit.

Examples:
  arbctl execute-arb --network testnet --contract-address terra1... --amount 1000000
  arbctl execute-arb --network testnet --contract-address terra1... --amount 1000000 --minimum-profit 0.1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := shared.NewRunner(ctx)
			if err != nil {
				return err
			}
			p, err := runner.Pipeline(ctx)
			if err != nil {
				return err
			}
			msg, err := wasm.ExecuteArb(p.Address(), contractAddress, amount, minimumProfit)
			if err != nil {
				return err
			}

			_, err = runner.Run(ctx, p, msg)
			return err
		},
	}

	cmd.Flags().StringVar(&contractAddress, "contract-address", "", "Arbitrage contract address")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount of uluna to borrow")
	cmd.Flags().StringVar(&minimumProfit, "minimum-profit", wasm.DefaultMinimumProfit, "Minimum profit ratio")
	_ = cmd.MarkFlagRequired("contract-address")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

// NewFinalizeArbCmd creates the finalize-arb command.
func NewFinalizeArbCmd() *cobra.Command {
	var (
		contractAddress string
		messageKey      string
	)

	cmd := &cobra.Command{
		Use:   "finalize-arb",
		Short: "Withdraw unbonded uluna, repay the loan and pay out profit",
		Long: `Settle a finished arbitrage once its unbonding period is over.

The message is sent as {"finalize_arb":{}}. Contract builds that declare the
variant as FinializeArb only accept {"finialize_arb":{}}; pass
--message-key finialize_arb for those.

Examples:
  arbctl finalize-arb --network testnet --contract-address terra1...
  arbctl finalize-arb --network testnet --contract-address terra1... --message-key finialize_arb`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := wasm.ParseFinalizeArbKey(messageKey)
			if err != nil {
				return &config.ConfigurationError{Field: "message-key", Reason: "unsupported key", Err: err}
			}

			ctx := cmd.Context()
			runner, err := shared.NewRunner(ctx)
			if err != nil {
				return err
			}
			p, err := runner.Pipeline(ctx)
			if err != nil {
				return err
			}
			msg, err := wasm.FinalizeArbWithKey(p.Address(), contractAddress, key)
			if err != nil {
				return err
			}

			_, err = runner.Run(ctx, p, msg)
			return err
		},
	}

	cmd.Flags().StringVar(&contractAddress, "contract-address", "", "Arbitrage contract address")
	cmd.Flags().StringVar(&messageKey, "message-key", wasm.FinalizeArbKey,
		"Execute message key ("+wasm.FinalizeArbKey+"|"+wasm.FinalizeArbMisspelledKey+")")
	_ = cmd.MarkFlagRequired("contract-address")

	return cmd
}
