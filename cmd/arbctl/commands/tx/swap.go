// Package tx provides the transaction commands. Each command builds its
// messages, then hands them to the pipeline for signing, confirmation and
// broadcast.
package tx

import (
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/arbctl/cmd/arbctl/commands/shared"
	"github.com/altuslabsxyz/arbctl/internal/config"
	"github.com/altuslabsxyz/arbctl/pkg/network/cosmos"
	"github.com/altuslabsxyz/arbctl/pkg/network/wasm"
)

// NewSwapCmd creates the swap command.
func NewSwapCmd() *cobra.Command {
	var (
		offerAmount string
		maxSpread   string
	)

	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Buy MARS with UST on the Astroport pair",
		Long: `Offer native uusd to the MARS-UST Astroport pair of the selected network.
The offered coins are attached to the message as funds.

Examples:
  arbctl swap --network testnet --offer-amount 1000000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := shared.NewRunner(ctx)
			if err != nil {
				return err
			}
			pair, err := runner.Contract(config.ContractAstroportPair)
			if err != nil {
				return err
			}

			offer, err := cosmos.NewCoin("uusd", offerAmount)
			if err != nil {
				return err
			}
			p, err := runner.Pipeline(ctx)
			if err != nil {
				return err
			}
			msg, err := wasm.Swap(p.Address(), pair, offer, maxSpread)
			if err != nil {
				return err
			}

			_, err = runner.Run(ctx, p, msg)
			return err
		},
	}

	cmd.Flags().StringVar(&offerAmount, "offer-amount", "", "Amount of uusd to offer")
	cmd.Flags().StringVar(&maxSpread, "max-spread", wasm.DefaultMaxSpread, "Maximum spread accepted by the pair")
	_ = cmd.MarkFlagRequired("offer-amount")

	return cmd
}
