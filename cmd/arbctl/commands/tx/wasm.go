package tx

import (
	"encoding/json"
	"fmt"
	"os"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/arbctl/cmd/arbctl/commands/shared"
	"github.com/altuslabsxyz/arbctl/internal/config"
	"github.com/altuslabsxyz/arbctl/internal/pipeline"
	"github.com/altuslabsxyz/arbctl/pkg/network/cosmos"
	"github.com/altuslabsxyz/arbctl/pkg/network/wasm"
)

// NewStoreCodeCmd creates the store-code command.
func NewStoreCodeCmd() *cobra.Command {
	var wasmPath string

	cmd := &cobra.Command{
		Use:   "store-code",
		Short: "Upload contract bytecode and print its code id",
		Long: `Upload a compiled contract and print the code id assigned by the chain.

Examples:
  arbctl store-code --network localterra --wasm artifacts/arb.wasm`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := os.ReadFile(wasmPath)
			if err != nil {
				return &config.ConfigurationError{Field: "wasm", Reason: "cannot read bytecode", Err: err}
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
			msg, err := wasm.StoreCode(p.Address(), code)
			if err != nil {
				return err
			}

			result, err := runner.Run(ctx, p, msg)
			if err != nil {
				return err
			}
			codeID, err := pipeline.StoreCodeID(result)
			if err != nil {
				return err
			}
			runner.Logger.Success("Code ID: %d", codeID)
			return nil
		},
	}

	cmd.Flags().StringVar(&wasmPath, "wasm", "", "Path to the compiled contract")
	_ = cmd.MarkFlagRequired("wasm")

	return cmd
}

// NewInstantiateCmd creates the instantiate command.
func NewInstantiateCmd() *cobra.Command {
	var (
		codeID      uint64
		initMsgPath string
		admin       string
		arbConfig   bool
		funds       []string
	)

	cmd := &cobra.Command{
		Use:   "instantiate",
		Short: "Create a contract from stored code and print its address",
		Long: `Instantiate stored code with the JSON message in --init-msg and print the new
contract address. With --arb-config the message is checked against the
arbitrage contract's instantiate rules before anything is signed.

Examples:
  arbctl instantiate --network localterra --code-id 42 --init-msg init.json --arb-config
  arbctl instantiate --network localterra --code-id 42 --init-msg init.json --admin terra1...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			initMsg, err := readInitMsg(initMsgPath, arbConfig)
			if err != nil {
				return err
			}
			coins, err := parseFunds(funds)
			if err != nil {
				return err
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
			msg, err := wasm.Instantiate(p.Address(), admin, codeID, initMsg, coins...)
			if err != nil {
				return err
			}

			result, err := runner.Run(ctx, p, msg)
			if err != nil {
				return err
			}
			address, err := pipeline.InstantiatedAddress(result)
			if err != nil {
				return err
			}
			runner.Logger.Success("Contract address: %s", address)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&codeID, "code-id", 0, "Code id returned by store-code")
	cmd.Flags().StringVar(&initMsgPath, "init-msg", "", "Path to the JSON instantiate message")
	cmd.Flags().StringVar(&admin, "admin", "", "Contract admin allowed to migrate it")
	cmd.Flags().BoolVar(&arbConfig, "arb-config", false, "Validate the message as an arbitrage contract config")
	cmd.Flags().StringSliceVar(&funds, "funds", nil, "Coins sent with the message, e.g. 1000uusd")
	_ = cmd.MarkFlagRequired("code-id")
	_ = cmd.MarkFlagRequired("init-msg")

	return cmd
}

// readInitMsg loads the instantiate message. It is canonicalized when the
// message is built.
func readInitMsg(path string, arbConfig bool) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &config.ConfigurationError{Field: "init-msg", Reason: "cannot read file", Err: err}
	}

	if arbConfig {
		var cfg wasm.ArbConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, &config.ConfigurationError{Field: "init-msg", Reason: "not an arbitrage config", Err: err}
		}
		if err := cfg.Validate(); err != nil {
			return nil, &config.ConfigurationError{Field: "init-msg", Reason: "invalid arbitrage config", Err: err}
		}
		return cfg, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, &config.ConfigurationError{Field: "init-msg", Reason: "not a JSON object", Err: err}
	}
	return json.RawMessage(data), nil
}

func parseFunds(funds []string) ([]sdk.Coin, error) {
	coins := make([]sdk.Coin, 0, len(funds))
	for _, f := range funds {
		coin, err := cosmos.ParseAmount(f)
		if err != nil {
			return nil, fmt.Errorf("invalid funds: %w", err)
		}
		coins = append(coins, coin)
	}
	return coins, nil
}
