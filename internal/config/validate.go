package config

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/types/bech32"

	"github.com/altuslabsxyz/arbctl/pkg/network/cosmos"
)

// ValidateFileConfig validates the FileConfig values before they are applied.
// This is called when loading the config file to provide early error messages.
func ValidateFileConfig(cfg *FileConfig) error {
	if cfg == nil {
		return nil
	}

	if cfg.Fees != nil && cfg.Fees.GasPrice != nil {
		if _, err := cosmos.ParseGasPrice(*cfg.Fees.GasPrice); err != nil {
			return &ConfigurationError{Field: "fees.gas_price", Reason: "invalid value in config file", Err: err}
		}
	}

	if cfg.Fees != nil && cfg.Fees.GasAdjustment != nil {
		adj, err := sdkmath.LegacyNewDecFromStr(*cfg.Fees.GasAdjustment)
		if err != nil {
			return &ConfigurationError{Field: "fees.gas_adjustment", Reason: "invalid value in config file", Err: err}
		}
		if !adj.IsPositive() {
			return &ConfigurationError{Field: "fees.gas_adjustment", Reason: "must be positive"}
		}
	}

	for name, net := range cfg.Networks {
		if net.LCDURL != nil && *net.LCDURL == "" {
			return &ConfigurationError{Field: fmt.Sprintf("networks.%s.lcd_url", name), Reason: "cannot be empty"}
		}
		if net.ChainID != nil && *net.ChainID == "" {
			return &ConfigurationError{Field: fmt.Sprintf("networks.%s.chain_id", name), Reason: "cannot be empty"}
		}
		for contract, addr := range net.Contracts {
			hrp, _, err := bech32.DecodeAndConvert(addr)
			if err != nil {
				return &ConfigurationError{
					Field:  fmt.Sprintf("networks.%s.contracts.%s", name, contract),
					Reason: fmt.Sprintf("invalid address %q", addr),
					Err:    err,
				}
			}
			if hrp != cosmos.Bech32Prefix {
				return &ConfigurationError{
					Field:  fmt.Sprintf("networks.%s.contracts.%s", name, contract),
					Reason: fmt.Sprintf("address %q must use the %q prefix", addr, cosmos.Bech32Prefix),
				}
			}
		}
	}

	return nil
}
