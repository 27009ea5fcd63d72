// pkg/network/wasm/arb.go
package wasm

import (
	"encoding/json"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/types/bech32"
)

// ProfitShare is a recipient of part of the arbitrage profit. It encodes as a
// two-element array [account, share].
type ProfitShare struct {
	Account string
	Share   string
}

func (s ProfitShare) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{s.Account, s.Share})
}

func (s *ProfitShare) UnmarshalJSON(bz []byte) error {
	var pair []string
	if err := json.Unmarshal(bz, &pair); err != nil {
		return fmt.Errorf("profit share must be [account, share]: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("profit share must be [account, share], got %d elements", len(pair))
	}
	s.Account, s.Share = pair[0], pair[1]
	return nil
}

// ArbConfig is the arbitrage contract's configuration and instantiate message.
type ArbConfig struct {
	Owner        string        `json:"owner"`
	BlunaToken   string        `json:"bluna_token"`
	BlunaPair    string        `json:"bluna_pair"`
	BlunaHub     string        `json:"bluna_hub"`
	RedBank      string        `json:"red_bank"`
	ProfitShares []ProfitShare `json:"profit_shares"`
}

// Validate mirrors the contract's instantiate checks: every address must be
// valid bech32 and the shares must sum to at most one.
func (c ArbConfig) Validate() error {
	addrs := []struct{ field, addr string }{
		{"owner", c.Owner},
		{"bluna_token", c.BlunaToken},
		{"bluna_pair", c.BlunaPair},
		{"bluna_hub", c.BlunaHub},
		{"red_bank", c.RedBank},
	}
	for _, a := range addrs {
		if _, _, err := bech32.DecodeAndConvert(a.addr); err != nil {
			return fmt.Errorf("invalid %s address %q: %w", a.field, a.addr, err)
		}
	}

	total := sdkmath.LegacyZeroDec()
	for _, share := range c.ProfitShares {
		if _, _, err := bech32.DecodeAndConvert(share.Account); err != nil {
			return fmt.Errorf("invalid profit share account %q: %w", share.Account, err)
		}
		dec, err := sdkmath.LegacyNewDecFromStr(share.Share)
		if err != nil {
			return fmt.Errorf("invalid share %q: %w", share.Share, err)
		}
		if dec.IsNegative() {
			return fmt.Errorf("share %q is negative", share.Share)
		}
		total = total.Add(dec)
	}
	if total.GT(sdkmath.LegacyOneDec()) {
		return fmt.Errorf("total shares %s is greater than one", total)
	}

	return nil
}

// ArbConfigQuery asks the arbitrage contract for its configuration.
func ArbConfigQuery() any {
	return map[string]struct{}{"config": {}}
}

// ArbStatusQuery asks the arbitrage contract for its debt and unbonding status.
func ArbStatusQuery() any {
	return map[string]struct{}{"status": {}}
}
