// pkg/network/cosmos/coins.go
package cosmos

import (
	"fmt"
	"regexp"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	gasPricePattern = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)([a-zA-Z][a-zA-Z0-9/]*)$`)
	amountPattern   = regexp.MustCompile(`^(\d+)([a-zA-Z][a-zA-Z0-9/]*)$`)
)

// ParseGasPrice parses a gas price string like "0.15uusd" into a DecCoin.
func ParseGasPrice(s string) (sdk.DecCoin, error) {
	if s == "" {
		return sdk.DecCoin{}, fmt.Errorf("gas price cannot be empty")
	}

	matches := gasPricePattern.FindStringSubmatch(s)
	if len(matches) != 3 {
		return sdk.DecCoin{}, fmt.Errorf("invalid gas price format: %s (expected format like '0.15uusd')", s)
	}

	amount, err := sdkmath.LegacyNewDecFromStr(matches[1])
	if err != nil {
		return sdk.DecCoin{}, fmt.Errorf("failed to parse gas price amount: %w", err)
	}

	return sdk.NewDecCoinFromDec(matches[2], amount), nil
}

// ParseAmount parses an amount string like "1000000uusd" into a Coin.
func ParseAmount(s string) (sdk.Coin, error) {
	if s == "" {
		return sdk.Coin{}, fmt.Errorf("amount cannot be empty")
	}

	matches := amountPattern.FindStringSubmatch(s)
	if len(matches) != 3 {
		return sdk.Coin{}, fmt.Errorf("invalid amount format: %s (expected format like '1000uusd')", s)
	}

	amount, ok := sdkmath.NewIntFromString(matches[1])
	if !ok {
		return sdk.Coin{}, fmt.Errorf("failed to parse amount: %s", matches[1])
	}

	return sdk.NewCoin(matches[2], amount), nil
}

// NewCoin builds a coin from a denom and a decimal integer string.
func NewCoin(denom, amount string) (sdk.Coin, error) {
	return ParseAmount(amount + denom)
}
