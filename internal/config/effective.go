package config

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	sdkmath "cosmossdk.io/math"

	"github.com/altuslabsxyz/arbctl/pkg/network"
	"github.com/altuslabsxyz/arbctl/pkg/network/cosmos"
)

// Fee defaults.
const (
	DefaultGasPrice      = "0.15uusd"
	DefaultGasAdjustment = "1.4"
)

// EffectiveConfig represents the final merged configuration after applying priority chain.
type EffectiveConfig struct {
	// Global settings
	NoColor BoolValue
	Verbose BoolValue

	// Network selection
	Network      StringValue
	QueryRetries UintValue

	// Fees
	GasPrice      StringValue
	GasAdjustment StringValue
	GasLimit      UintValue

	// Resolved network profile
	Profile Profile

	// Metadata
	ConfigFilePath string // Path to loaded config file (empty if none)
}

// NewEffectiveConfig creates a new EffectiveConfig with default values.
func NewEffectiveConfig() *EffectiveConfig {
	return &EffectiveConfig{
		NoColor:       defaultValue(false),
		Verbose:       defaultValue(false),
		Network:       defaultValue(""),
		QueryRetries:  defaultValue[uint64](0),
		GasPrice:      defaultValue(DefaultGasPrice),
		GasAdjustment: defaultValue(DefaultGasAdjustment),
		GasLimit:      defaultValue[uint64](0),
	}
}

// FeeParams parses the fee settings.
func (c *EffectiveConfig) FeeParams() (network.FeeParams, error) {
	price, err := cosmos.ParseGasPrice(c.GasPrice.Value)
	if err != nil {
		return network.FeeParams{}, &ConfigurationError{Field: "fees.gas_price", Reason: "invalid value", Err: err}
	}

	adjustment, err := sdkmath.LegacyNewDecFromStr(c.GasAdjustment.Value)
	if err != nil {
		return network.FeeParams{}, &ConfigurationError{Field: "fees.gas_adjustment", Reason: "invalid value", Err: err}
	}

	params := network.FeeParams{
		GasPrice:      price,
		GasAdjustment: adjustment,
		GasLimit:      c.GasLimit.Value,
	}
	if err := params.Validate(); err != nil {
		return network.FeeParams{}, &ConfigurationError{Field: "fees", Reason: "invalid value", Err: err}
	}
	return params, nil
}

// RequireProfile returns the resolved network profile.
func (c *EffectiveConfig) RequireProfile() (Profile, error) {
	if c.Profile.Name == "" {
		return Profile{}, &ConfigurationError{
			Field:  "network",
			Reason: fmt.Sprintf("no network selected, use --network (%s)", strings.Join(BuiltinNetworks(), "|")),
		}
	}
	return c.Profile, nil
}

// ToTable writes the configuration as a formatted table.
func (c *EffectiveConfig) ToTable(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
	fmt.Fprintf(tw, "no_color\t%t\t%s\n", c.NoColor.Value, c.NoColor.Source)
	fmt.Fprintf(tw, "verbose\t%t\t%s\n", c.Verbose.Value, c.Verbose.Source)
	fmt.Fprintf(tw, "network\t%s\t%s\n", orUnset(c.Network.Value), c.Network.Source)
	fmt.Fprintf(tw, "query_retries\t%d\t%s\n", c.QueryRetries.Value, c.QueryRetries.Source)
	fmt.Fprintf(tw, "fees.gas_price\t%s\t%s\n", c.GasPrice.Value, c.GasPrice.Source)
	fmt.Fprintf(tw, "fees.gas_adjustment\t%s\t%s\n", c.GasAdjustment.Value, c.GasAdjustment.Source)
	fmt.Fprintf(tw, "fees.gas_limit\t%s\t%s\n", gasLimitString(c.GasLimit.Value), c.GasLimit.Source)
	if c.Profile.Name != "" {
		fmt.Fprintf(tw, "chain_id\t%s\t%s\n", c.Profile.ChainID, c.Network.Source)
		fmt.Fprintf(tw, "lcd_url\t%s\t%s\n", c.Profile.LCDURL, c.Network.Source)
		names := make([]string, 0, len(c.Profile.Contracts))
		for name := range c.Profile.Contracts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(tw, "contracts.%s\t%s\t%s\n", name, c.Profile.Contracts[name], c.Network.Source)
		}
	}
	tw.Flush()
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func gasLimitString(limit uint64) string {
	if limit == 0 {
		return "auto"
	}
	return fmt.Sprintf("%d", limit)
}
