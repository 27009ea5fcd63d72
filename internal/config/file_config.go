package config

// FileConfig represents the raw arbctl.toml file contents.
// All fields are pointers to distinguish "not set" from "set to zero/false".
type FileConfig struct {
	// Global settings
	NoColor *bool `toml:"no_color"`
	Verbose *bool `toml:"verbose"`

	// Network selection
	Network      *string `toml:"network"`
	QueryRetries *uint64 `toml:"query_retries"`

	Fees *FeeConfig `toml:"fees"`

	// Networks overrides built-in profiles or declares new ones, keyed by name.
	Networks map[string]NetworkConfig `toml:"networks"`
}

// FeeConfig is the [fees] table.
type FeeConfig struct {
	GasPrice      *string `toml:"gas_price"`
	GasAdjustment *string `toml:"gas_adjustment"`
	GasLimit      *uint64 `toml:"gas_limit"`
}

// NetworkConfig is a [networks.<name>] table.
type NetworkConfig struct {
	ChainID   *string           `toml:"chain_id"`
	LCDURL    *string           `toml:"lcd_url"`
	Contracts map[string]string `toml:"contracts"`
}

// IsEmpty returns true if no configuration values are set.
func (f *FileConfig) IsEmpty() bool {
	return f.NoColor == nil &&
		f.Verbose == nil &&
		f.Network == nil &&
		f.QueryRetries == nil &&
		f.Fees == nil &&
		len(f.Networks) == 0
}
