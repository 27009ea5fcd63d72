package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// Flag names shared by the CLI and the priority chain.
const (
	FlagNetwork       = "network"
	FlagNoColor       = "no-color"
	FlagVerbose       = "verbose"
	FlagGasPrice      = "gas-price"
	FlagGasAdjustment = "gas-adjustment"
	FlagGasLimit      = "gas-limit"
	FlagQueryRetries  = "query-retries"
)

// AddFlags registers the settings flags as persistent flags of cmd.
func AddFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String(FlagNetwork, "", "Network profile ("+strings.Join(BuiltinNetworks(), "|")+" or a [networks] entry)")
	flags.Bool(FlagNoColor, false, "Disable colored output")
	flags.BoolP(FlagVerbose, "v", false, "Enable verbose output")
	flags.String(FlagGasPrice, DefaultGasPrice, "Gas price used to compute the fee")
	flags.String(FlagGasAdjustment, DefaultGasAdjustment, "Multiplier applied to the estimated gas")
	flags.Uint64(FlagGasLimit, 0, "Fixed gas limit (0 estimates gas)")
	flags.Uint64(FlagQueryRetries, 0, "Retries for read-only LCD queries")
}

// ApplyStringConfig applies a config file string value if the flag was not explicitly set
// and the config value is present. Returns the effective value and its source.
func ApplyStringConfig(cmd *cobra.Command, flagName string, currentValue string, configValue *string) (string, ConfigSource) {
	if cmd.Flags().Changed(flagName) {
		return currentValue, SourceFlag
	}
	if configValue != nil {
		return *configValue, SourceConfigFile
	}
	return currentValue, SourceDefault
}

// ApplyUintConfig applies a config file uint value if the flag was not explicitly set
// and the config value is present. Returns the effective value and its source.
func ApplyUintConfig(cmd *cobra.Command, flagName string, currentValue uint64, configValue *uint64) (uint64, ConfigSource) {
	if cmd.Flags().Changed(flagName) {
		return currentValue, SourceFlag
	}
	if configValue != nil {
		return *configValue, SourceConfigFile
	}
	return currentValue, SourceDefault
}

// ApplyBoolConfig applies a config file bool value if the flag was not explicitly set
// and the config value is present. Returns the effective value and its source.
// This is critical for preventing boolean false from overriding config true values.
func ApplyBoolConfig(cmd *cobra.Command, flagName string, currentValue bool, configValue *bool) (bool, ConfigSource) {
	if cmd.Flags().Changed(flagName) {
		return currentValue, SourceFlag
	}
	if configValue != nil {
		return *configValue, SourceConfigFile
	}
	return currentValue, SourceDefault
}

// ApplyEnvString applies an environment variable string value if set and flag was not changed.
// This handles the priority: arbctl.toml < env < flag
func ApplyEnvString(cmd *cobra.Command, flagName string, currentValue string, envValue string, currentSource ConfigSource) (string, ConfigSource) {
	if cmd.Flags().Changed(flagName) {
		return currentValue, SourceFlag
	}
	if envValue != "" {
		return envValue, SourceEnvironment
	}
	return currentValue, currentSource
}

// Resolve runs the priority chain default < arbctl.toml < env < flag for
// every setting and resolves the selected network profile, if any.
func Resolve(cmd *cobra.Command, fileCfg *FileConfig, env *Env) (*EffectiveConfig, error) {
	if fileCfg == nil {
		fileCfg = &FileConfig{}
	}
	cfg := NewEffectiveConfig()
	flags := cmd.Flags()

	noColor, _ := flags.GetBool(FlagNoColor)
	cfg.NoColor.Value, cfg.NoColor.Source = ApplyBoolConfig(cmd, FlagNoColor, noColor, fileCfg.NoColor)
	if env.IsSet("no_color") && !flags.Changed(FlagNoColor) {
		cfg.NoColor = BoolValue{Value: true, Source: SourceEnvironment}
	}

	verbose, _ := flags.GetBool(FlagVerbose)
	cfg.Verbose.Value, cfg.Verbose.Source = ApplyBoolConfig(cmd, FlagVerbose, verbose, fileCfg.Verbose)

	networkName, _ := flags.GetString(FlagNetwork)
	cfg.Network.Value, cfg.Network.Source = ApplyStringConfig(cmd, FlagNetwork, networkName, fileCfg.Network)
	cfg.Network.Value, cfg.Network.Source = ApplyEnvString(cmd, FlagNetwork, cfg.Network.Value, env.Get("network"), cfg.Network.Source)

	var fees FeeConfig
	if fileCfg.Fees != nil {
		fees = *fileCfg.Fees
	}

	gasPrice, _ := flags.GetString(FlagGasPrice)
	cfg.GasPrice.Value, cfg.GasPrice.Source = ApplyStringConfig(cmd, FlagGasPrice, gasPrice, fees.GasPrice)
	cfg.GasPrice.Value, cfg.GasPrice.Source = ApplyEnvString(cmd, FlagGasPrice, cfg.GasPrice.Value, env.Get("gas_price"), cfg.GasPrice.Source)

	gasAdjustment, _ := flags.GetString(FlagGasAdjustment)
	cfg.GasAdjustment.Value, cfg.GasAdjustment.Source = ApplyStringConfig(cmd, FlagGasAdjustment, gasAdjustment, fees.GasAdjustment)
	cfg.GasAdjustment.Value, cfg.GasAdjustment.Source = ApplyEnvString(cmd, FlagGasAdjustment, cfg.GasAdjustment.Value, env.Get("gas_adjustment"), cfg.GasAdjustment.Source)

	gasLimit, _ := flags.GetUint64(FlagGasLimit)
	cfg.GasLimit.Value, cfg.GasLimit.Source = ApplyUintConfig(cmd, FlagGasLimit, gasLimit, fees.GasLimit)
	if err := applyEnvUint(cmd, FlagGasLimit, env.Get("gas_limit"), &cfg.GasLimit); err != nil {
		return nil, err
	}

	retries, _ := flags.GetUint64(FlagQueryRetries)
	cfg.QueryRetries.Value, cfg.QueryRetries.Source = ApplyUintConfig(cmd, FlagQueryRetries, retries, fileCfg.QueryRetries)
	if err := applyEnvUint(cmd, FlagQueryRetries, env.Get("query_retries"), &cfg.QueryRetries); err != nil {
		return nil, err
	}

	if cfg.Network.Value != "" {
		profile, err := ResolveProfile(cfg.Network.Value, fileCfg.Networks)
		if err != nil {
			return nil, err
		}
		cfg.Profile = profile
	}

	return cfg, nil
}

func applyEnvUint(cmd *cobra.Command, flagName, envValue string, value *UintValue) error {
	if cmd.Flags().Changed(flagName) || envValue == "" {
		return nil
	}
	parsed, err := strconv.ParseUint(envValue, 10, 64)
	if err != nil {
		return &ConfigurationError{
			Field:  EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_")),
			Reason: fmt.Sprintf("invalid value %q", envValue),
			Err:    err,
		}
	}
	value.Value, value.Source = parsed, SourceEnvironment
	return nil
}
