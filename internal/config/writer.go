package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/altuslabsxyz/arbctl/internal/paths"
)

// ConfigWriter handles writing configuration to homeDir/arbctl.toml.
type ConfigWriter struct {
	homeDir string
}

// NewConfigWriter creates a new ConfigWriter for the given home directory.
func NewConfigWriter(homeDir string) *ConfigWriter {
	return &ConfigWriter{
		homeDir: homeDir,
	}
}

// Path returns the full path to arbctl.toml in homeDir.
func (w *ConfigWriter) Path() string {
	return paths.ConfigPath(w.homeDir)
}

// Exists returns true if arbctl.toml already exists in homeDir.
func (w *ConfigWriter) Exists() bool {
	_, err := os.Stat(w.Path())
	return err == nil
}

// Write saves the FileConfig to homeDir/arbctl.toml.
// Creates homeDir if it doesn't exist. The file may hold RPC endpoints, so it
// is only readable by the owner.
func (w *ConfigWriter) Write(cfg *FileConfig) error {
	if err := os.MkdirAll(w.homeDir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", w.homeDir, err)
	}

	content := w.generateTOMLWithComments(cfg)

	if err := os.WriteFile(w.Path(), []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// generateTOMLWithComments creates TOML content with section comments.
// Unset values are written as commented-out defaults.
func (w *ConfigWriter) generateTOMLWithComments(cfg *FileConfig) string {
	var b strings.Builder

	b.WriteString("# arbctl configuration file\n")
	b.WriteString("# Priority: default < arbctl.toml < environment (ARBCTL_*) < CLI flag\n")
	b.WriteString("#\n")
	fmt.Fprintf(&b, "# Location: %s\n", w.Path())
	b.WriteString("# Override with: --config /path/to/arbctl.toml\n")
	b.WriteString("#\n")
	b.WriteString("# The signing mnemonic is never read from this file. Set MNEMONIC in the\n")
	b.WriteString("# environment or in a .env file.\n\n")

	section(&b, "Global Settings")
	boolLine(&b, "no_color", cfg.NoColor)
	boolLine(&b, "verbose", cfg.Verbose)
	b.WriteString("\n")

	section(&b, "Network Selection")
	if cfg.Network != nil {
		fmt.Fprintf(&b, "network = %q\n", *cfg.Network)
	} else {
		fmt.Fprintf(&b, "# network = \"testnet\"  # %s\n", strings.Join(BuiltinNetworks(), "|"))
	}
	if cfg.QueryRetries != nil {
		fmt.Fprintf(&b, "query_retries = %d\n", *cfg.QueryRetries)
	} else {
		b.WriteString("# query_retries = 0\n")
	}
	b.WriteString("\n")

	section(&b, "Fees")
	b.WriteString("[fees]\n")
	fees := cfg.Fees
	if fees == nil {
		fees = &FeeConfig{}
	}
	if fees.GasPrice != nil {
		fmt.Fprintf(&b, "gas_price = %q\n", *fees.GasPrice)
	} else {
		fmt.Fprintf(&b, "# gas_price = %q\n", DefaultGasPrice)
	}
	if fees.GasAdjustment != nil {
		fmt.Fprintf(&b, "gas_adjustment = %q\n", *fees.GasAdjustment)
	} else {
		fmt.Fprintf(&b, "# gas_adjustment = %q\n", DefaultGasAdjustment)
	}
	if fees.GasLimit != nil {
		fmt.Fprintf(&b, "gas_limit = %d\n", *fees.GasLimit)
	} else {
		b.WriteString("# gas_limit = 0  # 0 estimates gas on every transaction\n")
	}
	b.WriteString("\n")

	section(&b, "Network Overrides")
	if len(cfg.Networks) == 0 {
		b.WriteString("# [networks.testnet]\n")
		b.WriteString("# lcd_url = \"https://bombay-lcd.terra.dev\"\n")
		b.WriteString("#\n")
		b.WriteString("# [networks.testnet.contracts]\n")
		fmt.Fprintf(&b, "# %s = \"terra1...\"\n", ContractMarsRedBank)
		return b.String()
	}

	names := make([]string, 0, len(cfg.Networks))
	for name := range cfg.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		net := cfg.Networks[name]
		fmt.Fprintf(&b, "[networks.%s]\n", name)
		if net.ChainID != nil {
			fmt.Fprintf(&b, "chain_id = %q\n", *net.ChainID)
		}
		if net.LCDURL != nil {
			fmt.Fprintf(&b, "lcd_url = %q\n", *net.LCDURL)
		}
		if len(net.Contracts) > 0 {
			fmt.Fprintf(&b, "\n[networks.%s.contracts]\n", name)
			contracts := make([]string, 0, len(net.Contracts))
			for contract := range net.Contracts {
				contracts = append(contracts, contract)
			}
			sort.Strings(contracts)
			for _, contract := range contracts {
				fmt.Fprintf(&b, "%s = %q\n", contract, net.Contracts[contract])
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func section(b *strings.Builder, title string) {
	b.WriteString("# =============================================================================\n")
	fmt.Fprintf(b, "# %s\n", title)
	b.WriteString("# =============================================================================\n\n")
}

func boolLine(b *strings.Builder, key string, v *bool) {
	if v != nil && *v {
		fmt.Fprintf(b, "%s = true\n", key)
		return
	}
	fmt.Fprintf(b, "# %s = false\n", key)
}
