package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ARBCTL"

// Env reads ARBCTL_* overrides and the MNEMONIC credential from the process
// environment and optional dotenv files. Process variables win over files.
type Env struct {
	v *viper.Viper
}

// LoadEnv reads the given dotenv files in increasing priority. Missing files
// are skipped.
func LoadEnv(dotenvPaths ...string) (*Env, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("mnemonic", "MNEMONIC"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("no_color", "NO_COLOR"); err != nil {
		return nil, err
	}

	for _, path := range dotenvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	return &Env{v: v}, nil
}

// Get returns the override for key, e.g. "gas_price" for ARBCTL_GAS_PRICE.
func (e *Env) Get(key string) string {
	if e == nil {
		return ""
	}
	if value := e.v.GetString(key); value != "" {
		return value
	}
	return e.v.GetString(strings.ToLower(EnvPrefix) + "_" + key)
}

// IsSet reports whether key has a non-empty override.
func (e *Env) IsSet(key string) bool {
	return e.Get(key) != ""
}

// Mnemonic returns the signing secret phrase.
func (e *Env) Mnemonic() (string, error) {
	var mnemonic string
	if e != nil {
		mnemonic = strings.TrimSpace(e.v.GetString("mnemonic"))
	}
	if mnemonic == "" {
		return "", &ConfigurationError{Field: "MNEMONIC", Reason: "mnemonic not provided"}
	}
	return mnemonic, nil
}
