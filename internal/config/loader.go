package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/altuslabsxyz/arbctl/internal/output"
	"github.com/altuslabsxyz/arbctl/internal/paths"
)

// ConfigLoader is responsible for loading and merging configuration.
type ConfigLoader struct {
	homeDir    string
	workDir    string
	configPath string // Explicit --config path
	logger     *output.Logger
}

// NewConfigLoader creates a new ConfigLoader.
func NewConfigLoader(homeDir, configPath string, logger *output.Logger) *ConfigLoader {
	return &ConfigLoader{
		homeDir:    homeDir,
		workDir:    ".",
		configPath: configPath,
		logger:     logger,
	}
}

// LoadFileConfig loads and parses config files, merging them in priority order.
// Priority: explicit path > ./arbctl.toml > ~/.arbctl/arbctl.toml
// All config files are merged, with higher priority values overwriting lower ones.
// Returns the merged FileConfig and the primary (highest priority) config file path.
func (l *ConfigLoader) LoadFileConfig() (*FileConfig, string, error) {
	var configFiles []string

	// Home directory (lowest priority)
	homePath := paths.ConfigPath(l.homeDir)
	if _, err := os.Stat(homePath); err == nil {
		configFiles = append(configFiles, homePath)
	}

	// Current directory
	localPath := filepath.Join(l.workDir, paths.ConfigFile)
	if _, err := os.Stat(localPath); err == nil && !containsPath(configFiles, localPath) {
		configFiles = append(configFiles, localPath)
	}

	// Explicit path (highest priority)
	if l.configPath != "" {
		if _, err := os.Stat(l.configPath); err != nil {
			return nil, "", &ConfigurationError{Field: "config", Reason: fmt.Sprintf("config file not found: %s", l.configPath)}
		}
		if !containsPath(configFiles, l.configPath) {
			configFiles = append(configFiles, l.configPath)
		}
	}

	if len(configFiles) == 0 {
		return &FileConfig{}, "", nil
	}

	var merged FileConfig
	var primaryFile string
	for _, configFile := range configFiles {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}

		var cfg FileConfig
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, "", &ConfigurationError{Field: "config", Reason: fmt.Sprintf("failed to parse %s", configFile), Err: err}
		}

		mergeFileConfig(&merged, &cfg)
		primaryFile = configFile

		l.warnUnknownKeys(data)

		if l.logger != nil {
			l.logger.Debug("Loaded config file: %s", configFile)
		}
	}

	if err := ValidateFileConfig(&merged); err != nil {
		return nil, "", err
	}

	return &merged, primaryFile, nil
}

// EnvFiles returns the dotenv files to read, lowest priority first.
func (l *ConfigLoader) EnvFiles() []string {
	return []string{paths.EnvPath(l.homeDir), paths.EnvPath(l.workDir)}
}

func containsPath(files []string, path string) bool {
	absPath, _ := filepath.Abs(path)
	for _, f := range files {
		if abs, _ := filepath.Abs(f); abs == absPath {
			return true
		}
	}
	return false
}

// mergeFileConfig merges src into dst. Non-nil values in src overwrite dst.
// Network tables merge per field.
func mergeFileConfig(dst, src *FileConfig) {
	if src.NoColor != nil {
		dst.NoColor = src.NoColor
	}
	if src.Verbose != nil {
		dst.Verbose = src.Verbose
	}
	if src.Network != nil {
		dst.Network = src.Network
	}
	if src.QueryRetries != nil {
		dst.QueryRetries = src.QueryRetries
	}
	if src.Fees != nil {
		if dst.Fees == nil {
			dst.Fees = &FeeConfig{}
		}
		if src.Fees.GasPrice != nil {
			dst.Fees.GasPrice = src.Fees.GasPrice
		}
		if src.Fees.GasAdjustment != nil {
			dst.Fees.GasAdjustment = src.Fees.GasAdjustment
		}
		if src.Fees.GasLimit != nil {
			dst.Fees.GasLimit = src.Fees.GasLimit
		}
	}
	for name, net := range src.Networks {
		if dst.Networks == nil {
			dst.Networks = make(map[string]NetworkConfig)
		}
		cur := dst.Networks[name]
		if net.ChainID != nil {
			cur.ChainID = net.ChainID
		}
		if net.LCDURL != nil {
			cur.LCDURL = net.LCDURL
		}
		for contract, addr := range net.Contracts {
			if cur.Contracts == nil {
				cur.Contracts = make(map[string]string)
			}
			cur.Contracts[contract] = addr
		}
		dst.Networks[name] = cur
	}
}

// warnUnknownKeys checks for unknown keys in the config file and logs warnings.
func (l *ConfigLoader) warnUnknownKeys(data []byte) {
	if l.logger == nil {
		return
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return // Ignore errors here - main parsing will catch them
	}

	knownKeys := map[string]bool{
		"no_color":      true,
		"verbose":       true,
		"network":       true,
		"query_retries": true,
		"fees":          true,
		"networks":      true,
	}

	for key := range raw {
		if !knownKeys[key] {
			l.logger.Warn("Unknown config key: %s", key)
		}
	}
}
