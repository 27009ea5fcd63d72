// Package ctxconfig carries the resolved arbctl configuration through
// context.Context so commands do not depend on package-level state.
//
// Usage:
//
//	cfg := ctxconfig.New(
//	    ctxconfig.WithEffective(effective),
//	    ctxconfig.WithEnv(env),
//	)
//	ctx = ctxconfig.WithConfig(ctx, cfg)
//
//	// In a command
//	profile, err := ctxconfig.MustFromContext(ctx).Effective().RequireProfile()
package ctxconfig

import (
	"context"

	"github.com/altuslabsxyz/arbctl/internal/config"
	"github.com/altuslabsxyz/arbctl/internal/output"
)

// configKey is the unexported key type for storing config in context.
// Using a struct type instead of string prevents collisions with other packages.
type configKey struct{}

// Config holds all configuration values that can be passed through context.
// All fields are private and accessed via methods to ensure immutability.
type Config struct {
	homeDir    string
	configPath string

	effective  *config.EffectiveConfig
	fileConfig *config.FileConfig
	env        *config.Env
	logger     *output.Logger
	confirm    func(context.Context, string) (bool, error)
}

// Option is a functional option for configuring Config.
type Option func(*Config)

// New creates a new Config with the given options.
func New(opts ...Option) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithConfig returns a new context with the given config attached.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the Config from context.
// Returns nil if no config is present.
func FromContext(ctx context.Context) *Config {
	if ctx == nil {
		return nil
	}
	cfg, _ := ctx.Value(configKey{}).(*Config)
	return cfg
}

// MustFromContext retrieves the Config from context.
// Panics if no config is present.
func MustFromContext(ctx context.Context) *Config {
	cfg := FromContext(ctx)
	if cfg == nil {
		panic("ctxconfig: no config in context")
	}
	return cfg
}

// HomeDir returns the arbctl home directory.
func (c *Config) HomeDir() string {
	return c.homeDir
}

// ConfigPath returns the explicit --config path, if any.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// Effective returns the resolved settings. Never nil.
func (c *Config) Effective() *config.EffectiveConfig {
	if c.effective == nil {
		return config.NewEffectiveConfig()
	}
	return c.effective
}

// FileConfig returns the merged arbctl.toml contents. Never nil.
func (c *Config) FileConfig() *config.FileConfig {
	if c.fileConfig == nil {
		return &config.FileConfig{}
	}
	return c.fileConfig
}

// Env returns the environment overrides. May be nil.
func (c *Config) Env() *config.Env {
	return c.env
}

// Logger returns the operator logger. Never nil.
func (c *Config) Logger() *output.Logger {
	if c.logger == nil {
		return output.NewLogger()
	}
	return c.logger
}

// Confirm returns the confirmation gate override, or nil to prompt on the
// terminal.
func (c *Config) Confirm() func(context.Context, string) (bool, error) {
	return c.confirm
}

// WithHomeDir sets the home directory.
func WithHomeDir(dir string) Option {
	return func(c *Config) { c.homeDir = dir }
}

// WithConfigPath sets the config file path.
func WithConfigPath(path string) Option {
	return func(c *Config) { c.configPath = path }
}

// WithEffective sets the resolved settings.
func WithEffective(cfg *config.EffectiveConfig) Option {
	return func(c *Config) { c.effective = cfg }
}

// WithFileConfig stores the original FileConfig for commands that need it.
func WithFileConfig(cfg *config.FileConfig) Option {
	return func(c *Config) { c.fileConfig = cfg }
}

// WithEnv sets the environment overrides.
func WithEnv(env *config.Env) Option {
	return func(c *Config) { c.env = env }
}

// WithLogger sets the operator logger.
func WithLogger(logger *output.Logger) Option {
	return func(c *Config) { c.logger = logger }
}

// WithConfirm replaces the terminal confirmation prompt.
func WithConfirm(confirm func(context.Context, string) (bool, error)) Option {
	return func(c *Config) { c.confirm = confirm }
}
