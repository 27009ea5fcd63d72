package config

// ConfigSource is the layer a setting was resolved from, lowest first:
// default < arbctl.toml < environment < flag.
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceConfigFile  ConfigSource = "arbctl.toml"
	SourceEnvironment ConfigSource = "environment"
	SourceFlag        ConfigSource = "flag"
)

func (s ConfigSource) String() string {
	return string(s)
}

// Value is a resolved setting together with its source.
type Value[T string | uint64 | bool] struct {
	Value  T
	Source ConfigSource
}

type (
	StringValue = Value[string]
	UintValue   = Value[uint64]
	BoolValue   = Value[bool]
)

// defaultValue wraps a built-in default.
func defaultValue[T string | uint64 | bool](v T) Value[T] {
	return Value[T]{Value: v, Source: SourceDefault}
}
