// Package config handles gltftool configuration loading and management.
package config

// Config holds all gltftool settings.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Asset   AssetConfig   `yaml:"asset"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig holds document formatting settings.
type OutputConfig struct {
	Pretty bool   `yaml:"pretty"` // Indent the written document
	Indent string `yaml:"indent"` // Indentation used when Pretty is set
}

// AssetConfig holds asset metadata applied when a scene file has none.
type AssetConfig struct {
	Generator string `yaml:"generator"`
	Copyright string `yaml:"copyright"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Pretty: false,
			Indent: "  ",
		},
		Asset: AssetConfig{
			Generator: "gltftool",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// IndentString returns the indentation to encode with, or "" for compact output.
func (c *Config) IndentString() string {
	if !c.Output.Pretty {
		return ""
	}
	return c.Output.Indent
}
