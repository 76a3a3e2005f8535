package config

import "github.com/spf13/pflag"

var flags struct {
	config    string
	debug     bool
	pretty    bool
	logFile   string
	generator string
	copyright string
}

// RegisterFlags adds the configuration flags to fs. Call it once on the
// root command's persistent flag set.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&flags.config, "config", "", "Path to config file")
	fs.BoolVar(&flags.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&flags.pretty, "pretty", false, "Indent written documents")
	fs.StringVar(&flags.logFile, "log-file", "", "Also write logs to this file")
	fs.StringVar(&flags.generator, "generator", "", "Default asset generator")
	fs.StringVar(&flags.copyright, "copyright", "", "Default asset copyright")
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return flags.config
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if flags.debug {
		cfg.Logging.Level = "debug"
	}
	if flags.pretty {
		cfg.Output.Pretty = true
	}
	if flags.logFile != "" {
		cfg.Logging.LogFile = flags.logFile
	}
	if flags.generator != "" {
		cfg.Asset.Generator = flags.generator
	}
	if flags.copyright != "" {
		cfg.Asset.Copyright = flags.copyright
	}
}
