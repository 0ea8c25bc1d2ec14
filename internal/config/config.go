package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeCLI   = "cli"
	ModeStdio = "stdio"

	// Operation constants, matching the batch engine modes
	OpSplit    = "split"
	OpRename   = "rename"
	OpOrganize = "organize"

	// Default values
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
)

// Config holds all configuration for the organizer.
type Config struct {
	// Run mode: "cli" executes one batch, "stdio" serves the tool protocol
	Mode string

	// Batch configuration
	Operation   string
	Source      string
	Destination string

	// Optional XLSX results report path (cli mode only)
	ReportPath string

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Mode:        ModeCLI,
		Operation:   OpRename,
		Version:     "1.0.0",
		ServerName:  "organizador-archivos",
		LogLevel:    DefaultLogLevel,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	for _, path := range []*string{&cfg.Source, &cfg.Destination, &cfg.ReportPath} {
		if *path == "" {
			continue
		}
		if expanded, err := filepath.Abs(*path); err == nil {
			*path = expanded
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("ORGANIZADOR")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("op", cfg.Operation)
	viper.SetDefault("source", cfg.Source)
	viper.SetDefault("dest", cfg.Destination)
	viper.SetDefault("report", cfg.ReportPath)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'cli' to execute one batch, 'stdio' to serve MCP tools")
	pflag.String("op", cfg.Operation, "Batch operation: 'split', 'rename' or 'organize'")
	pflag.String("source", cfg.Source, "Source PDF file (split) or folder (rename, organize)")
	pflag.String("dest", cfg.Destination, "Destination folder for processed files")
	pflag.String("report", cfg.ReportPath, "Optional path for an XLSX results report")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("op", pflag.Lookup("op"))
	_ = viper.BindPFlag("source", pflag.Lookup("source"))
	_ = viper.BindPFlag("dest", pflag.Lookup("dest"))
	_ = viper.BindPFlag("report", pflag.Lookup("report"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message.
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOrganizador de Archivos - identity-based PDF splitting, renaming and regrouping\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --op=split --source=nomina.pdf --dest=out/        # one file per page\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --op=rename --source=scans/ --dest=renamed/       # identity-based copies\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --op=organize --source=procesados/ --dest=final/  # group by worker\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=stdio                                      # serve MCP tools\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  ORGANIZADOR_MODE         Run mode\n")
		fmt.Fprintf(os.Stderr, "  ORGANIZADOR_OP           Batch operation\n")
		fmt.Fprintf(os.Stderr, "  ORGANIZADOR_SOURCE       Source path\n")
		fmt.Fprintf(os.Stderr, "  ORGANIZADOR_DEST         Destination path\n")
		fmt.Fprintf(os.Stderr, "  ORGANIZADOR_LOGLEVEL     Log level\n")
	}
}

// populateConfigFromViper copies resolved values back into the config.
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Operation = viper.GetString("op")
	cfg.Source = viper.GetString("source")
	cfg.Destination = viper.GetString("dest")
	cfg.ReportPath = viper.GetString("report")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeCLI, ModeStdio:
	default:
		return fmt.Errorf("invalid mode %q (must be %q or %q)", c.Mode, ModeCLI, ModeStdio)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max file size must be positive, got %d", c.MaxFileSize)
	}

	if c.Mode == ModeCLI {
		switch c.Operation {
		case OpSplit, OpRename, OpOrganize:
		default:
			return fmt.Errorf("invalid operation %q (must be %q, %q or %q)",
				c.Operation, OpSplit, OpRename, OpOrganize)
		}
		if c.Source == "" {
			return fmt.Errorf("source path is required in cli mode")
		}
		if c.Destination == "" {
			return fmt.Errorf("destination path is required in cli mode")
		}
	}
	return nil
}

// IsStdioMode reports whether the organizer serves the MCP tool protocol.
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}

// IsDebug reports whether debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}
