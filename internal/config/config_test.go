package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ModeCLI, cfg.Mode)
	assert.Equal(t, OpRename, cfg.Operation)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, int64(DefaultMaxFileSize), cfg.MaxFileSize)
	assert.NotEmpty(t, cfg.ServerName)
	assert.NotEmpty(t, cfg.Version)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.Source = "/tmp/in"
		cfg.Destination = "/tmp/out"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid cli config",
			mutate: func(*Config) {},
		},
		{
			name: "stdio mode needs no paths",
			mutate: func(c *Config) {
				c.Mode = ModeStdio
				c.Source = ""
				c.Destination = ""
				c.Operation = ""
			},
		},
		{
			name:    "invalid mode",
			mutate:  func(c *Config) { c.Mode = "daemon" },
			wantErr: "invalid mode",
		},
		{
			name:    "invalid operation",
			mutate:  func(c *Config) { c.Operation = "merge" },
			wantErr: "invalid operation",
		},
		{
			name:    "missing source in cli mode",
			mutate:  func(c *Config) { c.Source = "" },
			wantErr: "source path is required",
		},
		{
			name:    "missing destination in cli mode",
			mutate:  func(c *Config) { c.Destination = "" },
			wantErr: "destination path is required",
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: "invalid log level",
		},
		{
			name:    "non-positive max file size",
			mutate:  func(c *Config) { c.MaxFileSize = 0 },
			wantErr: "max file size must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestModeHelpers(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.IsStdioMode())
	assert.False(t, cfg.IsDebug())

	cfg.Mode = ModeStdio
	cfg.LogLevel = "debug"
	assert.True(t, cfg.IsStdioMode())
	assert.True(t, cfg.IsDebug())
}
