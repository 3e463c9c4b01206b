package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Presentation
	OutputFormat   string `mapstructure:"output_format" yaml:"output_format"`
	DisplayMaxRows int    `mapstructure:"display_max_rows" yaml:"display_max_rows"`
	DisplayMaxCols int    `mapstructure:"display_max_cols" yaml:"display_max_cols"`

	// Upload server
	ListenAddr      string `mapstructure:"listen_addr" yaml:"listen_addr"`
	MaxUploadBytes  int64  `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`
	ReadTimeoutSec  int    `mapstructure:"read_timeout_sec" yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `mapstructure:"write_timeout_sec" yaml:"write_timeout_sec"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns the built-in settings, used when no config can be loaded.
func Default() *Global {
	return &Global{
		OutputFormat:    "markdown",
		DisplayMaxRows:  100,
		DisplayMaxCols:  8,
		ListenAddr:      ":8080",
		MaxUploadBytes:  10 << 20,
		ReadTimeoutSec:  15,
		WriteTimeoutSec: 30,
		LogLevel:        "info",
	}
}

// Dir returns ~/.fraudscan.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".fraudscan"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.fraudscan/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("FRAUDSCAN")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("display_max_rows", d.DisplayMaxRows)
	v.SetDefault("display_max_cols", d.DisplayMaxCols)
	v.SetDefault("listen_addr", d.ListenAddr)
	v.SetDefault("max_upload_bytes", d.MaxUploadBytes)
	v.SetDefault("read_timeout_sec", d.ReadTimeoutSec)
	v.SetDefault("write_timeout_sec", d.WriteTimeoutSec)
	v.SetDefault("log_level", d.LogLevel)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	if err := v.ReadInConfig(); err != nil && cfgFile != "" {
		if _, statErr := os.Stat(cfgFile); statErr == nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
