// Package config layers defaults, an optional config file, BSP_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	// EnvPrefix namespaces environment overrides, e.g. BSP_FORMAT=json.
	EnvPrefix = "BSP"
	// FileName is the config file looked up when none is given explicitly.
	FileName = "bank-statement-parser"
)

// Config holds the settings shared by the parse and serve commands.
type Config struct {
	Bank         string        `mapstructure:"bank"`
	Format       string        `mapstructure:"format"`
	Output       string        `mapstructure:"output"`
	Header       bool          `mapstructure:"header"`
	LogLevel     string        `mapstructure:"log_level"`
	Addr         string        `mapstructure:"addr"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// Level returns the configured log level, defaulting to info.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bank", "hsbc")
	v.SetDefault("format", "yaml")
	v.SetDefault("output", "")
	v.SetDefault("header", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("addr", ":8080")
	v.SetDefault("fetch_timeout", 30*time.Second)
}

// Build resolves the configuration. cfgFile may be empty, in which case
// bank-statement-parser.yaml is looked up in the working directory and is
// optional. Flags, if given, are bound by their key names with dashes
// replaced by underscores (log-level -> log_level).
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if !knownKeys[key] {
				return
			}
			if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return nil, bindErr
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var knownKeys = map[string]bool{
	"bank": true, "format": true, "output": true, "header": true,
	"log_level": true, "addr": true, "fetch_timeout": true,
}

func (c *Config) validate() error {
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %s", c.FetchTimeout)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}
