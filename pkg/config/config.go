package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	envPrefix   = "PIXU"
	configName  = "pixu"
	dotEnvFile  = ".env"
	defaultLang = "en"
)

type Config struct {
	OutputPath string   `mapstructure:"output"`
	Format     string   `mapstructure:"format"`
	Locale     string   `mapstructure:"locale"`
	Workers    int      `mapstructure:"workers"`
	LogLevel   string   `mapstructure:"log_level"`
	Banks      []string `mapstructure:"banks"`
}

func (c *Config) GetOutputPath() string {
	return c.OutputPath
}

// New creates a new default configuration
func New(outputPath string) *Config {
	return &Config{
		OutputPath: outputPath,
		Format:     "text",
		Locale:     defaultLang,
		LogLevel:   "info",
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"output":     "output",
	"format":     "format",
	"locale":     "locale",
	"workers":    "workers",
	"log-level":  "log_level",
	"bank-alias": "banks",
}

// Build layers configuration from defaults, an optional .env file, the config
// file, PIXU_* environment variables and finally any flags the user set.
// cfgFile may be empty, in which case pixu.yaml is looked up in the working
// directory and the user config directory.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	def := New("")
	v.SetDefault("output", def.OutputPath)
	v.SetDefault("format", def.Format)
	v.SetDefault("locale", def.Locale)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("banks", []string{})

	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, configName))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	banks := c.Banks[:0]
	for _, b := range c.Banks {
		if b = strings.TrimSpace(b); b != "" {
			banks = append(banks, b)
		}
	}
	c.Banks = banks
	return nil
}

// loadDotEnv exports variables from path without overriding the ones already
// set. A missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
