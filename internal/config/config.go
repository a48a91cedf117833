// Package config loads bget settings from a config file, environment
// variables and defaults, in ascending precedence order below flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Product  string    `mapstructure:"product" yaml:"product"`
	Platform string    `mapstructure:"platform" yaml:"platform"`
	Path     string    `mapstructure:"path" yaml:"path"`
	Host     string    `mapstructure:"host" yaml:"host"`
	Log      LogConfig `mapstructure:"log" yaml:"log"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
}

// Load reads the config file at path, or from the default locations when
// path is empty. A missing default file is not an error; every setting has
// a usable default or is derived by the fetcher.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Every key needs a default registered, or AutomaticEnv values are
	// invisible to Unmarshal.
	v.SetDefault("product", "chromium")
	v.SetDefault("platform", "")
	v.SetDefault("path", "")
	v.SetDefault("host", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)

	v.SetEnvPrefix("BGET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if configDir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(configDir, "bget"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case path != "":
			return nil, fmt.Errorf("read config %s: %w", path, err)
		case errors.As(err, &notFound):
			// Run on defaults.
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
