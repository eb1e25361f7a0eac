// Package config loads cmt settings from defaults, an optional YAML file and
// CMT_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/evcraddock/comment-analyzer/internal/db"
	"github.com/evcraddock/comment-analyzer/internal/scanner"
)

// Config holds every cmt setting.
type Config struct {
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Server struct {
		Port int    `mapstructure:"port"`
		URL  string `mapstructure:"url"`
	} `mapstructure:"server"`
	Logging struct {
		Dev bool `mapstructure:"dev"`
	} `mapstructure:"logging"`
	Scan struct {
		FlushUnterminated bool `mapstructure:"flush_unterminated"`
		CountOpenLines    bool `mapstructure:"count_open_lines"`
	} `mapstructure:"scan"`
	Report struct {
		TopWords int `mapstructure:"top_words"`
	} `mapstructure:"report"`
}

// ScanOptions returns the scanner policies selected by the configuration.
func (c Config) ScanOptions() scanner.Options {
	return scanner.Options{
		FlushUnterminated: c.Scan.FlushUnterminated,
		CountOpenLines:    c.Scan.CountOpenLines,
	}
}

// Dir returns the cmt configuration directory: ~/.config/cmt
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "cmt"), nil
}

// Load reads the configuration. An explicit cfgFile must exist; otherwise
// config.yaml is looked up in Dir and the working directory, and a missing
// file leaves the defaults in place.
func Load(cfgFile string) (Config, error) {
	v := viper.New()

	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}
	dbPath, err := db.DefaultPath()
	if err != nil {
		return Config{}, err
	}
	v.SetDefault("database.path", dbPath)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.url", "")
	v.SetDefault("logging.dev", false)
	v.SetDefault("scan.flush_unterminated", false)
	v.SetDefault("scan.count_open_lines", false)
	v.SetDefault("report.top_words", 20)

	v.SetConfigType("yaml")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(dir)
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CMT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}
