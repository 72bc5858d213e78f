package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables overriding config keys, ex:
// CURIAM_LOG_LEVEL for log.level.
const EnvPrefix = "CURIAM"

// DefaultAnnotator owns the annotations when none is configured.
const DefaultAnnotator = "default"

type Config struct {
	// DocPath is the document store, a directory of JSON files or a SQLite
	// database file.
	DocPath string `mapstructure:"doc_path"`

	// Annotator owns the annotations of imported exports.
	Annotator string `mapstructure:"annotator"`

	// LabelColumn is the column of the export holding the labels.
	LabelColumn int `mapstructure:"label_column"`

	Log LogConfig `mapstructure:"log"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text or json

	// File is optional; logs go to stderr when empty.
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
}

// Load reads the config file at path, if any, and overrides it with the
// environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.LabelColumn < 3 {
		return nil, fmt.Errorf("label_column must be at least 3, got %d", cfg.LabelColumn)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("doc_path", "")
	v.SetDefault("annotator", DefaultAnnotator)
	v.SetDefault("label_column", 4)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
}
