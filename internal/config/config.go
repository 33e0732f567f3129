// Package config layers the server configuration from a YAML file,
// STUDYTRACK_* environment variables, and command-line flags, in that order
// of increasing precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const envPrefix = "STUDYTRACK_"

// Config holds the ambient server settings. Dashboard thresholds are not
// configurable; they are product behavior.
type Config struct {
	Addr      string  `koanf:"addr" validate:"required"`
	DB        string  `koanf:"db" validate:"required"`
	JWTSecret string  `koanf:"jwt_secret" validate:"omitempty,min=16"`
	Journal   Journal `koanf:"journal"`
}

// Journal configures the bulk-import pipeline.
type Journal struct {
	// ReposDir is where git journal sources are cloned.
	ReposDir string `koanf:"repos_dir" validate:"required"`
}

// Defaults returns the configuration used when nothing else is provided.
func Defaults() Config {
	return Config{
		Addr: ":8080",
		DB:   "studytrack.db",
		Journal: Journal{
			ReposDir: "repos",
		},
	}
}

// Load builds the configuration. The flag set may carry a "config" flag
// naming a YAML file; flags themselves win over the file and the
// environment.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path, _ := flags.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// STUDYTRACK_JWT_SECRET -> jwt_secret, STUDYTRACK_JOURNAL__REPOS_DIR ->
	// journal.repos_dir.
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	cfg := Defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
