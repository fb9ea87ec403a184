// Package config loads markergen settings from an optional config file and
// MARKERGEN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/reoring/profmarker/internal/extract"
	"github.com/reoring/profmarker/internal/gen"
)

// FileName is the config file base name looked up in the package directory.
const FileName = "markergen"

// EnvPrefix prefixes environment overrides, e.g. MARKERGEN_OUTPUT.
const EnvPrefix = "MARKERGEN"

// Config holds the generator settings.
type Config struct {
	RuntimeImport string   `json:"runtimeImport" mapstructure:"runtimeImport"`
	Output        string   `json:"output" mapstructure:"output"`
	ChartLabel    string   `json:"chartLabel" mapstructure:"chartLabel"`
	LogLevel      string   `json:"logLevel" mapstructure:"logLevel"`
	Lang          string   `json:"lang" mapstructure:"lang"`
	Types         []string `json:"types" mapstructure:"types"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		RuntimeImport: gen.DefaultRuntimeImport,
		Output:        "zz_generated_markers.go",
		ChartLabel:    extract.DefaultChartLabel,
		LogLevel:      "info",
		Lang:          "en",
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("runtimeImport", d.RuntimeImport)
	v.SetDefault("output", d.Output)
	v.SetDefault("chartLabel", d.ChartLabel)
	v.SetDefault("logLevel", d.LogLevel)
	v.SetDefault("lang", d.Lang)
	v.SetDefault("types", []string{})
}

// Load reads settings for the package in dir. When file is empty a
// markergen.{yaml,json,toml} in dir is used if present; an explicit file must
// exist. Environment variables override file values.
func Load(dir, file string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings the generator cannot work with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.RuntimeImport) == "" {
		return errors.New("config: runtimeImport must not be empty")
	}
	if strings.TrimSpace(c.Output) == "" {
		return errors.New("config: output must not be empty")
	}
	return nil
}
