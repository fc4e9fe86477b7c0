package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	yml "gopkg.in/yaml.v2"
)

// ConfigFileName is the optional YAML file read from the working directory.
var ConfigFileName = "imgbridge.yml"

// envPrefix marks environment variables that override config keys,
// e.g. IMGBRIDGE_RESULTS_DIR sets results_dir.
const envPrefix = "IMGBRIDGE_"

// Config holds the demo driver settings.
type Config struct {
	// ImageDir is scanned for source images by the rotate command.
	ImageDir string `koanf:"image_dir" yaml:"image_dir"`

	// ResultsDir receives the rotated PNGs. It is wiped on every run.
	ResultsDir string `koanf:"results_dir" yaml:"results_dir"`

	// LogLevel enables bridge debug logging when set to "debug".
	LogLevel string `koanf:"log_level" yaml:"log_level"`
}

func defaultConfig() Config {
	return Config{
		ImageDir:   "assets/images",
		ResultsDir: "results",
		LogLevel:   "info",
	}
}

// loadConfig layers defaults, the YAML file at path (if present) and
// IMGBRIDGE_* environment variables, in that order.
func loadConfig(path string) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load environment: %w", err)
	}

	var c Config
	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return c, nil
}

// writeConfig prints c as YAML, in the format loadConfig reads back.
func writeConfig(w io.Writer, c Config) error {
	return yml.NewEncoder(w).Encode(c)
}
