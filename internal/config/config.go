// Package config loads tsh settings from a YAML or TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/reoring/cstpack/codec"
	"github.com/reoring/cstpack/i18n"
)

// Config holds the report settings.
type Config struct {
	WorkingDay time.Duration `mapstructure:"working_day"`
	Lunch      time.Duration `mapstructure:"lunch"`
	Weeks      int           `mapstructure:"weeks"`
	Language   string        `mapstructure:"language"`
	Format     string        `mapstructure:"format"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		WorkingDay: 8 * time.Hour,
		Lunch:      30 * time.Minute,
		Weeks:      4,
		Language:   "en",
		Format:     "text",
	}
}

// Load reads path over the defaults. An empty path or a missing file yields
// the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	raw := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		_, err = toml.Decode(string(data), &raw)
	default:
		return Config{}, fmt.Errorf("config load failed (%s): unsupported extension %q", path, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}

	if err := decode(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func decode(raw map[string]any, out *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       durationHook,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// durationHook reads "7h30m" as well as the sheet notation "7h 30m". Bare
// numbers are rejected; they would otherwise decode as nanoseconds.
func durationHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Duration(0)) {
		return data, nil
	}
	switch from.Kind() {
	case reflect.String:
		s := reflect.ValueOf(data).String()
		if d, err := time.ParseDuration(s); err == nil {
			return d, nil
		}
		return codec.Duration(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return nil, fmt.Errorf("duration %v has no unit, write e.g. \"8h\" or \"30m\"", data)
	}
	return data, nil
}

// Validate checks every field, naming the first invalid one.
func (c Config) Validate() error {
	if c.WorkingDay <= 0 || c.WorkingDay > 24*time.Hour {
		return fmt.Errorf("working_day must be within (0, 24h], got %s", c.WorkingDay)
	}
	if c.Lunch < 0 {
		return fmt.Errorf("lunch must not be negative, got %s", c.Lunch)
	}
	if c.Weeks < 1 {
		return fmt.Errorf("weeks must be at least 1, got %d", c.Weeks)
	}
	if !i18n.Supported(c.Language) {
		return fmt.Errorf("language %q is not supported", c.Language)
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("format must be text or json, got %q", c.Format)
	}
	return nil
}
