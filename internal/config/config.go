package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/evgfitil/cargo-query/internal/picker"
	"github.com/evgfitil/cargo-query/internal/tui"
)

const (
	Dir          = "cargo-query"
	File         = "config.yaml"
	DefaultCargo = "cargo"

	BackendFuzzyFinder = "fuzzyfinder"
	BackendTUI         = "tui"
)

// Config represents the application configuration
type Config struct {
	Cargo      string       `mapstructure:"cargo"`
	ActionMenu bool         `mapstructure:"action_menu"`
	Picker     PickerConfig `mapstructure:"picker"`
	Theme      tui.Theme    `mapstructure:"theme"`
}

// PickerConfig contains selection session settings
type PickerConfig struct {
	Backend   string        `mapstructure:"backend"`
	Prompt    string        `mapstructure:"prompt"`
	Height    picker.Height `mapstructure:"height"`
	SelectOne bool          `mapstructure:"select_one"`
}

// configDir returns $XDG_CONFIG_HOME/cargo-query or ~/.config/cargo-query.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, Dir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", Dir), nil
}

// configPath returns the full path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, File), nil
}

// Load reads the config file and environment. A missing file yields defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("cargo", DefaultCargo)
	v.SetDefault("action_menu", false)
	v.SetDefault("picker.backend", BackendFuzzyFinder)
	v.SetDefault("picker.prompt", picker.DefaultPrompt)
	v.SetDefault("picker.height", picker.DefaultHeight().String())
	v.SetDefault("picker.select_one", false)

	// cargo exports CARGO to the subcommands it spawns.
	v.MustBindEnv("cargo", "CARGO")

	path, err := configPath()
	if err != nil {
		return nil, err
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if readErr := v.ReadInConfig(); readErr != nil {
		if !errors.Is(readErr, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var cfg Config
	if unmarshalErr := v.Unmarshal(&cfg, viper.DecodeHook(heightHook())); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, unmarshalErr)
	}

	switch cfg.Picker.Backend {
	case BackendFuzzyFinder, BackendTUI:
	default:
		return nil, fmt.Errorf("picker.backend must be %q or %q, got %q (in %s)", BackendFuzzyFinder, BackendTUI, cfg.Picker.Backend, path)
	}
	if cfg.Cargo == "" {
		cfg.Cargo = DefaultCargo
	}
	cfg.Theme = cfg.Theme.Merge(tui.DefaultTheme())

	return &cfg, nil
}

// heightHook decodes "40%", "12" or "auto" into picker.Height.
func heightHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(picker.Height{}) {
			return data, nil
		}
		switch from.Kind() {
		case reflect.String:
			return picker.ParseHeight(data.(string))
		case reflect.Int, reflect.Int64, reflect.Float64:
			return picker.ParseHeight(fmt.Sprint(data))
		default:
			return data, nil
		}
	}
}

// Path returns the path to the config file
func Path() string {
	path, err := configPath()
	if err != nil {
		return filepath.Join("~", ".config", Dir, File)
	}
	return path
}
