package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source describes where a configuration was loaded from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// localConfigPath is the project-relative config file checked after the user directory.
const localConfigPath = "configs/flappy.yaml"

// LoadFlappy loads and validates the game configuration.
// Search order: customPath -> ~/.flappy/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default.
// Files only need to list the values they change; everything else keeps its default.
func LoadFlappy(customPath string) (FlappyConfig, Source, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FlappyConfig{}, SourceCustom, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return FlappyConfig{}, SourceCustom, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, SourceCustom, nil
	}

	// A missing user or local file falls through to the next candidate; one
	// that exists but does not parse or validate is an error.
	if userCfgPath := UserConfigPath("flappy.yaml"); userCfgPath != "" {
		if cfg, found, err := loadFile(userCfgPath); found {
			return cfg, SourceUser, err
		}
	}

	if cfg, found, err := loadFile(localConfigPath); found {
		return cfg, SourceLocal, err
	}

	cfg, err := Parse(defaultFlappyYAML)
	if err != nil {
		return DefaultFlappyConfig(), SourceBuiltin, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// loadFile reads and parses path. found is false only when the file does not exist.
func loadFile(path string) (cfg FlappyConfig, found bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return FlappyConfig{}, false, nil
	}
	if err != nil {
		return FlappyConfig{}, true, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err = Parse(data)
	if err != nil {
		return FlappyConfig{}, true, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, true, nil
}

// Parse decodes YAML over the built-in defaults and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Parse(data []byte) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return FlappyConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return FlappyConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg FlappyConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// UserConfigPath returns the path to a file in the user config directory,
// or empty if home is unavailable.
func UserConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", "configs", filename)
}
