package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EmbeddedSource is reported by LoadFlappy when no file was found.
const EmbeddedSource = "embedded"

// candidateNames lists the file names probed in each search directory.
var candidateNames = []string{"flappy.yaml", "flappy.yml", "flappy.toml"}

// LoadFlappy loads and validates the flappy configuration.
// Search order: customPath -> ~/.flappy/configs/flappy.{yaml,yml,toml} ->
// ./configs/flappy.{yaml,yml,toml} -> embedded default.
// Files overlay the defaults, so a file may set only the keys it changes.
// Returns the configuration and the path it was read from.
func LoadFlappy(customPath string) (FlappyConfig, string, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FlappyConfig{}, "", fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data, formatOf(customPath))
		if err != nil {
			return FlappyConfig{}, "", fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return FlappyConfig{}, "", err
		}
		return cfg, customPath, nil
	}

	for _, dir := range searchDirs() {
		for _, name := range candidateNames {
			path := filepath.Join(dir, name)
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			cfg, err := Parse(data, formatOf(path))
			if err != nil {
				return FlappyConfig{}, "", fmt.Errorf("config: failed to parse %s: %w", path, err)
			}
			if err := cfg.Validate(); err != nil {
				return FlappyConfig{}, "", err
			}
			return cfg, path, nil
		}
	}

	cfg, err := Parse(defaultFlappyYAML, FormatYAML)
	if err != nil {
		// Fallback to hardcoded if the embedded file is broken
		return DefaultFlappyConfig(), EmbeddedSource, nil
	}
	return cfg, EmbeddedSource, nil
}

// Format identifies a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// formatOf picks the syntax from a file extension, defaulting to YAML.
func formatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Parse decodes data on top of DefaultFlappyConfig.
func Parse(data []byte, format Format) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return FlappyConfig{}, fmt.Errorf("toml unmarshal: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return FlappyConfig{}, fmt.Errorf("yaml unmarshal: %w", err)
		}
	default:
		return FlappyConfig{}, fmt.Errorf("unsupported format %q", format)
	}
	return cfg, nil
}

// YAML encodes the configuration as YAML.
func (c FlappyConfig) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: yaml marshal: %w", err)
	}
	return data, nil
}

// searchDirs returns the directories probed after an explicit path.
func searchDirs() []string {
	dirs := make([]string, 0, 2)
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".flappy", "configs"))
	}
	return append(dirs, "configs")
}
