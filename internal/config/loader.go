package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

var validID = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Load resolves a scene by id.
// Search order: customPath -> ~/.aabblab/scenes/<id>.yaml -> ./scenes/<id>.yaml
// -> embedded default -> hard-coded default (platformer only).
//
// A custom path must load. Unreadable or invalid files at the other locations
// are skipped.
func Load(id, customPath string) (SceneConfig, error) {
	if customPath != "" {
		return LoadFile(customPath)
	}
	if !validID.MatchString(id) {
		return SceneConfig{}, fmt.Errorf("config: scene %q: %w", id, ErrUnknownScene)
	}

	filename := id + ".yaml"
	for _, p := range []string{userScenePath(filename), filepath.Join("scenes", filename)} {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data, id); err == nil {
			return cfg, nil
		}
	}

	if data := DefaultYAML(id); data != nil {
		cfg, err := Parse(data, id)
		if err == nil {
			return cfg, nil
		}
		if id != "platformer" {
			return SceneConfig{}, err
		}
	}
	if id == "platformer" {
		return DefaultScene(), nil
	}
	return SceneConfig{}, fmt.Errorf("config: scene %q: %w", id, ErrUnknownScene)
}

// LoadFile reads and validates a scene file. A file without an id takes the
// file name as its id.
func LoadFile(path string) (SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SceneConfig{}, fmt.Errorf("config: failed to read scene %s: %w", path, err)
	}

	base := filepath.Base(path)
	cfg, err := Parse(data, base[:len(base)-len(filepath.Ext(base))])
	if err != nil {
		return SceneConfig{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a scene. fallbackID is used when the document
// has no id of its own.
func Parse(data []byte, fallbackID string) (SceneConfig, error) {
	var cfg SceneConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SceneConfig{}, fmt.Errorf("failed to parse scene: %w", err)
	}
	if cfg.ID == "" {
		cfg.ID = fallbackID
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return SceneConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes a scene back to YAML.
func Marshal(cfg SceneConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode scene %q: %w", cfg.ID, err)
	}
	return data, nil
}

// userScenePath returns the path of a user scene file, or empty if the home
// directory is unavailable.
func userScenePath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".aabblab", "scenes", filename)
}
