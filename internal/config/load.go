package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvConfig names a config file when no -config flag is given.
const EnvConfig = "MESHWALK_CONFIG"

// Load loads configuration with priority: defaults < file < flags.
// A nil f loads without overrides.
func Load(f *Flags) (*Config, error) {
	if f == nil {
		f = &Flags{}
	}
	cfg := Default()

	if path := configFile(f.Config); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, err
		}
	}

	f.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configFile resolves the file to load: the explicit path, then
// $MESHWALK_CONFIG, then the first existing standard location.
func configFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env
	}
	return findConfigFile()
}

// findConfigFile returns the first existing file among meshwalk.yaml or
// meshwalk.yml in the working directory and config.yaml in ConfigDir.
func findConfigFile() string {
	for _, path := range []string{
		"meshwalk.yaml",
		"meshwalk.yml",
		filepath.Join(ConfigDir(), "config.yaml"),
	} {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the meshwalk directory under the user's config root
// ($XDG_CONFIG_HOME or ~/.config, ~/Library/Application Support, %AppData%).
func ConfigDir() string {
	root, err := os.UserConfigDir()
	if err != nil {
		root = os.TempDir()
	}
	return filepath.Join(root, "meshwalk")
}

// loadFromFile overlays the YAML file at path onto cfg. Keys that match no
// setting are rejected.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
