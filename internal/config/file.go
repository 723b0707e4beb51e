package config

// This file implements optional TOML config file loading. The file is
// overlaid on top of DefaultConfig before CLI flags apply, so the
// precedence is flags > file > defaults.

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFilePath returns the conventional per-user config file location
// (<user config dir>/framefit/config.toml), or "" when the user config
// directory cannot be determined.
func DefaultFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "framefit", "config.toml")
}

// LoadFile parses the TOML file at path into cfg. Fields absent from the
// file keep their current values. A strict decoder is used so typos in
// key names fail loudly instead of being silently ignored.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("config file %s: unknown keys:\n%s", path, strict.String())
		}
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return nil
}

// LoadFileIfPresent loads path when it exists; a missing file is not an
// error (the default location is optional).
func LoadFileIfPresent(path string, cfg *Config) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return LoadFile(path, cfg)
}
