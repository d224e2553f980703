// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load returns the configuration at path layered over DefaultConfig.
//
// An empty path means no config file: defaults are returned untouched.
// When path names a file that does not exist yet, a default config is
// written there first and created reports true.
func Load(path string) (cfg GradebookConfig, created bool, err error) {
	cfg = DefaultConfig()
	if path == "" {
		return cfg, false, nil
	}

	if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return cfg, false, err
		}
		created = true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, created, fmt.Errorf("failed to read the config file: %w", err)
	}
	// fields missing from the file keep their defaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), created, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	if cfg.DataFile == "" {
		cfg.DataFile = DefaultConfig().DataFile
	}
	return cfg, created, nil
}

func createDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
