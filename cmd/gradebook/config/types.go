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
	"github.com/jinterlante1206/gradebook/cmd/gradebook/internal/repository"
	"github.com/jinterlante1206/gradebook/pkg/logging"
)

type GradebookConfig struct {
	// DataFile: the flat text file holding student records
	DataFile string `yaml:"data_file"`

	// Log: diagnostic logging, separate from the interactive console
	Log LogConfig `yaml:"log"`

	// Output: console presentation
	Output OutputConfig `yaml:"output"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug|info|warn|error
	Dir   string `yaml:"dir"`   // e.g. ~/.gradebook/logs, empty disables file logs
	JSON  bool   `yaml:"json"`
	Quiet bool   `yaml:"quiet"` // no stderr logs
}

type OutputConfig struct {
	Plain bool `yaml:"plain"` // never style output
}

// DefaultConfig returns the settings used when no config file is given.
// Console logging is off so the menu is not interleaved with log lines.
func DefaultConfig() GradebookConfig {
	return GradebookConfig{
		DataFile: repository.DefaultPath,
		Log: LogConfig{
			Level: "info",
			Quiet: true,
		},
	}
}

// LoggingConfig converts the log section into a logging.Config.
// An unknown level falls back to info and is reported as an error.
func (c GradebookConfig) LoggingConfig() (logging.Config, error) {
	level, err := logging.ParseLevel(c.Log.Level)
	return logging.Config{
		Level:   level,
		LogDir:  c.Log.Dir,
		Service: "gradebook",
		JSON:    c.Log.JSON,
		Quiet:   c.Log.Quiet,
	}, err
}
