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
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load returns the run configuration.
//
// An empty path means "defaults only". Otherwise the file is parsed over
// the defaults, so a partial config file overrides just the keys it
// mentions. A missing or unreadable file is an error: if the user pointed
// at a config, silently ignoring it would be worse than failing.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

// validate rejects values that would wedge the pipeline.
func (c Config) validate() error {
	if c.Workers.Folders < 0 {
		return fmt.Errorf("workers.folders must be >= 0, got %d", c.Workers.Folders)
	}
	if c.Workers.Parse < 0 {
		return fmt.Errorf("workers.parse must be >= 0, got %d", c.Workers.Parse)
	}
	if c.Output.ShardBytes < 0 {
		return fmt.Errorf("output.shard_bytes must be >= 0, got %d", c.Output.ShardBytes)
	}
	if c.TextProc.ParallelThreshold < 0 {
		return fmt.Errorf("textproc.parallel_threshold must be >= 0, got %d", c.TextProc.ParallelThreshold)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
