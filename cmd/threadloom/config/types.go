// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config holds the tunable knobs of a ThreadLoom run.
//
// Everything here has a working default; a config file is only needed to
// deviate from it. Run-defining inputs (dump root, output dir, source
// label, tokenizer) are CLI flags, not config, so a config file can be
// shared across datasets.
package config

import "runtime"

// Config is the full tunable surface, loaded from YAML over defaults.
type Config struct {
	Workers  WorkersConfig  `yaml:"workers"`
	Output   OutputConfig   `yaml:"output"`
	TextProc TextProcConfig `yaml:"textproc"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WorkersConfig sizes the pipeline's concurrency.
type WorkersConfig struct {
	// Folders bounds the task-parallel folder pool. The low-memory flag
	// forces this to 1 regardless of config.
	Folders int `yaml:"folders"`

	// Parse bounds per-folder parse parallelism.
	Parse int `yaml:"parse"`

	// PostBuffer is the per-folder post channel depth (backpressure
	// bound on parse workers).
	PostBuffer int `yaml:"post_buffer"`
}

// OutputConfig shapes the JSONL output.
type OutputConfig struct {
	// ShardBytes is the per-shard byte budget. 0 disables splitting.
	ShardBytes int64 `yaml:"shard_bytes"`

	// SinkBuffer is the shared writer channel depth.
	SinkBuffer int `yaml:"sink_buffer"`
}

// TextProcConfig tunes the text-processing stage.
type TextProcConfig struct {
	// ParallelThreshold is the thread-batch size that triggers the
	// parallel strategy. 0 keeps text processing sequential.
	ParallelThreshold int `yaml:"parallel_threshold"`

	// Workers is the parallel-strategy pool size.
	Workers int `yaml:"workers"`
}

// LoggingConfig configures pkg/logging.
type LoggingConfig struct {
	// Level is debug, info, warn, or error.
	Level string `yaml:"level"`

	// JSON switches stderr logs to JSON.
	JSON bool `yaml:"json"`

	// Dir enables file logging under this directory (~ expanded).
	Dir string `yaml:"dir"`
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		Workers: WorkersConfig{
			Folders:    runtime.NumCPU(),
			Parse:      runtime.NumCPU(),
			PostBuffer: 4096,
		},
		Output: OutputConfig{
			ShardBytes: 100 * 1024 * 1024,
			SinkBuffer: 1024,
		},
		TextProc: TextProcConfig{
			ParallelThreshold: 5000,
			Workers:           runtime.NumCPU(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
