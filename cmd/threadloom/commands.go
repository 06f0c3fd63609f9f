// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is stamped at build time via -ldflags.
var Version = "0.1.0-dev"

// --- Global Command Variables ---
var (
	inputDir      string
	outputDir     string
	tokenizerName string // tiktoken encoding or model name; empty = word count
	sourceLabel   string
	configPath    string
	safeMode      bool
	lowMemory     bool
	consolidate   bool
	shardBytes    int64
	quiet         bool

	rootCmd = &cobra.Command{
		Use:   "threadloom",
		Short: "Reconstruct forum export dumps into threaded training documents",
		Long: `ThreadLoom reads raw forum export dumps (one folder of JSONL shards
per topic), rebuilds the reply forest for each topic, and writes every
reconstructed thread as one JSONL training document with a length
statistic.`,
	}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Process a dump directory into JSONL thread documents",
		RunE:  runRun, // Defined in cmd_run.go
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the threadloom version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(Version)
		},
	}
)

func init() {
	runCmd.Flags().StringVarP(&inputDir, "input", "i", "", "dump root holding one folder per topic (required)")
	runCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for JSONL shards (required)")
	runCmd.Flags().StringVarP(&sourceLabel, "source", "s", "", "forum label stamped on every document (required)")
	runCmd.Flags().StringVarP(&tokenizerName, "tokenizer", "t", "", "tiktoken encoding or model name; omit for word counts")
	runCmd.Flags().StringVar(&configPath, "config", "", "optional YAML config for tuning knobs")
	runCmd.Flags().BoolVar(&safeMode, "safe", false, "refuse to write into a non-empty output directory")
	runCmd.Flags().BoolVar(&lowMemory, "low-memory", false, "process topic folders one at a time")
	runCmd.Flags().BoolVar(&consolidate, "consolidate", false, "write one all.jsonl instead of per-topic shards")
	runCmd.Flags().Int64Var(&shardBytes, "shard-bytes", 0, "per-shard byte budget; overrides config when set")
	runCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the progress ticker")

	_ = runCmd.MarkFlagRequired("input")
	_ = runCmd.MarkFlagRequired("output")
	_ = runCmd.MarkFlagRequired("source")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}
