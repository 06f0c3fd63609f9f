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
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/ThreadLoom/cmd/threadloom/config"
	"github.com/AleutianAI/ThreadLoom/cmd/threadloom/internal/pipeline"
	"github.com/AleutianAI/ThreadLoom/cmd/threadloom/internal/textproc"
	"github.com/AleutianAI/ThreadLoom/cmd/threadloom/internal/writer"
	"github.com/AleutianAI/ThreadLoom/pkg/logging"
)

// ErrOutputNotEmpty is the --safe startup refusal.
var ErrOutputNotEmpty = errors.New("output directory is not empty (run without --safe to overwrite)")

// runRun executes the full reconstruction run.
//
// Startup order matters: config, logger, output-dir safety, then the
// collaborators that can fail (tokenizer). Nothing touches the input dump
// until all of those are in place, so every fatal precondition fires
// before any processing or partial output.
func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("shard-bytes") {
		cfg.Output.ShardBytes = shardBytes
	}
	if lowMemory {
		cfg.Workers.Folders = 1
	}

	logger := logging.New(logging.Config{
		Level:   logging.ParseLevel(cfg.Logging.Level),
		LogDir:  cfg.Logging.Dir,
		Service: "threadloom",
		JSON:    cfg.Logging.JSON,
		Quiet:   quiet,
	})
	defer logger.Close()

	if err := prepareOutputDir(outputDir, safeMode); err != nil {
		return err
	}

	counter, err := buildCounter(tokenizerName)
	if err != nil {
		return err
	}
	proc, err := textproc.NewProcessor(textproc.NewNormalizer(), counter, sourceLabel)
	if err != nil {
		return err
	}
	policy := textproc.BatchPolicy{
		ParallelThreshold: cfg.TextProc.ParallelThreshold,
		Workers:           cfg.TextProc.Workers,
	}

	sink := writer.NewSink(outputDir, cfg.Output.ShardBytes, consolidate, cfg.Output.SinkBuffer)
	runner := pipeline.NewRunner(pipeline.Options{
		InputDir:      inputDir,
		FolderWorkers: cfg.Workers.Folders,
		ParseWorkers:  cfg.Workers.Parse,
		PostBuffer:    cfg.Workers.PostBuffer,
	}, logger, sink, proc, policy)

	var ticker *progressTicker
	if !quiet {
		ticker = newProgressTicker(runner.Counters(), sink, os.Stderr, 500*time.Millisecond)
		ticker.Start()
	}

	start := time.Now()
	runErr := runner.Run(cmd.Context())
	if ticker != nil {
		ticker.Stop()
	}
	sinkErr := sink.Close()

	c := runner.Counters()
	logger.Info("run complete",
		"folders_done", c.FoldersDone.Load(),
		"folders_failed", c.FoldersFailed.Load(),
		"lines_parsed", c.Stream.Parsed.Load(),
		"lines_dropped", c.Stream.Dropped.Load(),
		"threads", c.ThreadsEmitted.Load(),
		"bytes_written", sink.BytesWritten(),
		"duration", time.Since(start).Round(time.Millisecond).String(),
	)

	return errors.Join(runErr, sinkErr)
}

// buildCounter picks the length metric: tiktoken when an identifier was
// given, whitespace word count otherwise. Tokenizer failure is fatal here,
// before any processing starts.
func buildCounter(name string) (textproc.Counter, error) {
	if name == "" {
		return textproc.WordCounter{}, nil
	}
	return textproc.NewTiktokenCounter(name)
}

// prepareOutputDir creates or vets the output directory.
//
// Without --safe the directory is created as needed and existing files
// may be overwritten. With --safe an existing non-empty directory is a
// fatal startup error, raised before any input is read.
func prepareOutputDir(dir string, safe bool) error {
	if !safe {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
		return nil
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading output directory %s: %w", dir, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("%s: %w", dir, ErrOutputNotEmpty)
	}
	return nil
}
