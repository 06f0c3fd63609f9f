// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package forum

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

const (
	// scanInitialBuffer is the starting line buffer for the shard scanner.
	scanInitialBuffer = 64 * 1024

	// scanMaxLine caps a single record line. Forum bodies are large but a
	// 16 MiB line is corruption, not content.
	scanMaxLine = 16 * 1024 * 1024
)

// StreamStats counts the outcome of a parse stage. All fields are atomics;
// the stats value is shared between parse workers and the progress ticker.
type StreamStats struct {
	// Parsed counts lines that decoded into a Post.
	Parsed atomic.Int64

	// Dropped counts malformed or missing-field lines.
	Dropped atomic.Int64
}

// StreamPosts parses shard files into a stream of posts.
//
// # Description
//
// This is the parse+filter stage of the pipeline. Shard files are
// distributed to a pool of workers; each worker scans its file line by
// line, decodes, and pushes valid posts onto the shared out channel.
// Malformed lines are dropped and counted. Empty lines are skipped
// without counting as drops.
//
// The out channel is always closed before StreamPosts returns, success or
// failure, so the downstream graph consumer always observes end-of-stream.
//
// # Inputs
//
//   - ctx: cancels in-flight workers; a file error cancels siblings too.
//   - files: shard paths from ShardFiles.
//   - workers: parse parallelism; clamped to [1, len(files)].
//   - out: shared post channel; closed on return.
//   - stats: parse/drop counters, may be shared with a progress display.
//
// # Outputs
//
//   - error: first I/O failure, fatal to this topic folder only.
func StreamPosts(ctx context.Context, files []string, workers int, out chan<- Post, stats *StreamStats) error {
	defer close(out)

	if len(files) == 0 {
		return nil
	}
	if workers > len(files) {
		workers = len(files)
	}
	if workers <= 0 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)

	fileCh := make(chan string, workers)
	g.Go(func() error {
		defer close(fileCh)
		for _, f := range files {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case fileCh <- f:
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for path := range fileCh {
				if err := scanShard(ctx, path, out, stats); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}

// scanShard streams one shard file into the post channel.
func scanShard(ctx context.Context, path string, out chan<- Post, stats *StreamStats) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening shard %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, scanInitialBuffer), scanMaxLine)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		post, err := DecodeLine(line)
		if err != nil {
			stats.Dropped.Add(1)
			continue
		}
		stats.Parsed.Add(1)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- post:
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanning shard %s: %w", path, err)
	}
	return nil
}
