// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package writer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// shardBufferSize is the bufio buffer for shard files.
const shardBufferSize = 1 << 20

// DefaultShardBytes is the default per-shard byte budget (100 MiB).
const DefaultShardBytes = 100 * 1024 * 1024

// ShardWriter appends JSON lines for one topic, splitting output across
// shard files under a byte budget.
//
// # Description
//
// Shards are named {topic}_{N}.jsonl with N monotonic from 0. A new shard
// opens when appending the next line would push the current shard past the
// budget; a single record larger than the whole budget still lands alone
// in its own shard (the budget bounds files, it never drops records).
// Budget <= 0 disables splitting.
//
// # Thread Safety
//
// Not safe for concurrent use. The Sink goroutine is the only caller and
// holds exclusive ownership of the file handle.
type ShardWriter struct {
	dir    string
	topic  string
	budget int64

	index   int
	written int64
	file    *os.File
	buf     *bufio.Writer
}

// NewShardWriter builds a writer for one topic. The first shard file opens
// lazily on the first Append, so an empty topic leaves no output file.
func NewShardWriter(dir, topic string, budget int64) *ShardWriter {
	return &ShardWriter{dir: dir, topic: topic, budget: budget}
}

// Append writes one encoded record (without trailing newline) to the
// current shard, rolling to the next shard first when the byte budget
// would be exceeded.
//
// # Outputs
//
//   - int: bytes written, including the newline.
//   - error: I/O failure; the writer is unusable afterwards.
func (w *ShardWriter) Append(line []byte) (int, error) {
	n := int64(len(line)) + 1

	if w.file == nil {
		if err := w.roll(); err != nil {
			return 0, err
		}
	} else if w.budget > 0 && w.written > 0 && w.written+n > w.budget {
		if err := w.roll(); err != nil {
			return 0, err
		}
	}

	if _, err := w.buf.Write(line); err != nil {
		return 0, fmt.Errorf("writing shard %s: %w", w.currentPath(), err)
	}
	if err := w.buf.WriteByte('\n'); err != nil {
		return 0, fmt.Errorf("writing shard %s: %w", w.currentPath(), err)
	}
	w.written += n
	return int(n), nil
}

// roll flushes and closes the current shard, then opens the next one.
func (w *ShardWriter) roll() error {
	if err := w.closeCurrent(); err != nil {
		return err
	}
	path := filepath.Join(w.dir, fmt.Sprintf("%s_%d.jsonl", w.topic, w.index))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating shard %s: %w", path, err)
	}
	w.file = f
	w.buf = bufio.NewWriterSize(f, shardBufferSize)
	w.index++
	w.written = 0
	return nil
}

// currentPath names the open shard, for error context.
func (w *ShardWriter) currentPath() string {
	return filepath.Join(w.dir, fmt.Sprintf("%s_%d.jsonl", w.topic, w.index-1))
}

// closeCurrent flushes and closes the open shard, if any.
func (w *ShardWriter) closeCurrent() error {
	if w.file == nil {
		return nil
	}
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("flushing shard %s: %w", w.currentPath(), err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("closing shard %s: %w", w.currentPath(), err)
	}
	w.file = nil
	w.buf = nil
	return nil
}

// Close flushes and closes the final shard.
func (w *ShardWriter) Close() error {
	return w.closeCurrent()
}

// ShardCount returns how many shard files have been opened so far.
func (w *ShardWriter) ShardCount() int {
	return w.index
}
