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
	"sync"
	"sync/atomic"
)

// ConsolidatedFile is the output name under the consolidated layout.
const ConsolidatedFile = "all.jsonl"

// DefaultSinkBuffer is the default depth of the shared record channel.
const DefaultSinkBuffer = 1024

// Record is one encoded document routed to the sink, tagged with the topic
// it belongs to so the sharded layout can pick the right writer.
type Record struct {
	Topic string
	Line  []byte
}

// Sink is the single background writer task all folder pipelines feed.
//
// # Description
//
// Exactly one goroutine drains the record channel and performs every file
// write, so folder pipelines never contend on output. Once a write fails
// the sink stops writing, keeps draining to unblock in-flight senders,
// and Send reports the failure to every subsequent caller; writer failure
// is fatal to the whole run by contract.
//
// # Thread Safety
//
// Send is safe for concurrent use from any number of folder tasks. Close
// must be called exactly once, after all senders are done.
type Sink struct {
	ch   chan Record
	done chan struct{}

	dir         string
	budget      int64
	consolidate bool

	bytes  atomic.Int64
	failed atomic.Bool

	mu  sync.Mutex
	err error
}

// NewSink starts the writer task.
//
// # Inputs
//
//   - dir: output directory (must already exist).
//   - budget: per-shard byte budget for the sharded layout; <= 0 disables
//     splitting.
//   - consolidate: write one all.jsonl instead of per-topic shards.
//   - buffer: record channel depth; <= 0 uses DefaultSinkBuffer.
func NewSink(dir string, budget int64, consolidate bool, buffer int) *Sink {
	if buffer <= 0 {
		buffer = DefaultSinkBuffer
	}
	s := &Sink{
		ch:          make(chan Record, buffer),
		done:        make(chan struct{}),
		dir:         dir,
		budget:      budget,
		consolidate: consolidate,
	}
	go s.run()
	return s
}

// Send routes one record to the writer task, blocking when the channel is
// full (backpressure). It fails fast once the sink has failed.
func (s *Sink) Send(rec Record) error {
	if s.failed.Load() {
		return s.Err()
	}
	select {
	case s.ch <- rec:
		return nil
	case <-s.done:
		if err := s.Err(); err != nil {
			return err
		}
		return fmt.Errorf("sink is closed")
	}
}

// Close signals end-of-stream, waits for the writer task to flush, and
// returns the first write error, if any.
func (s *Sink) Close() error {
	close(s.ch)
	<-s.done
	return s.Err()
}

// BytesWritten returns the total bytes written so far, newlines included.
func (s *Sink) BytesWritten() int64 {
	return s.bytes.Load()
}

// QueueDepth returns the number of records waiting in the channel.
// Progress display only; the value is stale the moment it is read.
func (s *Sink) QueueDepth() int {
	return len(s.ch)
}

// Err returns the sink's failure, if any.
func (s *Sink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// setErr records the first failure and flips the fast-fail flag.
func (s *Sink) setErr(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
	s.failed.Store(true)
}

// run is the writer task body.
func (s *Sink) run() {
	defer close(s.done)

	if s.consolidate {
		s.runConsolidated()
		return
	}
	s.runSharded()
}

// runSharded drains records into per-topic shard writers.
func (s *Sink) runSharded() {
	writers := make(map[string]*ShardWriter)

	for rec := range s.ch {
		if s.failed.Load() {
			continue // drain without writing
		}
		w, ok := writers[rec.Topic]
		if !ok {
			w = NewShardWriter(s.dir, rec.Topic, s.budget)
			writers[rec.Topic] = w
		}
		n, err := w.Append(rec.Line)
		if err != nil {
			s.setErr(err)
			continue
		}
		s.bytes.Add(int64(n))
	}

	for _, w := range writers {
		if err := w.Close(); err != nil {
			s.setErr(err)
		}
	}
}

// runConsolidated drains every topic's records into one all.jsonl.
func (s *Sink) runConsolidated() {
	path := filepath.Join(s.dir, ConsolidatedFile)
	f, err := os.Create(path)
	if err != nil {
		s.setErr(fmt.Errorf("creating %s: %w", path, err))
		for range s.ch {
			// drain so senders don't block
		}
		return
	}
	buf := bufio.NewWriterSize(f, shardBufferSize)

	for rec := range s.ch {
		if s.failed.Load() {
			continue
		}
		if _, err := buf.Write(rec.Line); err != nil {
			s.setErr(fmt.Errorf("writing %s: %w", path, err))
			continue
		}
		if err := buf.WriteByte('\n'); err != nil {
			s.setErr(fmt.Errorf("writing %s: %w", path, err))
			continue
		}
		s.bytes.Add(int64(len(rec.Line)) + 1)
	}

	if err := buf.Flush(); err != nil {
		s.setErr(fmt.Errorf("flushing %s: %w", path, err))
	}
	if err := f.Close(); err != nil {
		s.setErr(fmt.Errorf("closing %s: %w", path, err))
	}
}
