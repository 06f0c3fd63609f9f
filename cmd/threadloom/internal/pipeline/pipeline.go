// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/ThreadLoom/cmd/threadloom/internal/forum"
	"github.com/AleutianAI/ThreadLoom/cmd/threadloom/internal/graph"
	"github.com/AleutianAI/ThreadLoom/cmd/threadloom/internal/textproc"
	"github.com/AleutianAI/ThreadLoom/cmd/threadloom/internal/writer"
	"github.com/AleutianAI/ThreadLoom/pkg/logging"
)

// DefaultPostBuffer is the default capacity of a folder's post channel.
// Bounded so parse workers feel backpressure instead of growing a queue.
const DefaultPostBuffer = 4096

// Options configures a Runner.
type Options struct {
	// InputDir is the dump root holding topic folders.
	InputDir string

	// FolderWorkers bounds the task-parallel folder pool.
	// <= 0 means NumCPU; low-memory mode passes 1.
	FolderWorkers int

	// ParseWorkers bounds per-folder parse parallelism. <= 0 means NumCPU.
	ParseWorkers int

	// PostBuffer is the per-folder post channel depth.
	// <= 0 means DefaultPostBuffer.
	PostBuffer int
}

// normalized fills zero values with defaults.
func (o Options) normalized() Options {
	if o.FolderWorkers <= 0 {
		o.FolderWorkers = runtime.NumCPU()
	}
	if o.ParseWorkers <= 0 {
		o.ParseWorkers = runtime.NumCPU()
	}
	if o.PostBuffer <= 0 {
		o.PostBuffer = DefaultPostBuffer
	}
	return o
}

// Runner executes the full reconstruction run.
//
// # Thread Safety
//
// Run is single-shot: build a Runner, call Run once, read Counters
// during/after. The shared collaborators it holds (Processor, Sink) are
// concurrency-safe by their own contracts.
type Runner struct {
	opts     Options
	log      *logging.Logger
	sink     *writer.Sink
	proc     *textproc.Processor
	policy   textproc.BatchPolicy
	counters Counters
}

// NewRunner wires the pipeline collaborators.
func NewRunner(
	opts Options,
	log *logging.Logger,
	sink *writer.Sink,
	proc *textproc.Processor,
	policy textproc.BatchPolicy,
) *Runner {
	return &Runner{
		opts:   opts.normalized(),
		log:    log,
		sink:   sink,
		proc:   proc,
		policy: policy,
	}
}

// Counters exposes the run's progress counters for the ticker and the
// final summary.
func (r *Runner) Counters() *Counters {
	return &r.counters
}

// Run processes every topic folder under the input directory.
//
// # Description
//
// Folders are enumerated once, reordered largest-first, and handed to a
// bounded task pool. Each folder runs the full six-stage pipeline
// independently; a failed folder is logged and counted without stopping
// the others. Run returns an error when any folder failed, after all
// folders finish. The caller owns the Sink and closes it after Run.
func (r *Runner) Run(ctx context.Context) error {
	folders, err := forum.TopicFolders(r.opts.InputDir)
	if err != nil {
		return err
	}
	if len(folders) == 0 {
		return fmt.Errorf("no topic folders under %s", r.opts.InputDir)
	}
	forum.OrderBySize(folders)
	r.counters.FoldersTotal.Store(int64(len(folders)))

	r.log.Info("starting run",
		"folders", len(folders),
		"folder_workers", r.opts.FolderWorkers,
		"parse_workers", r.opts.ParseWorkers,
	)

	g := new(errgroup.Group)
	g.SetLimit(r.opts.FolderWorkers)
	for _, folder := range folders {
		folder := folder
		g.Go(func() error {
			if err := r.runFolder(ctx, folder); err != nil {
				r.counters.FoldersFailed.Add(1)
				r.log.Error("folder failed", "folder", folder, "error", err.Error())
			} else {
				r.counters.FoldersDone.Add(1)
			}
			// Folder failures are isolated; never abort siblings.
			return nil
		})
	}
	_ = g.Wait()

	if failed := r.counters.FoldersFailed.Load(); failed > 0 {
		return fmt.Errorf("%d of %d folders failed", failed, len(folders))
	}
	return nil
}

// traverseResult is the graph consumer's handoff to the folder task.
type traverseResult struct {
	threads []graph.Thread
	err     error
}

// runFolder executes the six-stage pipeline for one topic folder.
//
// # Description
//
// Stage boundaries:
//
//  1. enumerate shard files (inline, cheap)
//  2. parse+filter across shards (forum.StreamPosts worker pool)
//  3. graph ingestion: one consumer goroutine exclusively owns the
//     ThreadGraph and drains the post channel
//  4. end-of-stream: the consumer calls Traverse once the channel closes
//  5. text processing over the traversal output (policy-driven)
//  6. serialize + emit to the shared sink
//
// A panic anywhere on this goroutine or in the graph consumer is
// recovered into an error, keeping the failure inside this folder's task.
func (r *Runner) runFolder(ctx context.Context, folder string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("folder pipeline panicked: %v", rec)
		}
	}()

	topic := filepath.Base(folder)
	start := time.Now()

	files, err := forum.ShardFiles(folder)
	if err != nil {
		return err
	}

	postCh := make(chan forum.Post, r.opts.PostBuffer)
	resultCh := make(chan traverseResult, 1)

	// Stage 3+4: the sole graph mutator. Ownership of the ThreadGraph is
	// transferred to this goroutine for the folder's lifetime; everyone
	// else only sends.
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				// Unblock remaining senders before reporting.
				for range postCh {
				}
				resultCh <- traverseResult{err: fmt.Errorf("graph ingestion panicked: %v", rec)}
			}
		}()
		tg := graph.New()
		for post := range postCh {
			tg.AddPost(post)
		}
		resultCh <- traverseResult{threads: tg.Traverse()}
	}()

	streamErr := forum.StreamPosts(ctx, files, r.opts.ParseWorkers, postCh, &r.counters.Stream)
	result := <-resultCh
	if streamErr != nil {
		return streamErr
	}
	if result.err != nil {
		return result.err
	}

	emit := func(doc writer.ThreadDoc) error {
		line, err := doc.Encode()
		if err != nil {
			return fmt.Errorf("encoding thread %s: %w", doc.ThreadID, err)
		}
		if err := r.sink.Send(writer.Record{Topic: topic, Line: line}); err != nil {
			return err
		}
		r.counters.ThreadsEmitted.Add(1)
		return nil
	}
	if err := textproc.ProcessThreads(ctx, result.threads, r.proc, r.policy, emit); err != nil {
		return err
	}

	r.log.Info("folder complete",
		"topic", topic,
		"shards", len(files),
		"threads", len(result.threads),
		"strategy", r.policy.Strategy(len(result.threads)).String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
