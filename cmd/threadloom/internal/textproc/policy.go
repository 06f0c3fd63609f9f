// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package textproc

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/ThreadLoom/cmd/threadloom/internal/graph"
	"github.com/AleutianAI/ThreadLoom/cmd/threadloom/internal/writer"
)

// DefaultParallelThreshold is the batch size above which text processing
// fans out to workers. Below it, goroutine dispatch costs more than it
// saves.
const DefaultParallelThreshold = 5000

// Strategy is the execution decision for one batch.
type Strategy int

const (
	// Sequential processes the batch inline on the calling goroutine.
	Sequential Strategy = iota

	// Parallel processes the batch on a worker pool.
	Parallel
)

// String returns "sequential" or "parallel".
func (s Strategy) String() string {
	if s == Parallel {
		return "parallel"
	}
	return "sequential"
}

// BatchPolicy decides how a batch of threads is processed. It is an
// explicit, independently testable policy rather than an inline branch.
type BatchPolicy struct {
	// ParallelThreshold is the batch size that triggers Parallel.
	// <= 0 means never parallelize.
	ParallelThreshold int

	// Workers is the pool size under Parallel. <= 0 means NumCPU.
	Workers int
}

// DefaultBatchPolicy returns the tuned defaults.
func DefaultBatchPolicy() BatchPolicy {
	return BatchPolicy{
		ParallelThreshold: DefaultParallelThreshold,
		Workers:           runtime.NumCPU(),
	}
}

// Strategy returns the execution strategy for a batch of n threads.
func (p BatchPolicy) Strategy(n int) Strategy {
	if p.ParallelThreshold > 0 && n > p.ParallelThreshold {
		return Parallel
	}
	return Sequential
}

// workerCount resolves the effective pool size for a batch of n.
func (p BatchPolicy) workerCount(n int) int {
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// ProcessThreads runs the text-processing stage over one folder's threads.
//
// # Description
//
// Converts each thread to a document and hands it to emit. emit must be
// safe for concurrent use under the Parallel strategy (the pipeline's emit
// is a channel send, which is). Processing stops at the first emit error
// or context cancellation; per the failure model that only aborts this
// folder's task.
func ProcessThreads(
	ctx context.Context,
	threads []graph.Thread,
	proc *Processor,
	policy BatchPolicy,
	emit func(writer.ThreadDoc) error,
) error {
	if policy.Strategy(len(threads)) == Sequential {
		for _, t := range threads {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := emit(proc.Document(t)); err != nil {
				return err
			}
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	idxCh := make(chan int)

	g.Go(func() error {
		defer close(idxCh)
		for i := range threads {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case idxCh <- i:
			}
		}
		return nil
	})

	for w := 0; w < policy.workerCount(len(threads)); w++ {
		g.Go(func() error {
			for i := range idxCh {
				if err := emit(proc.Document(threads[i])); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}
