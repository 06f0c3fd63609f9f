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
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/ThreadLoom/cmd/threadloom/internal/graph"
	"github.com/AleutianAI/ThreadLoom/cmd/threadloom/internal/writer"
)

// TestBatchPolicy_Strategy picks parallel strictly above the threshold.
func TestBatchPolicy_Strategy(t *testing.T) {
	p := BatchPolicy{ParallelThreshold: 5000, Workers: 4}

	assert.Equal(t, Sequential, p.Strategy(0))
	assert.Equal(t, Sequential, p.Strategy(4999))
	assert.Equal(t, Sequential, p.Strategy(5000))
	assert.Equal(t, Parallel, p.Strategy(5001))

	// Zero threshold disables parallel processing entirely.
	off := BatchPolicy{ParallelThreshold: 0, Workers: 4}
	assert.Equal(t, Sequential, off.Strategy(1_000_000))
}

func TestStrategy_String(t *testing.T) {
	assert.Equal(t, "sequential", Sequential.String())
	assert.Equal(t, "parallel", Parallel.String())
}

func makeThreads(n int) []graph.Thread {
	threads := make([]graph.Thread, n)
	for i := range threads {
		threads[i] = graph.Thread{
			RootID: fmt.Sprintf("r%d", i),
			Texts:  []string{fmt.Sprintf("post %d", i)},
		}
	}
	return threads
}

// TestProcessThreads_Sequential emits every document in order.
func TestProcessThreads_Sequential(t *testing.T) {
	proc, err := NewProcessor(NewNormalizer(), WordCounter{}, "forum")
	require.NoError(t, err)

	threads := makeThreads(10)
	policy := BatchPolicy{ParallelThreshold: 5000, Workers: 2}

	var got []string
	emit := func(doc writer.ThreadDoc) error {
		got = append(got, doc.ThreadID)
		return nil
	}

	require.NoError(t, ProcessThreads(context.Background(), threads, proc, policy, emit))
	require.Len(t, got, 10)
	for i, id := range got {
		assert.Equal(t, fmt.Sprintf("r%d", i), id)
	}
}

// TestProcessThreads_Parallel emits every document exactly once; order is
// not promised above the threshold.
func TestProcessThreads_Parallel(t *testing.T) {
	proc, err := NewProcessor(NewNormalizer(), WordCounter{}, "forum")
	require.NoError(t, err)

	const n = 200
	threads := makeThreads(n)
	policy := BatchPolicy{ParallelThreshold: 50, Workers: 4}
	require.Equal(t, Parallel, policy.Strategy(n))

	var mu sync.Mutex
	var got []string
	emit := func(doc writer.ThreadDoc) error {
		mu.Lock()
		got = append(got, doc.ThreadID)
		mu.Unlock()
		return nil
	}

	require.NoError(t, ProcessThreads(context.Background(), threads, proc, policy, emit))
	require.Len(t, got, n)

	sort.Strings(got)
	seen := make(map[string]bool, n)
	for _, id := range got {
		assert.False(t, seen[id], "duplicate document %s", id)
		seen[id] = true
	}
}

// TestProcessThreads_EmitError aborts processing and surfaces the error.
func TestProcessThreads_EmitError(t *testing.T) {
	proc, err := NewProcessor(NewNormalizer(), WordCounter{}, "forum")
	require.NoError(t, err)

	boom := errors.New("sink rejected record")
	emit := func(writer.ThreadDoc) error { return boom }

	err = ProcessThreads(context.Background(), makeThreads(3), proc,
		BatchPolicy{ParallelThreshold: 5000, Workers: 2}, emit)
	assert.ErrorIs(t, err, boom)
}

// TestProcessThreads_Cancelled returns the context error promptly.
func TestProcessThreads_Cancelled(t *testing.T) {
	proc, err := NewProcessor(NewNormalizer(), WordCounter{}, "forum")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	emit := func(writer.ThreadDoc) error { return nil }
	err = ProcessThreads(ctx, makeThreads(5), proc,
		BatchPolicy{ParallelThreshold: 5000, Workers: 2}, emit)
	assert.ErrorIs(t, err, context.Canceled)
}
