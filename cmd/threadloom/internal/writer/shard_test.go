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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestShardWriter_SingleShard keeps everything in {topic}_0.jsonl when the
// budget is never exceeded.
func TestShardWriter_SingleShard(t *testing.T) {
	dir := t.TempDir()
	w := NewShardWriter(dir, "gardening", 1024)

	for i := 0; i < 3; i++ {
		n, err := w.Append([]byte(`{"x":1}`))
		require.NoError(t, err)
		assert.Equal(t, 9, n) // 8 bytes + newline
	}
	require.NoError(t, w.Close())

	assert.Equal(t, 1, w.ShardCount())
	data, err := os.ReadFile(filepath.Join(dir, "gardening_0.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, 3, bytes.Count(data, []byte("\n")))
}

// TestShardWriter_RollsAtBudget opens a new shard when the next line would
// cross the byte budget.
func TestShardWriter_RollsAtBudget(t *testing.T) {
	dir := t.TempDir()
	// Each line is 10 bytes with newline; budget fits two.
	w := NewShardWriter(dir, "topic", 20)

	for i := 0; i < 5; i++ {
		_, err := w.Append([]byte("123456789"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	// ceil(5/2) shards.
	assert.Equal(t, 3, w.ShardCount())
	for i, wantLines := range []int{2, 2, 1} {
		data, err := os.ReadFile(filepath.Join(dir, "topic_"+string(rune('0'+i))+".jsonl"))
		require.NoError(t, err)
		assert.Equal(t, wantLines, bytes.Count(data, []byte("\n")), "shard %d", i)
	}
}

// TestShardWriter_OversizedRecord writes a record larger than the budget
// alone into its own shard rather than dropping it.
func TestShardWriter_OversizedRecord(t *testing.T) {
	dir := t.TempDir()
	w := NewShardWriter(dir, "topic", 16)

	_, err := w.Append([]byte("short"))
	require.NoError(t, err)
	_, err = w.Append(bytes.Repeat([]byte("x"), 64))
	require.NoError(t, err)
	_, err = w.Append([]byte("after"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, 3, w.ShardCount())
	data, err := os.ReadFile(filepath.Join(dir, "topic_1.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, 65, len(data))
}

// TestShardWriter_LazyOpen leaves no file for an unused writer.
func TestShardWriter_LazyOpen(t *testing.T) {
	dir := t.TempDir()
	w := NewShardWriter(dir, "empty", 1024)
	require.NoError(t, w.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, 0, w.ShardCount())
}

// TestShardWriter_NoBudget never rolls when splitting is disabled.
func TestShardWriter_NoBudget(t *testing.T) {
	dir := t.TempDir()
	w := NewShardWriter(dir, "topic", 0)

	for i := 0; i < 100; i++ {
		_, err := w.Append(bytes.Repeat([]byte("y"), 100))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	assert.Equal(t, 1, w.ShardCount())
}
