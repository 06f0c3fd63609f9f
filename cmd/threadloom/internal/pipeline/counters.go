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
	"sync/atomic"

	"github.com/AleutianAI/ThreadLoom/cmd/threadloom/internal/forum"
)

// Counters is the run's shared mutable state besides the channels:
// plain atomics read by the progress ticker and the final summary.
type Counters struct {
	// FoldersTotal is set once before the pool starts.
	FoldersTotal atomic.Int64

	// FoldersDone counts folders that completed successfully.
	FoldersDone atomic.Int64

	// FoldersFailed counts folders whose task failed or panicked.
	FoldersFailed atomic.Int64

	// ThreadsEmitted counts documents handed to the sink.
	ThreadsEmitted atomic.Int64

	// Stream aggregates parse/drop counts across all folders.
	Stream forum.StreamStats
}

// FoldersProcessed returns done + failed, for progress display.
func (c *Counters) FoldersProcessed() int64 {
	return c.FoldersDone.Load() + c.FoldersFailed.Load()
}
