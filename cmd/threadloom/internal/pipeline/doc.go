// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package pipeline orchestrates the per-folder reconstruction stages and
// the cross-folder worker pool.
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────────────────┐
//	│                     Per topic folder (‖ = data parallel)            │
//	├─────────────────────────────────────────────────────────────────────┤
//	│                                                                     │
//	│  shards ──▶ parse‖ ──▶ postCh ──▶ graph consumer (sole writer)      │
//	│                                        │ end-of-stream              │
//	│                                        ▼                            │
//	│                                   Traverse ──▶ textproc‖ ──▶ emit   │
//	│                                                                     │
//	└───────────────────────────────────────────────┬─────────────────────┘
//	                                                │
//	    other folders (task-parallel pool) ─────────┼──▶ shared Sink task
//	                                                ▼
//	                                          JSONL shards
//
// The graph consumer is the only goroutine that ever mutates a
// ThreadGraph: parse workers hand posts over a channel and the consumer
// exclusively owns the graph, so mutation needs no locks. Contention is
// removed by construction, not by locking.
//
// Failure isolation is per folder: a folder task that fails (including by
// panic) is logged and counted while other folders continue. A failure in
// the shared Sink is fatal to the whole run, since every folder funnels
// into it. There are no retries anywhere.
package pipeline
