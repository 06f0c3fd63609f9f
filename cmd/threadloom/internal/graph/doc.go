// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package graph implements the ThreadGraph forest used to reconstruct
// discussion threads from flat forum export records.
//
// Posts arrive in arbitrary order and may reference parents that have not
// been observed yet. The graph resolves this by synthesizing a placeholder
// node for any parent id seen before its record, so insertion order never
// changes the resulting forest.
//
// # Architecture
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│                         ThreadGraph                              │
//	├──────────────────────────────────────────────────────────────────┤
//	│                                                                  │
//	│  ┌────────────┐    ┌──────────────────┐    ┌──────────────────┐  │
//	│  │  nodeMap   │───▶│  payload []Post  │    │  edges [][]int   │  │
//	│  │ id → index │    │ (parallel slice) │    │ (adjacency list) │  │
//	│  └────────────┘    └──────────────────┘    └──────────────────┘  │
//	│                                                                  │
//	│  ┌────────────┐    ┌──────────────────────────────────────────┐  │
//	│  │   roots    │───▶│  Traverse: one pre-order DFS per root,   │  │
//	│  │ (tracked)  │    │  visited set guards accidental cycles    │  │
//	│  └────────────┘    └──────────────────────────────────────────┘  │
//	│                                                                  │
//	└──────────────────────────────────────────────────────────────────┘
//
// Nodes are stored arena-style: an id-to-index map plus a parallel payload
// slice. There are no node pointers, so accidental cycles or duplicate
// edges in dirty dumps cannot leak memory or break traversal; the DFS
// visited set tolerates both.
//
// # Thread Safety
//
// ThreadGraph is NOT safe for concurrent mutation. The pipeline enforces a
// single-writer discipline: exactly one goroutine owns the graph and drains
// a channel of parsed posts. Traverse is called by that same owner after
// the channel closes.
package graph
