// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package graph

import (
	"runtime"
	"sync"
)

// parallelRootThreshold decides when Traverse fans DFS work out across
// workers. Small root sets run sequentially to avoid dispatch overhead.
const parallelRootThreshold = 100

// Thread is one reconstructed discussion thread: the root's id and the
// pre-order DFS sequence of post texts in its subtree.
type Thread struct {
	RootID string
	Texts  []string
}

// Traverse drains the forest into one Thread per tracked root.
//
// # Description
//
// Each tracked root gets an independent depth-first search. A per-search
// visited set guarantees every node is collected at most once, which makes
// the walk safe against accidental cycles and duplicate edges in dirty
// dumps. The texts within a Thread follow pre-order DFS and are
// deterministic for a fixed root and edge set; the order of Threads across
// roots is not part of the contract.
//
// Root sets above parallelRootThreshold are walked by a worker pool, each
// worker writing into its own slot of the pre-sized result slice, so no
// locking is needed. After traversal all internal state is cleared and the
// graph is ready for reuse.
//
// # Outputs
//
//   - []Thread: one entry per tracked root.
func (g *ThreadGraph) Traverse() []Thread {
	roots := g.roots
	out := make([]Thread, len(roots))

	if len(roots) < parallelRootThreshold {
		for i, root := range roots {
			out[i] = g.singleDFS(root)
		}
	} else {
		workers := runtime.NumCPU()
		if workers > len(roots) {
			workers = len(roots)
		}
		rootCh := make(chan int, workers)

		var wg sync.WaitGroup
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()
				for i := range rootCh {
					out[i] = g.singleDFS(roots[i])
				}
			}()
		}
		for i := range roots {
			rootCh <- i
		}
		close(rootCh)
		wg.Wait()
	}

	g.reset()
	return out
}

// singleDFS walks the subtree under start in pre-order and maps each
// visited node to its payload text.
//
// Reads only; safe to run concurrently with other singleDFS calls.
func (g *ThreadGraph) singleDFS(start int) Thread {
	visited := make(map[int]struct{}, 64)
	texts := make([]string, 0, 50)
	stack := []int{start}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[node]; ok {
			continue
		}
		visited[node] = struct{}{}
		texts = append(texts, g.payload[node].PageText)

		// Push children in reverse so the first child is walked first.
		children := g.edges[node]
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	return Thread{RootID: g.payload[start].ID, Texts: texts}
}
