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
	"github.com/AleutianAI/ThreadLoom/cmd/threadloom/internal/forum"
)

// initialCapacity pre-sizes the arena for a typical topic folder.
const initialCapacity = 10000

// ThreadGraph is a mutable forest over post ids.
//
// # Description
//
// Each distinct id ever seen gets exactly one node index. The payload slice
// is parallel to the node arena: payload[i] is the Post for index i, and a
// later, fuller record for the same id overwrites the earlier payload
// (last write wins). Edges run parent → child and duplicates are permitted;
// traversal deduplicates with a visited set.
//
// The tracked roots list is authoritative for traversal. It holds true
// roots (IsThread) and synthesized placeholders, in registration order,
// each index at most once.
//
// # Thread Safety
//
// Not safe for concurrent use. See the package documentation for the
// single-writer ownership model.
type ThreadGraph struct {
	// nodeMap maps a post id to its node index. Bijective: one entry per
	// distinct id, one id per index.
	nodeMap map[string]int

	// payload holds the Post for each node index. Same length as the node
	// count at all times.
	payload []forum.Post

	// edges is the parent → children adjacency list, indexed by node.
	edges [][]int

	// roots holds node indices registered as thread starts.
	roots []int

	// rootSet deduplicates root registration.
	rootSet map[int]struct{}

	// edgeCount includes duplicate edges.
	edgeCount int
}

// New constructs an empty ThreadGraph sized for a typical topic folder.
func New() *ThreadGraph {
	return &ThreadGraph{
		nodeMap: make(map[string]int, initialCapacity),
		payload: make([]forum.Post, 0, initialCapacity),
		edges:   make([][]int, 0, initialCapacity),
		rootSet: make(map[int]struct{}, initialCapacity/8),
	}
}

// AddPost inserts a post into the forest.
//
// # Description
//
// Ensures a node exists for the post's parent id, synthesizing a
// self-parented placeholder (empty text, registered as a root) when the
// parent has not been observed. Then ensures a node for the post's own id,
// overwriting any earlier payload for that id. Self-referential roots add
// no edge; every other post adds one parent → child edge. Posts flagged as
// thread starts are additionally registered in the tracked roots.
//
// Duplicate ids are accepted (payload overwrite, never a second index) and
// duplicate edges are accepted (harmless under visited-set DFS). Malformed
// input never reaches this method; rejection happens at the parsing
// boundary.
func (g *ThreadGraph) AddPost(post forum.Post) {
	parentIdx, synthesized := g.ensure(post.ParentPostID, forum.Placeholder(post.ParentPostID))
	if synthesized {
		g.registerRoot(parentIdx)
	}

	idx, _ := g.ensure(post.ID, post)
	// Last write wins for re-inserted ids.
	g.payload[idx] = post

	if post.IsThread {
		g.registerRoot(idx)
	}
	if parentIdx == idx {
		// Self-referential root: no edge.
		return
	}
	g.edges[parentIdx] = append(g.edges[parentIdx], idx)
	g.edgeCount++
}

// ensure returns the node index for id, creating a node with the given
// payload when the id has not been seen. The second return reports whether
// a node was created.
func (g *ThreadGraph) ensure(id string, payload forum.Post) (int, bool) {
	if idx, ok := g.nodeMap[id]; ok {
		return idx, false
	}
	idx := len(g.payload)
	g.nodeMap[id] = idx
	g.payload = append(g.payload, payload)
	g.edges = append(g.edges, nil)
	return idx, true
}

// registerRoot adds idx to the tracked roots exactly once.
func (g *ThreadGraph) registerRoot(idx int) {
	if _, ok := g.rootSet[idx]; ok {
		return
	}
	g.rootSet[idx] = struct{}{}
	g.roots = append(g.roots, idx)
}

// Len returns the number of distinct nodes in the forest.
func (g *ThreadGraph) Len() int {
	return len(g.payload)
}

// EdgeCount returns the number of edges, duplicates included.
func (g *ThreadGraph) EdgeCount() int {
	return g.edgeCount
}

// Roots returns a copy of the tracked root indices, in registration order.
// This list is what Traverse walks.
func (g *ThreadGraph) Roots() []int {
	out := make([]int, len(g.roots))
	copy(out, g.roots)
	return out
}

// ScanRoots returns the indices of nodes with in-degree zero.
//
// # Description
//
// This is a diagnostic. It can disagree with the tracked roots: a node that
// gained an incoming edge after being registered (for example a placeholder
// whose real record later arrived as a reply) stays in the tracked list but
// drops out of this scan. Traversal always uses the tracked list.
func (g *ThreadGraph) ScanRoots() []int {
	indegree := make([]int, len(g.payload))
	for _, children := range g.edges {
		for _, child := range children {
			indegree[child]++
		}
	}
	var out []int
	for idx, deg := range indegree {
		if deg == 0 {
			out = append(out, idx)
		}
	}
	return out
}

// reset clears all internal state so the instance can be reused for the
// next topic folder.
func (g *ThreadGraph) reset() {
	g.nodeMap = make(map[string]int, initialCapacity)
	g.payload = g.payload[:0]
	g.edges = g.edges[:0]
	g.roots = g.roots[:0]
	g.rootSet = make(map[int]struct{}, initialCapacity/8)
	g.edgeCount = 0
}
