// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package forum

// Post is one forum post or comment, immutable once built.
//
// A root post (thread start) is self-parented: ParentPostID == ID.
// RootPostID is carried from the export for fidelity but is not used
// operationally; thread membership is reconstructed from parent links.
type Post struct {
	// ID is the unique key of the post within a dump.
	ID string

	// IsThread marks a thread start.
	IsThread bool

	// PageText is the post body.
	PageText string

	// ParentPostID is the id of the post this one replies to.
	ParentPostID string

	// RootPostID is the exporter's idea of the thread root. Carried, unused.
	RootPostID string
}

// Placeholder builds a stand-in for an id that was referenced as a parent
// but never observed as a standalone record. It is self-parented with empty
// text and counts as a thread start so traversal still surfaces its
// subtree.
func Placeholder(id string) Post {
	return Post{
		ID:           id,
		IsThread:     true,
		PageText:     "",
		ParentPostID: id,
		RootPostID:   id,
	}
}
