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

import "encoding/json"

// ThreadDoc is one training document: a reconstructed thread serialized as
// a single JSONL record.
type ThreadDoc struct {
	// Length is the document length in tokens (tokenizer configured) or
	// whitespace words (fallback).
	Length int `json:"length"`

	// RawContent is the normalized, newline-joined DFS-ordered thread text.
	RawContent string `json:"raw_content"`

	// ThreadID is the root post id of the thread.
	ThreadID string `json:"thread_id"`

	// Source is the forum label the run was tagged with.
	Source string `json:"source"`
}

// Encode serializes the document as one JSON line, without the trailing
// newline. The writer appends the newline so byte accounting stays in one
// place.
func (d ThreadDoc) Encode() ([]byte, error) {
	return json.Marshal(d)
}
