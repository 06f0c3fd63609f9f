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
	"errors"
	"strings"

	"github.com/AleutianAI/ThreadLoom/cmd/threadloom/internal/graph"
	"github.com/AleutianAI/ThreadLoom/cmd/threadloom/internal/writer"
)

// Constructor errors. A Processor cannot exist half-initialized; these are
// the compile-time replacement for "tokenizer used before init" panics.
var (
	ErrNilNormalizer = errors.New("processor requires a normalizer")
	ErrNilCounter    = errors.New("processor requires a counter")
)

// Processor assembles one ThreadDoc from one reconstructed thread.
//
// # Description
//
// Holds the compiled matcher and the token counter by immutable reference.
// Built once at startup and shared by every text-processing worker across
// every folder; it has no mutable state.
//
// # Thread Safety
//
// Safe for concurrent use.
type Processor struct {
	norm    *Normalizer
	counter Counter
	source  string
}

// NewProcessor validates and assembles the text-processing collaborators.
//
// # Inputs
//
//   - norm: compiled normalizer, required.
//   - counter: length metric, required (WordCounter is the no-tokenizer
//     fallback, not a nil counter).
//   - source: forum label stamped on every document.
func NewProcessor(norm *Normalizer, counter Counter, source string) (*Processor, error) {
	if norm == nil {
		return nil, ErrNilNormalizer
	}
	if counter == nil {
		return nil, ErrNilCounter
	}
	return &Processor{norm: norm, counter: counter, source: source}, nil
}

// Document converts one thread into its output record.
//
// Each text is cleaned independently, then joined with newlines in DFS
// order; texts that clean to empty keep their newline slot so the document
// shape follows the thread shape. The length metric is computed on the
// joined content.
func (p *Processor) Document(t graph.Thread) writer.ThreadDoc {
	var b strings.Builder
	size := 0
	for _, text := range t.Texts {
		size += len(text) + 1
	}
	b.Grow(size)

	for i, text := range t.Texts {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p.norm.Clean(text))
	}
	content := b.String()

	return writer.ThreadDoc{
		Length:     p.counter.Count(content),
		RawContent: content,
		ThreadID:   t.RootID,
		Source:     p.source,
	}
}
