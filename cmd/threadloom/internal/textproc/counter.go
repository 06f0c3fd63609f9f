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
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter computes the length metric of a normalized document.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use; the text-processing
// stage shares one Counter across its workers.
type Counter interface {
	// Count returns the length of text in the counter's unit
	// (tokens or words).
	Count(text string) int
}

// WordCounter counts whitespace-separated words. It is the fallback when
// no tokenizer is configured.
type WordCounter struct{}

// Count returns the number of whitespace-separated fields in text.
func (WordCounter) Count(text string) int {
	return len(strings.Fields(text))
}

// TiktokenCounter counts BPE tokens using a tiktoken encoding.
type TiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTiktokenCounter loads a tiktoken encoding by name, falling back to
// model-name lookup ("gpt-4o" style identifiers).
//
// Loading happens exactly once, at startup; a failure here is fatal to the
// run before any processing starts, which is the only point where a broken
// tokenizer is allowed to hurt.
//
// # Inputs
//
//   - name: an encoding ("cl100k_base", "o200k_base") or a model name.
//
// # Outputs
//
//   - *TiktokenCounter: ready for concurrent use.
//   - error: unknown identifier or encoding fetch failure.
func NewTiktokenCounter(name string) (*TiktokenCounter, error) {
	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		var modelErr error
		enc, modelErr = tiktoken.EncodingForModel(name)
		if modelErr != nil {
			return nil, fmt.Errorf("loading tokenizer %q: %w", name, err)
		}
	}
	return &TiktokenCounter{enc: enc}, nil
}

// Count returns the token count of text under the loaded encoding.
func (c *TiktokenCounter) Count(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}
