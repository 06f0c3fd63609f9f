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
	"regexp"
	"strings"
)

// stripPattern removes forum noise before length counting:
//   - runs of 2+ dashes or equals signs (ASCII separators)
//   - URLs (http/https and anything glued to them)
//   - email addresses and @handles
//   - hashtags
//
// Matches are replaced with a single space; spacePattern then collapses
// the damage.
const stripPattern = `-{2,}|={2,}|http\S+|(?:[\w.-]+)?@\S+|#\S+`

// spacePattern collapses runs of whitespace left behind by stripping.
const spacePattern = `\s+`

// Normalizer cleans post text with a pre-compiled matcher pair.
//
// # Thread Safety
//
// Safe for concurrent use; compiled regexps are immutable and Clean has no
// other state.
type Normalizer struct {
	strip  *regexp.Regexp
	spaces *regexp.Regexp
}

// NewNormalizer compiles the matcher pair.
//
// Construction is the initialization: a Normalizer in hand is always ready,
// there is no separate init step to forget.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		strip:  regexp.MustCompile(stripPattern),
		spaces: regexp.MustCompile(spacePattern),
	}
}

// Clean normalizes one text: strips noise, collapses whitespace, trims.
//
// Reference behavior:
//
//	"hello--world"                  → "hello world"
//	"check http://example.com here" → "check here"
//	"too    many    spaces"         → "too many spaces"
//	"#Hashtag5, #Hashtag2"          → ""
func (n *Normalizer) Clean(text string) string {
	cleaned := n.strip.ReplaceAllString(text, " ")
	cleaned = n.spaces.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
