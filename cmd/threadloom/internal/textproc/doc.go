// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package textproc normalizes reconstructed thread texts and assembles the
// output training documents.
//
// The stage takes one Thread (root id plus DFS-ordered texts), cleans each
// text, joins with newlines, and attaches a length metric: a tokenizer
// count when one is configured, a whitespace word count otherwise.
//
// All collaborators are explicit: the compiled matcher and the token
// counter live in a Processor built by required-construction, so
// use-before-init cannot happen at runtime. Batches above a policy
// threshold run on a worker pool; smaller batches run inline.
package textproc
