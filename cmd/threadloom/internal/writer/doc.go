// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package writer serializes thread documents to JSONL output.
//
// The primary layout is per-topic byte-budget sharding: each topic gets
// files topic_0.jsonl, topic_1.jsonl, ... where a new shard starts once
// appending a record would exceed the budget. The shard index is monotonic
// and a shard is never revisited. A consolidated single-file layout
// (all.jsonl) is available as an explicit opt-in.
//
// All file writes go through a single Sink goroutine draining one shared
// channel, so folder pipelines stay parallel while output stays
// serialized. The Sink owns every file handle exclusively.
package writer
