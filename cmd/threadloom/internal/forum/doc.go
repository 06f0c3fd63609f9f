// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package forum defines the post data model for forum export dumps and the
// ingestion reader that turns JSONL shard files into a stream of posts.
//
// A dump has one directory per topic, each holding one or more JSONL shard
// files. There is no deeper nesting. Every line is one flat post/comment
// record; lines that fail to decode or are missing fields are dropped and
// counted, never fatal.
//
// # Thread Safety
//
// Posts are immutable once built. StreamPosts is safe to call from any
// goroutine; its parse workers share nothing but the output channel and
// the drop counter.
package forum
