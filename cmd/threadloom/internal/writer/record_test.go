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

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestThreadDoc_Encode pins the wire field names consumers depend on.
func TestThreadDoc_Encode(t *testing.T) {
	doc := ThreadDoc{
		Length:     42,
		RawContent: "root\nreply",
		ThreadID:   "t9",
		Source:     "forum",
	}

	line, err := doc.Encode()
	require.NoError(t, err)
	assert.NotContains(t, string(line), "\n") // embedded newlines stay escaped

	var m map[string]any
	require.NoError(t, json.Unmarshal(line, &m))
	assert.Equal(t, float64(42), m["length"])
	assert.Equal(t, "root\nreply", m["raw_content"])
	assert.Equal(t, "t9", m["thread_id"])
	assert.Equal(t, "forum", m["source"])
}
