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

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors for the parsing boundary.
var (
	// ErrMissingField indicates a record that decoded but lacks a
	// required field.
	ErrMissingField = errors.New("record is missing a required field")
)

// threadFlag is the exporter's marker for a thread start. IsThread is true
// iff the wire value is exactly this string.
const threadFlag = "Y"

// wireRecord is the raw JSONL shape. All fields are strings in the export;
// pointers distinguish "absent" from "empty".
type wireRecord struct {
	ID           *string `json:"id"`
	IsThread     *string `json:"is_thread"`
	PageText     *string `json:"pagetext"`
	ParentPostID *string `json:"parent_post_id"`
	RootPostID   *string `json:"root_post_id"`
}

// DecodeLine parses one JSONL line into a Post.
//
// # Description
//
// The wire shape is strict: all five fields must be present. A record with
// an absent field, bad JSON, or a non-object line returns an error and the
// caller drops the line. The is_thread flag is true only for the exact
// value "Y"; every other value (including "y" and "N") is false.
//
// # Outputs
//
//   - Post: the decoded post, valid only when err is nil.
//   - error: decode or shape failure; never fatal to the caller.
func DecodeLine(line []byte) (Post, error) {
	var rec wireRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return Post{}, fmt.Errorf("decoding post record: %w", err)
	}
	if rec.ID == nil || rec.IsThread == nil || rec.PageText == nil ||
		rec.ParentPostID == nil || rec.RootPostID == nil {
		return Post{}, ErrMissingField
	}
	return Post{
		ID:           *rec.ID,
		IsThread:     *rec.IsThread == threadFlag,
		PageText:     *rec.PageText,
		ParentPostID: *rec.ParentPostID,
		RootPostID:   *rec.RootPostID,
	}, nil
}
