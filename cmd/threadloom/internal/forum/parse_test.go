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
	"errors"
	"testing"
)

// TestDecodeLine_Valid decodes a complete record.
func TestDecodeLine_Valid(t *testing.T) {
	line := []byte(`{"id":"42","is_thread":"Y","pagetext":"hello","parent_post_id":"42","root_post_id":"42"}`)
	post, err := DecodeLine(line)
	if err != nil {
		t.Fatalf("DecodeLine() error = %v", err)
	}
	if post.ID != "42" || !post.IsThread || post.PageText != "hello" {
		t.Errorf("DecodeLine() = %+v", post)
	}
	if post.ParentPostID != "42" || post.RootPostID != "42" {
		t.Errorf("DecodeLine() parent/root = %q/%q", post.ParentPostID, post.RootPostID)
	}
}

// TestDecodeLine_ThreadFlag accepts exactly "Y" as the thread marker.
func TestDecodeLine_ThreadFlag(t *testing.T) {
	cases := []struct {
		flag string
		want bool
	}{
		{"Y", true},
		{"N", false},
		{"y", false},
		{"", false},
		{"yes", false},
	}
	for _, tc := range cases {
		line := []byte(`{"id":"1","is_thread":"` + tc.flag + `","pagetext":"t","parent_post_id":"1","root_post_id":"1"}`)
		post, err := DecodeLine(line)
		if err != nil {
			t.Fatalf("flag %q: error = %v", tc.flag, err)
		}
		if post.IsThread != tc.want {
			t.Errorf("flag %q: IsThread = %v, want %v", tc.flag, post.IsThread, tc.want)
		}
	}
}

// TestDecodeLine_MissingField rejects records with an absent field.
func TestDecodeLine_MissingField(t *testing.T) {
	cases := []string{
		`{"is_thread":"Y","pagetext":"t","parent_post_id":"1","root_post_id":"1"}`,
		`{"id":"1","pagetext":"t","parent_post_id":"1","root_post_id":"1"}`,
		`{"id":"1","is_thread":"Y","parent_post_id":"1","root_post_id":"1"}`,
		`{"id":"1","is_thread":"Y","pagetext":"t","root_post_id":"1"}`,
		`{"id":"1","is_thread":"Y","pagetext":"t","parent_post_id":"1"}`,
		`{}`,
	}
	for _, line := range cases {
		if _, err := DecodeLine([]byte(line)); !errors.Is(err, ErrMissingField) {
			t.Errorf("line %s: error = %v, want ErrMissingField", line, err)
		}
	}
}

// TestDecodeLine_EmptyFieldAllowed distinguishes empty from absent.
func TestDecodeLine_EmptyFieldAllowed(t *testing.T) {
	line := []byte(`{"id":"1","is_thread":"N","pagetext":"","parent_post_id":"7","root_post_id":"7"}`)
	post, err := DecodeLine(line)
	if err != nil {
		t.Fatalf("DecodeLine() error = %v", err)
	}
	if post.PageText != "" {
		t.Errorf("PageText = %q, want empty", post.PageText)
	}
}

// TestDecodeLine_BadJSON surfaces decode errors to the caller.
func TestDecodeLine_BadJSON(t *testing.T) {
	for _, line := range []string{`{`, `[]`, `not json at all`} {
		if _, err := DecodeLine([]byte(line)); err == nil {
			t.Errorf("line %q: expected error", line)
		}
	}
}

// TestPlaceholder builds a self-parented empty thread root.
func TestPlaceholder(t *testing.T) {
	p := Placeholder("ghost")
	if p.ID != "ghost" || p.ParentPostID != "ghost" {
		t.Errorf("Placeholder() = %+v, want self-parented", p)
	}
	if !p.IsThread {
		t.Error("Placeholder() is not a thread root")
	}
	if p.PageText != "" {
		t.Errorf("Placeholder() text = %q, want empty", p.PageText)
	}
}
