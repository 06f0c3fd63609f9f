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
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// TopicFolders enumerates the topic directories under a dump root.
//
// The expected layout is flat: one subdirectory per forum/topic, each
// holding JSONL shards. Non-directory entries at the root are skipped.
//
// # Outputs
//
//   - []string: absolute-ish paths (root-joined), unsorted.
//   - error: the root could not be read.
func TopicFolders(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading dump root %s: %w", root, err)
	}
	var folders []string
	for _, entry := range entries {
		if entry.IsDir() {
			folders = append(folders, filepath.Join(root, entry.Name()))
		}
	}
	return folders, nil
}

// ShardFiles enumerates the shard files in one topic folder.
//
// No recursion: the layout contract says shards sit directly in the topic
// folder. Subdirectories are skipped rather than rejected so stray
// artifacts don't poison a whole topic.
func ShardFiles(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("reading topic folder %s: %w", folder, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, filepath.Join(folder, entry.Name()))
		}
	}
	return files, nil
}

// OrderBySize sorts topic folders largest first, in place.
//
// Starting long folders early keeps the folder pool busy at the tail of a
// run. Size errors degrade to zero; a folder we can't stat sorts last and
// fails later with a proper error.
func OrderBySize(folders []string) {
	sizes := make(map[string]int64, len(folders))
	for _, folder := range folders {
		sizes[folder] = folderSize(folder)
	}
	sort.SliceStable(folders, func(i, j int) bool {
		return sizes[folders[i]] > sizes[folders[j]]
	})
}

// folderSize sums the sizes of the regular files directly in folder.
func folderSize(folder string) int64 {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return 0
	}
	var total int64
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if info, err := entry.Info(); err == nil {
			total += info.Size()
		}
	}
	return total
}
