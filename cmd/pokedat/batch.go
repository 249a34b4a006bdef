// Copyright (c) 2025 Digote
// SPDX-License-Identifier: MIT

package main

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
)

// collectFiles walks root and returns the relative paths of files with
// the given extension, sorted for a deterministic processing order.
func collectFiles(root, ext string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ext) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// runBatch fans the per-file work out over a bounded worker pool.
// Failures are isolated per file: one corrupt file never aborts its
// siblings, and a summary is logged when the batch finishes.
func runBatch(files []string, workers int, fn func(rel string) error) (failed []string) {
	if workers <= 0 {
		workers = 2 * runtime.GOMAXPROCS(0)
	}
	if workers > len(files) {
		workers = len(files)
	}

	slog.Info("starting batch", "files", len(files), "workers", workers)
	start := time.Now()

	jobs := make(chan string)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rel := range jobs {
				if err := fn(rel); err != nil {
					slog.Error("failed", "file", rel, "err", err)
					mu.Lock()
					failed = append(failed, rel)
					mu.Unlock()
				} else {
					slog.Info("processed", "file", rel)
				}
			}
		}()
	}
	for _, rel := range files {
		jobs <- rel
	}
	close(jobs)
	wg.Wait()

	elapsed := time.Since(start)
	slog.Info("batch complete",
		"files", len(files),
		"ok", len(files)-len(failed),
		"failed", len(failed),
		"elapsed", elapsed.Round(time.Millisecond))
	for _, rel := range failed {
		slog.Error("failed file", "file", rel)
	}
	return failed
}

// replaceExt swaps a relative path's extension.
func replaceExt(rel, ext string) string {
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + ext
}
