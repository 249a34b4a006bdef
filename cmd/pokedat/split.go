// Copyright (c) 2025 Digote
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Digote/pokedat"
)

var splitCmd = &cobra.Command{
	Use:   "split <merged .txt or folder> <output folder>",
	Short: "Split merged .txt files back into .dat files",
	Long: `Split recovers the per-file blocks of a merged .txt and rebuilds one
.dat per block under <output>/<merged name>/. When the original .dat
folder still sits next to the merged file, its line counts are checked
and any drift is reported; short files are never padded silently.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, output := args[0], args[1]

		info, err := os.Stat(input)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return splitFile(input, output)
		}

		dirents, err := os.ReadDir(input)
		if err != nil {
			return err
		}
		found := false
		for _, d := range dirents {
			if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".txt") {
				continue
			}
			found = true
			if err := splitFile(filepath.Join(input, d.Name()), output); err != nil {
				return err
			}
		}
		if !found {
			slog.Warn("no merged .txt files found", "folder", input)
		}
		return nil
	},
}

// splitFile splits one merged .txt into .dat files under
// output/<base>/ where <base> is the merged file name without its
// extension.
func splitFile(mergedPath, output string) error {
	data, err := os.ReadFile(mergedPath)
	if err != nil {
		return err
	}
	merged := string(data)
	base := strings.TrimSuffix(filepath.Base(mergedPath), filepath.Ext(mergedPath))

	expected := expectedCounts(merged, filepath.Join(filepath.Dir(mergedPath), base))
	res, err := pokedat.Split(merged, expected)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		slog.Warn(w.String(), "merged", mergedPath)
	}

	outDir := filepath.Join(output, base)
	for _, f := range res.Files {
		name := f.Name
		if name == "" {
			name = base + ".dat"
		}
		tf := &pokedat.TextFile{Version: profile.Version, Entries: f.Entries}
		if err := pokedat.EncodeFile(filepath.Join(outDir, name), tf, profile); err != nil {
			return err
		}
	}
	slog.Info("split", "files", len(res.Files), "output", outDir)
	return nil
}

// expectedCounts derives each block's original line count by decoding
// the pre-merge .dat files when their folder is still present. A count
// of -1 skips the check for that block.
func expectedCounts(merged, originalDir string) []int {
	names := pokedat.MergedNames(merged)
	counts := make([]int, len(names))
	for i, name := range names {
		counts[i] = -1
		tf, err := pokedat.DecodeFile(filepath.Join(originalDir, name), profile)
		if err == nil {
			counts[i] = len(tf.Entries)
		}
	}
	return counts
}
