// Copyright (c) 2025 Digote
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Digote/pokedat"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <folder> [output folder]",
	Short: "Merge each subfolder's .dat files into one editable .txt",
	Long: `Merge decodes every .dat file of each subfolder and concatenates
their texts, sorted by file name, into <subfolder>.txt with a
"<filename> ~~~~" separator line before each file's block. The same
sorted order is used again by split, so boundaries stay aligned.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		output := input
		if len(args) == 2 {
			output = args[1]
		}

		dirents, err := os.ReadDir(input)
		if err != nil {
			return err
		}
		var subs []string
		for _, d := range dirents {
			if d.IsDir() {
				subs = append(subs, d.Name())
			}
		}
		if len(subs) == 0 {
			slog.Warn("no subfolders found", "folder", input)
			return nil
		}
		sort.Strings(subs)

		for _, sub := range subs {
			if err := mergeFolder(filepath.Join(input, sub), filepath.Join(output, sub+".txt")); err != nil {
				return err
			}
		}
		return nil
	},
}

// mergeFolder merges one subfolder's .dat files into outFile.
func mergeFolder(folder, outFile string) error {
	dirents, err := os.ReadDir(folder)
	if err != nil {
		return err
	}
	var names []string
	for _, d := range dirents {
		if !d.IsDir() && strings.EqualFold(filepath.Ext(d.Name()), ".dat") {
			names = append(names, d.Name())
		}
	}
	if len(names) == 0 {
		slog.Warn("no .dat files found", "folder", folder)
		return nil
	}
	sort.Strings(names)

	files := make([]pokedat.NamedFile, 0, len(names))
	for _, name := range names {
		tf, err := pokedat.DecodeFile(filepath.Join(folder, name), profile)
		if err != nil {
			return err
		}
		for _, w := range tf.Warnings {
			slog.Warn(w.String(), "file", name)
		}
		files = append(files, pokedat.NamedFile{Name: name, Entries: tf.Entries})
	}

	merged, warns := pokedat.Merge(files)
	for _, w := range warns {
		slog.Warn(w.String(), "folder", folder)
	}
	if err := os.MkdirAll(filepath.Dir(outFile), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(outFile, []byte(merged), 0644); err != nil {
		return err
	}
	slog.Info("merged", "files", len(files), "output", outFile)
	return nil
}
