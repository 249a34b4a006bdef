// Copyright (c) 2025 Digote
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Digote/pokedat"
)

var writeCmd = &cobra.Command{
	Use:   "write <file or folder> <output folder>",
	Short: "Generate .dat files from edited texts",
	Long: `Write parses edited .json or .txt files and rebuilds the binary .dat
containers, mirroring the input folder structure. No output file is
written for an input that fails to parse or encode.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, output := args[0], args[1]

		ext := ".json"
		if flagFormat == "txt" {
			ext = ".txt"
		}

		info, err := os.Stat(input)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return writeFile(filepath.Dir(input), filepath.Base(input), output)
		}

		files, err := collectFiles(input, ext)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			slog.Warn("no input files found", "folder", input, "ext", ext)
			return nil
		}
		if failed := runBatch(files, flagWorkers, func(rel string) error {
			return writeFile(input, rel, output)
		}); len(failed) > 0 {
			return fmt.Errorf("%d of %d files failed", len(failed), len(files))
		}
		return nil
	},
}

// writeFile parses one edited text file and encodes its .dat.
func writeFile(root, rel, output string) error {
	data, err := os.ReadFile(filepath.Join(root, rel))
	if err != nil {
		return err
	}

	form := pokedat.FormStructured
	if flagFormat == "txt" {
		form = pokedat.FormPlain
	}
	entries, err := pokedat.Parse(string(data), form)
	if err != nil {
		return err
	}

	tf := &pokedat.TextFile{Version: profile.Version, Entries: entries}
	outPath := filepath.Join(output, replaceExt(rel, ".dat"))
	return pokedat.EncodeFile(outPath, tf, profile)
}
