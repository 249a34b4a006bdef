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

var readCmd = &cobra.Command{
	Use:   "read <file or folder> [output folder]",
	Short: "Extract texts from .dat files",
	Long: `Read decodes .dat containers and writes their texts in the selected
format, mirroring the input folder structure. Without an output folder
the texts are printed to stdout.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		output := ""
		if len(args) == 2 {
			output = args[1]
		}

		info, err := os.Stat(input)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return readFile(filepath.Dir(input), filepath.Base(input), output)
		}

		files, err := collectFiles(input, ".dat")
		if err != nil {
			return err
		}
		if len(files) == 0 {
			slog.Warn("no .dat files found", "folder", input)
			return nil
		}
		if failed := runBatch(files, flagWorkers, func(rel string) error {
			return readFile(input, rel, output)
		}); len(failed) > 0 {
			return fmt.Errorf("%d of %d files failed", len(failed), len(files))
		}
		return nil
	},
}

// readFile decodes one .dat and writes (or prints) its texts.
func readFile(root, rel, output string) error {
	tf, err := pokedat.DecodeFile(filepath.Join(root, rel), profile)
	if err != nil {
		return err
	}
	for _, w := range tf.Warnings {
		slog.Warn(w.String(), "file", rel)
	}

	form := pokedat.FormStructured
	ext := ".json"
	if flagFormat == "txt" {
		form = pokedat.FormPlain
		ext = ".txt"
	}
	text, err := pokedat.Render(tf, form)
	if err != nil {
		return err
	}

	if output == "" {
		fmt.Printf("--- %s ---\n%s", rel, text)
		return nil
	}
	outPath := filepath.Join(output, replaceExt(rel, ext))
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(outPath, []byte(text), 0644)
}
