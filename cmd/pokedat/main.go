// Copyright (c) 2025 Digote
// SPDX-License-Identifier: MIT

// Command pokedat extracts and rebuilds the text containers of the
// Switch-era Pokémon titles.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Digote/pokedat"
)

var (
	flagVersion string
	flagFormat  string
	flagWorkers int

	profile *pokedat.Profile
)

var rootCmd = &cobra.Command{
	Use:   "pokedat",
	Short: "Pokémon Switch .dat text extractor and builder",
	Long: `pokedat converts the binary text containers of the Switch-era
Pokémon titles to editable text and back.

Supported versions: LGPE, SWSH, LA, SV, LZA
Supported formats: json, txt`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		profile, err = pokedat.Lookup(pokedat.Version(flagVersion))
		if err != nil {
			return err
		}
		if flagFormat != "json" && flagFormat != "txt" {
			return fmt.Errorf("unsupported format %q (json or txt)", flagFormat)
		}
		return nil
	},
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	rootCmd.PersistentFlags().StringVar(&flagVersion, "version", "", "game version (LGPE, SWSH, LA, SV, LZA)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "text format (json or txt)")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "worker count (0 = auto)")
	rootCmd.MarkPersistentFlagRequired("version")
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(readCmd, writeCmd, mergeCmd, splitCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
