// Copyright (c) 2025 Digote
// SPDX-License-Identifier: MIT

/*
Package pokedat converts the binary text containers (.dat, with .tbl
label sidecars) of the Switch-era Pokémon titles into editable text and
back.

Five titles are supported: LGPE, SWSH, LA, SV and LZA. Each title's
cipher parameters, binary layout, string encoding and control-variable
table live in a single per-title profile; the cipher and the codec are
title-agnostic and consume the profile, so new titles are added as
profile rows rather than codec branches.

# Basic Usage

Extracting the text of one container:

	profile, err := pokedat.Lookup(pokedat.VersionLGPE)
	if err != nil {
		log.Fatal(err)
	}

	tf, err := pokedat.DecodeFile("common/message.dat", profile)
	if err != nil {
		log.Fatal(err)
	}
	for _, e := range tf.Entries {
		fmt.Println(e.Text)
	}

Writing it back after editing:

	err = pokedat.EncodeFile("out/message.dat", tf, profile)

# Representations

A TextFile renders to two interchangeable external forms: a structured
JSON array of {id, hash, text} records, and a plain line-per-entry
form. Parse is the exact inverse of Render for the plain form; the
structured form additionally round-trips identifiers and checksums.

Merge concatenates the plain form of a folder's files, each block
prefixed with a "<filename> ~~~~" separator line, into one editable
text. Split reverses this and validates per-file line counts against
the pre-merge state, reporting drift as warnings instead of silently
padding or dropping lines.

# Integrity

Control tokens inside entry text ([VAR ...], escapes, ruby text) are
preserved verbatim through every conversion. Profiles that define
per-entry checksums surface mismatches as warnings naming the affected
entry. All operations are pure functions of their inputs; callers may
process any number of files concurrently.
*/
package pokedat
