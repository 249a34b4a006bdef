// Copyright (c) 2025 Digote
// SPDX-License-Identifier: MIT

package pokedat

import (
	"fmt"
	"strings"
)

// separatorSuffix marks a file boundary in a merged block. A separator
// line is the source file name followed by a space and a run of at
// least four tildes; real entry text never ends that way because the
// tilde run is always preceded by the name field.
const separatorSuffix = " ~~~~"

// NamedFile pairs a source file name with its ordered entries. The
// merge/split layer treats entry text as opaque lines.
type NamedFile struct {
	Name    string
	Entries []Entry
}

// SplitResult is the outcome of splitting one merged block.
type SplitResult struct {
	Files    []NamedFile
	Warnings []Warning
}

// SplitOptions tunes Split behavior.
type SplitOptions struct {
	// PadShort appends empty entries to a segment that lost lines so
	// it reaches its expected count. Off by default: a short file is
	// surfaced, never silently repaired.
	PadShort bool
}

// Merge concatenates the plain rendering of each file, prefixed by its
// separator line, in the caller-supplied order. The caller must use
// the same stable order (typically sorted file names) for merge and
// the later split so boundaries line up. An entry line that itself has
// the separator shape is reported as a SeparatorText warning, since a
// later split would cut the block there.
func Merge(files []NamedFile) (string, []Warning) {
	var b strings.Builder
	var warns []Warning
	for _, f := range files {
		b.WriteString(f.Name)
		b.WriteString(separatorSuffix)
		b.WriteByte('\n')
		for i, e := range f.Entries {
			if _, ok := parseSeparator(e.Text); ok {
				warns = append(warns, Warning{
					Kind:  WarnSeparatorText,
					File:  f.Name,
					Entry: i,
				})
			}
			b.WriteString(e.Text)
			b.WriteByte('\n')
		}
	}
	return b.String(), warns
}

// MergedNames scans a merged block and returns the source file names
// in order, without splitting the content.
func MergedNames(merged string) []string {
	var names []string
	for _, line := range strings.Split(merged, "\n") {
		if name, ok := parseSeparator(line); ok {
			names = append(names, name)
		}
	}
	return names
}

// Split recovers per-file entries from a merged block. expected holds
// the original line count of each file in merge order; a negative
// count skips the check for that file, and files beyond the slice are
// not checked. Count drift is reported as warnings on the result, one
// per affected file, while entries are still produced from the lines
// present.
func Split(merged string, expected []int) (*SplitResult, error) {
	return SplitWithOptions(merged, expected, SplitOptions{})
}

// SplitWithOptions is Split with explicit options.
func SplitWithOptions(merged string, expected []int, opts SplitOptions) (*SplitResult, error) {
	lines := strings.Split(merged, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	type segment struct {
		name  string
		lines []string
	}
	var segs []segment
	cur := -1
	sawSeparator := false
	for _, line := range lines {
		if name, ok := parseSeparator(line); ok {
			segs = append(segs, segment{name: name})
			cur = len(segs) - 1
			sawSeparator = true
			continue
		}
		if cur < 0 {
			// Text before the first separator. Tolerated so a
			// single exported file without markers still splits.
			segs = append(segs, segment{})
			cur = 0
		}
		segs[cur].lines = append(segs[cur].lines, line)
	}

	if !sawSeparator && len(expected) > 1 {
		return nil, fmt.Errorf("%w: expected %d files", ErrUnknownSeparator, len(expected))
	}
	if len(segs) == 0 {
		return &SplitResult{}, nil
	}

	res := &SplitResult{Files: make([]NamedFile, 0, len(segs))}
	for i, seg := range segs {
		want := -1
		if i < len(expected) {
			want = expected[i]
		}
		got := len(seg.lines)

		if want >= 0 && got != want {
			kind := WarnExtraLines
			if got < want {
				kind = WarnMissingLines
			}
			res.Warnings = append(res.Warnings, Warning{
				Kind: kind,
				File: seg.name,
				Want: uint64(want),
				Got:  uint64(got),
			})
		}

		entries := make([]Entry, 0, got)
		for j, line := range seg.lines {
			entries = append(entries, Entry{ID: j, Text: line})
		}
		if opts.PadShort && want >= 0 {
			for len(entries) < want {
				entries = append(entries, Entry{ID: len(entries)})
			}
		}
		res.Files = append(res.Files, NamedFile{Name: seg.name, Entries: entries})
	}
	return res, nil
}

// parseSeparator reports whether a line is a file-boundary marker and
// extracts the file name. Longer tilde runs, as some editors pad them,
// are accepted.
func parseSeparator(line string) (string, bool) {
	idx := strings.LastIndexByte(line, ' ')
	if idx < 0 {
		return "", false
	}
	run := line[idx+1:]
	if len(run) < 4 {
		return "", false
	}
	for i := 0; i < len(run); i++ {
		if run[i] != '~' {
			return "", false
		}
	}
	return line[:idx], true
}
