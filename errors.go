// Copyright (c) 2025 Digote
// SPDX-License-Identifier: MIT

package pokedat

import (
	"errors"
	"fmt"
)

// Fatal error classes. Callers match these with errors.Is; the wrapped
// message carries the offending file, offset or entry index.
var (
	// ErrUnknownVersion is returned by Lookup for a game version that is
	// not in the supported set. It is a configuration error and is
	// reported before any file I/O happens.
	ErrUnknownVersion = errors.New("unknown game version")

	// ErrTruncatedInput is returned when a buffer is shorter than the
	// smallest possible container for its profile.
	ErrTruncatedInput = errors.New("truncated input")

	// ErrMalformedHeader is returned when header fields are internally
	// inconsistent, e.g. the entry table they describe would extend past
	// the end of the buffer.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrMalformedEntry is returned when an entry record points at a
	// string range outside the buffer.
	ErrMalformedEntry = errors.New("malformed entry")

	// ErrFieldMismatch is returned when structured text is missing a
	// required field or carries a duplicated identifier.
	ErrFieldMismatch = errors.New("field mismatch")

	// ErrBadToken is returned when entry text contains a control token
	// that cannot be encoded, e.g. an unterminated [VAR ...] block.
	ErrBadToken = errors.New("bad token")

	// ErrUnknownSeparator is returned by Split when a merged block that
	// should contain several files has no recognizable separator lines.
	ErrUnknownSeparator = errors.New("no separator found")
)

// WarningKind classifies non-fatal integrity findings.
type WarningKind int

const (
	// WarnChecksumMismatch: a stored entry checksum disagrees with the
	// value computed over the entry's string bytes.
	WarnChecksumMismatch WarningKind = iota

	// WarnMissingLines: a split segment has fewer lines than the file
	// originally contained.
	WarnMissingLines

	// WarnExtraLines: a split segment has more lines than the file
	// originally contained.
	WarnExtraLines

	// WarnSeparatorText: an entry line going into a merged block has
	// the shape of a file-boundary marker, so a later split would cut
	// the block at the wrong place.
	WarnSeparatorText
)

// Warning is a non-fatal integrity finding. Warnings are carried on
// results rather than returned as errors: processing continues, but the
// caller gets enough detail to locate the affected file, entry or line.
type Warning struct {
	Kind  WarningKind
	File  string // source file name, empty when not known
	Entry int    // entry or line index, -1 when not applicable
	Want  uint64 // expected checksum or line count
	Got   uint64 // observed checksum or line count
}

func (w Warning) String() string {
	switch w.Kind {
	case WarnChecksumMismatch:
		return fmt.Sprintf("checksum mismatch on entry %d: stored 0x%08X, computed 0x%08X", w.Entry, w.Want, w.Got)
	case WarnMissingLines:
		return fmt.Sprintf("%s: missing %d line(s) (expected %d, got %d)", w.File, w.Want-w.Got, w.Want, w.Got)
	case WarnExtraLines:
		return fmt.Sprintf("%s: %d extra line(s) (expected %d, got %d)", w.File, w.Got-w.Want, w.Want, w.Got)
	case WarnSeparatorText:
		return fmt.Sprintf("%s: line %d looks like a file separator and would desync a later split", w.File, w.Entry)
	default:
		return "unknown warning"
	}
}
