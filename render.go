// Copyright (c) 2025 Digote
// SPDX-License-Identifier: MIT

package pokedat

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Form selects an external textual representation of a TextFile.
type Form int

const (
	// FormStructured is a JSON array of {id, hash, text} records. The
	// hash field is omitted for profiles without checksums.
	FormStructured Form = iota

	// FormPlain is one raw line of text per entry, entry order = line
	// order, no metadata.
	FormPlain
)

// structuredEntry is the wire shape of one FormStructured record.
// Pointers distinguish absent fields from empty ones on parse.
type structuredEntry struct {
	ID   string  `json:"id"`
	Hash *string `json:"hash,omitempty"`
	Text *string `json:"text"`
}

// Render converts a TextFile to its external textual form.
func Render(tf *TextFile, form Form) (string, error) {
	switch form {
	case FormPlain:
		var b strings.Builder
		for _, e := range tf.Entries {
			b.WriteString(e.Text)
			b.WriteByte('\n')
		}
		return b.String(), nil
	case FormStructured:
		recs := make([]structuredEntry, len(tf.Entries))
		for i, e := range tf.Entries {
			id := e.Label
			if id == "" {
				id = strconv.Itoa(e.ID)
			}
			text := e.Text
			recs[i] = structuredEntry{ID: id, Text: &text}
			if e.HasChecksum {
				h := fmt.Sprintf("0x%08X", e.Checksum)
				recs[i].Hash = &h
			}
		}
		out, err := json.MarshalIndent(recs, "", "    ")
		if err != nil {
			return "", err
		}
		return string(out) + "\n", nil
	default:
		return "", fmt.Errorf("%w: unknown form %d", ErrFieldMismatch, form)
	}
}

// Parse is the inverse of Render. It recovers entries only; the
// profile is supplied separately to a subsequent Encode. For the plain
// form, identifiers are assigned positionally and no checksum is
// carried. For the structured form, identifier and hash come back
// unchanged; a missing required field or a duplicated identifier is
// ErrFieldMismatch.
func Parse(s string, form Form) ([]Entry, error) {
	switch form {
	case FormPlain:
		lines := strings.Split(s, "\n")
		if n := len(lines); n > 0 && lines[n-1] == "" {
			lines = lines[:n-1]
		}
		entries := make([]Entry, len(lines))
		for i, line := range lines {
			entries[i] = Entry{ID: i, Text: line}
		}
		return entries, nil
	case FormStructured:
		var recs []structuredEntry
		if err := json.Unmarshal([]byte(s), &recs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFieldMismatch, err)
		}
		seen := make(map[string]bool, len(recs))
		entries := make([]Entry, len(recs))
		for i, r := range recs {
			if r.ID == "" {
				return nil, fmt.Errorf("%w: record %d missing id", ErrFieldMismatch, i)
			}
			if r.Text == nil {
				return nil, fmt.Errorf("%w: record %d (%s) missing text", ErrFieldMismatch, i, r.ID)
			}
			if seen[r.ID] {
				return nil, fmt.Errorf("%w: duplicated identifier %q", ErrFieldMismatch, r.ID)
			}
			seen[r.ID] = true

			e := Entry{ID: i, Text: *r.Text}
			// Positional identifiers are rendered as the record index,
			// so any other numeric id is a label that happens to be all
			// digits.
			if n, err := strconv.Atoi(r.ID); err == nil && n == i {
				e.ID = n
			} else {
				e.Label = r.ID
			}
			if r.Hash != nil {
				h := strings.TrimPrefix(*r.Hash, "0x")
				sum, err := strconv.ParseUint(h, 16, 32)
				if err != nil {
					return nil, fmt.Errorf("%w: record %s has bad hash %q", ErrFieldMismatch, r.ID, *r.Hash)
				}
				e.Checksum = uint32(sum)
				e.HasChecksum = true
			}
			entries[i] = e
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("%w: unknown form %d", ErrFieldMismatch, form)
	}
}
