// Copyright (c) 2025 Digote
// SPDX-License-Identifier: MIT

package pokedat

import "fmt"

// Entry is one decoded unit of game text. Identifier is the position
// in the entry table; control tokens inside Text are preserved
// verbatim across encode/decode.
type Entry struct {
	ID          int
	Label       string // from the .tbl sidecar, empty when unknown
	Text        string
	Checksum    uint32
	HasChecksum bool
}

// TextFile is an ordered sequence of entries decoded from one
// container, together with the profile that produced it and any
// integrity warnings found along the way.
type TextFile struct {
	Version  Version
	Entries  []Entry
	Warnings []Warning
}

// Decode parses a decrypted container into its entries, in table
// order. Checksum mismatches under profiles that define checksums are
// reported on TextFile.Warnings, one per affected entry; they do not
// abort the decode.
func Decode(plain []byte, p *Profile) (*TextFile, error) {
	h, err := parseHeader(plain, p)
	if err != nil {
		return nil, err
	}

	rl := &p.Record
	rs := rl.size()
	unit := p.unitSize()
	tf := &TextFile{
		Version: p.Version,
		Entries: make([]Entry, 0, h.entryCount),
	}

	base := 0
	if rl.TableRelative {
		base = h.tableOffset
	}

	for i := 0; i < h.entryCount; i++ {
		rec := parseRecord(plain[h.tableOffset+i*rs:], rl)

		start := base + rec.offset
		end := start + rec.length*unit
		if rec.offset < 0 || rec.length < 0 || start < p.Header.Size || end > len(plain) || end < start {
			return nil, fmt.Errorf("%w: entry %d string range [%d:%d] outside buffer of %d bytes",
				ErrMalformedEntry, i, start, end, len(plain))
		}
		raw := plain[start:end]

		e := Entry{ID: i}
		if rl.ChecksumWidth > 0 {
			e.HasChecksum = true
			e.Checksum = rec.checksum
			if sum := entryChecksum(rl.Checksum, raw); sum != rec.checksum {
				tf.Warnings = append(tf.Warnings, Warning{
					Kind:  WarnChecksumMismatch,
					Entry: i,
					Want:  uint64(rec.checksum),
					Got:   uint64(sum),
				})
			}
		}
		e.Text = decodeString(raw, p)
		tf.Entries = append(tf.Entries, e)
	}
	return tf, nil
}

// Encode serializes entries back into a plain container: header, then
// the fixed-width entry table, then a contiguous string region with
// 4-byte alignment padding between strings. Checksums are recomputed
// when the profile defines them. Decoding the result yields the same
// entry text and order; byte identity with the original container is
// not guaranteed.
func Encode(tf *TextFile, p *Profile) ([]byte, error) {
	hl := &p.Header
	rl := &p.Record
	rs := rl.size()
	unit := p.unitSize()

	if uint64(len(tf.Entries)) > fieldMax(hl.EntryCountWidth) {
		return nil, fmt.Errorf("%w: %d entries exceed the entry count field",
			ErrMalformedHeader, len(tf.Entries))
	}

	tableOffset := hl.Size
	tableLen := len(tf.Entries) * rs

	var region []byte
	recs := make([]record, len(tf.Entries))
	for i, e := range tf.Entries {
		raw, err := encodeString(e.Text, p)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		off := tableLen + len(region)
		if !rl.TableRelative {
			off += tableOffset
		}
		recs[i] = record{
			offset: off,
			length: len(raw) / unit,
		}
		if rl.ChecksumWidth > 0 {
			recs[i].checksum = entryChecksum(rl.Checksum, raw)
		}
		if uint64(recs[i].length) > fieldMax(rl.LengthWidth) {
			return nil, fmt.Errorf("%w: entry %d length %d exceeds the length field",
				ErrMalformedEntry, i, recs[i].length)
		}

		region = append(region, raw...)
		for len(region)%4 != 0 {
			region = append(region, 0)
		}
	}

	total := tableOffset + tableLen + len(region)
	buf := make([]byte, total)
	putHeader(buf, header{
		entryCount:  len(tf.Entries),
		tableOffset: tableOffset,
		totalLength: tableLen + len(region),
	}, p)
	for i, r := range recs {
		putRecord(buf[tableOffset+i*rs:], r, rl)
	}
	copy(buf[tableOffset+tableLen:], region)
	return buf, nil
}
