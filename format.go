// Copyright (c) 2025 Digote
// SPDX-License-Identifier: MIT

package pokedat

import "fmt"

// header holds the decoded header fields of one container.
type header struct {
	entryCount  int
	tableOffset int
	totalLength int
}

// getUint reads a little-endian unsigned field of 1, 2 or 4 bytes.
func getUint(b []byte, off, width int) uint64 {
	var v uint64
	for i := 0; i < width; i++ {
		v |= uint64(b[off+i]) << (8 * i)
	}
	return v
}

// putUint writes a little-endian unsigned field of 1, 2 or 4 bytes.
func putUint(b []byte, off, width int, v uint64) {
	for i := 0; i < width; i++ {
		b[off+i] = byte(v >> (8 * i))
	}
}

// fieldMax is the largest value a field of the given width can hold.
func fieldMax(width int) uint64 {
	return 1<<(8*uint(width)) - 1
}

// parseHeader reads and validates the fixed-size header.
func parseHeader(data []byte, p *Profile) (header, error) {
	hl := &p.Header
	if len(data) < hl.Size {
		return header{}, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncatedInput, len(data), hl.Size)
	}

	var h header
	h.entryCount = int(getUint(data, hl.EntryCountOffset, hl.EntryCountWidth))
	h.tableOffset = int(getUint(data, hl.TableOffsetOffset, hl.TableOffsetWidth))
	if hl.TotalLengthWidth > 0 {
		h.totalLength = int(getUint(data, hl.TotalLengthOffset, hl.TotalLengthWidth))
		if h.tableOffset+h.totalLength != len(data) {
			return header{}, fmt.Errorf("%w: total length %d + table offset %d != buffer size %d",
				ErrMalformedHeader, h.totalLength, h.tableOffset, len(data))
		}
	}

	if h.tableOffset < hl.Size {
		return header{}, fmt.Errorf("%w: table offset %d inside header", ErrMalformedHeader, h.tableOffset)
	}
	tableEnd := h.tableOffset + h.entryCount*p.Record.size()
	if tableEnd > len(data) {
		return header{}, fmt.Errorf("%w: %d entries need %d bytes, buffer has %d",
			ErrMalformedHeader, h.entryCount, tableEnd, len(data))
	}
	return h, nil
}

// putHeader writes the header fields into an allocated buffer.
func putHeader(buf []byte, h header, p *Profile) {
	hl := &p.Header
	putUint(buf, hl.EntryCountOffset, hl.EntryCountWidth, uint64(h.entryCount))
	putUint(buf, hl.TableOffsetOffset, hl.TableOffsetWidth, uint64(h.tableOffset))
	if hl.TotalLengthWidth > 0 {
		putUint(buf, hl.TotalLengthOffset, hl.TotalLengthWidth, uint64(h.totalLength))
	}
}

// record is one fixed-width entry-table record.
type record struct {
	offset   int // signed in the file, units are bytes
	length   int // in code units, terminator included
	checksum uint32
}

// parseRecord reads one record at the start of b.
func parseRecord(b []byte, rl *RecordLayout) record {
	var r record
	raw := getUint(b, 0, rl.OffsetWidth)
	// Sign-extend the offset field.
	shift := 64 - 8*uint(rl.OffsetWidth)
	r.offset = int(int64(raw<<shift) >> shift)
	r.length = int(getUint(b, rl.OffsetWidth, rl.LengthWidth))
	if rl.ChecksumWidth > 0 {
		r.checksum = uint32(getUint(b, rl.OffsetWidth+rl.LengthWidth, rl.ChecksumWidth))
	}
	return r
}

// putRecord writes one record at the start of b.
func putRecord(b []byte, r record, rl *RecordLayout) {
	putUint(b, 0, rl.OffsetWidth, uint64(uint32(r.offset))&fieldMax(rl.OffsetWidth))
	putUint(b, rl.OffsetWidth, rl.LengthWidth, uint64(r.length))
	if rl.ChecksumWidth > 0 {
		putUint(b, rl.OffsetWidth+rl.LengthWidth, rl.ChecksumWidth, uint64(r.checksum))
	}
}
