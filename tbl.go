// Copyright (c) 2025 Digote
// SPDX-License-Identifier: MIT

package pokedat

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// tblMagic is the sidecar magic "BTHA" as a little-endian u32; the
// on-disk byte order is 41 48 54 42.
const tblMagic = 0x42544841

// Label is one entry of a .tbl sidecar: the human-readable line name
// and the 64-bit hash the game resolves it by.
type Label struct {
	Name string
	Hash uint64
}

// TBLPath derives the .tbl sidecar path from a .dat path.
func TBLPath(datPath string) string {
	if i := strings.LastIndexByte(datPath, '.'); i >= 0 {
		return datPath[:i] + ".tbl"
	}
	return datPath + ".tbl"
}

// ReadTBL loads the labels of a .tbl sidecar file.
func ReadTBL(path string) ([]Label, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	labels, err := parseTBL(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return labels, nil
}

// parseTBL decodes the sidecar layout: u32 magic, u32 label count,
// then per label a u64 hash, u16 name length and cp1252 name bytes
// (NUL padded).
func parseTBL(data []byte) ([]Label, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncatedInput, len(data))
	}
	if magic := binary.LittleEndian.Uint32(data); magic != tblMagic {
		return nil, fmt.Errorf("%w: bad tbl magic 0x%08X", ErrMalformedHeader, magic)
	}
	count := int(binary.LittleEndian.Uint32(data[4:]))

	dec := charmap.Windows1252.NewDecoder()
	labels := make([]Label, 0, count)
	pos := 8
	for i := 0; i < count; i++ {
		if pos+10 > len(data) {
			return nil, fmt.Errorf("%w: label %d past end of file", ErrMalformedEntry, i)
		}
		hash := binary.LittleEndian.Uint64(data[pos:])
		nameLen := int(binary.LittleEndian.Uint16(data[pos+8:]))
		pos += 10
		if pos+nameLen > len(data) {
			return nil, fmt.Errorf("%w: label %d name past end of file", ErrMalformedEntry, i)
		}
		raw := data[pos : pos+nameLen]
		pos += nameLen

		for len(raw) > 0 && raw[len(raw)-1] == 0 {
			raw = raw[:len(raw)-1]
		}
		name, err := dec.Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: label %d name: %v", ErrMalformedEntry, i, err)
		}
		labels = append(labels, Label{Name: string(name), Hash: hash})
	}
	return labels, nil
}

// WriteTBL writes a .tbl sidecar for the given labels.
func WriteTBL(path string, labels []Label) error {
	enc := charmap.Windows1252.NewEncoder()
	buf := make([]byte, 8, 8+len(labels)*24)
	binary.LittleEndian.PutUint32(buf, tblMagic)
	binary.LittleEndian.PutUint32(buf[4:], uint32(len(labels)))

	for _, l := range labels {
		raw, err := enc.Bytes([]byte(l.Name))
		if err != nil {
			return fmt.Errorf("label %q: %w", l.Name, err)
		}
		var rec [10]byte
		binary.LittleEndian.PutUint64(rec[:], l.Hash)
		binary.LittleEndian.PutUint16(rec[8:], uint16(len(raw)))
		buf = append(buf, rec[:]...)
		buf = append(buf, raw...)
	}
	return writeFileAtomic(path, buf)
}

// ApplyLabels pairs sidecar labels with entries by position. Entries
// past the end of a short sidecar get an UNKNOWN_<index> placeholder,
// so a structured rendering always carries a usable identifier.
func ApplyLabels(tf *TextFile, labels []Label) {
	for i := range tf.Entries {
		if i < len(labels) {
			tf.Entries[i].Label = labels[i].Name
		} else if len(labels) > 0 {
			tf.Entries[i].Label = fmt.Sprintf("UNKNOWN_%d", i)
		}
	}
}
