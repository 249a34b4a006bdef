// Copyright (c) 2025 Digote
// SPDX-License-Identifier: MIT

package pokedat

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestTBLRoundTrip(t *testing.T) {
	labels := []Label{
		{Name: "msg_hello", Hash: 0x1122334455667788},
		{Name: "café", Hash: 0xFFFFFFFFFFFFFFFF},
		{Name: "", Hash: 0},
	}
	path := filepath.Join(t.TempDir(), "common.tbl")
	if err := WriteTBL(path, labels); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadTBL(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(got, labels) {
		t.Errorf("labels = %+v, want %+v", got, labels)
	}
}

func TestTBLMagicBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "common.tbl")
	if err := WriteTBL(path, []Label{{Name: "x", Hash: 1}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// The game reads the magic as a little-endian u32 equal to
	// 0x42544841, so the file must start with these exact bytes.
	want := []byte{0x41, 0x48, 0x54, 0x42}
	for i, b := range want {
		if data[i] != b {
			t.Fatalf("magic bytes = % X, want % X", data[:4], want)
		}
	}
}

func TestTBLPath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"common.dat", "common.tbl"},
		{"dir/sub/common.dat", "dir/sub/common.tbl"},
		{"noext", "noext.tbl"},
	}
	for _, test := range tests {
		if got := TBLPath(test.in); got != test.want {
			t.Errorf("TBLPath(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestParseTBLBadMagic(t *testing.T) {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint32(data, 0x12345678)
	if _, err := parseTBL(data); !errors.Is(err, ErrMalformedHeader) {
		t.Fatalf("parseTBL = %v, want ErrMalformedHeader", err)
	}
}

func TestParseTBLTruncated(t *testing.T) {
	if _, err := parseTBL([]byte{0x42, 0x54}); !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("parseTBL = %v, want ErrTruncatedInput", err)
	}

	// Count claims one label but the record is missing.
	data := make([]byte, 8)
	binary.LittleEndian.PutUint32(data, tblMagic)
	binary.LittleEndian.PutUint32(data[4:], 1)
	if _, err := parseTBL(data); !errors.Is(err, ErrMalformedEntry) {
		t.Fatalf("parseTBL = %v, want ErrMalformedEntry", err)
	}
}

func TestParseTBLNamePadding(t *testing.T) {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint32(data, tblMagic)
	binary.LittleEndian.PutUint32(data[4:], 1)
	var rec [10]byte
	binary.LittleEndian.PutUint64(rec[:], 0xABCD)
	binary.LittleEndian.PutUint16(rec[8:], 6)
	data = append(data, rec[:]...)
	data = append(data, 'a', 'b', 'c', 0, 0, 0)

	labels, err := parseTBL(data)
	if err != nil {
		t.Fatalf("parseTBL: %v", err)
	}
	if labels[0].Name != "abc" || labels[0].Hash != 0xABCD {
		t.Errorf("label = %+v", labels[0])
	}
}

func TestReadTBLMissingFile(t *testing.T) {
	_, err := ReadTBL(filepath.Join(t.TempDir(), "missing.tbl"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("ReadTBL = %v, want not-exist", err)
	}
}

func TestApplyLabels(t *testing.T) {
	tf := textFileOf(VersionSWSH, "a", "b", "c")
	ApplyLabels(tf, []Label{{Name: "first"}, {Name: "second"}})
	if tf.Entries[0].Label != "first" || tf.Entries[1].Label != "second" {
		t.Errorf("labels not applied: %+v", tf.Entries)
	}
	if tf.Entries[2].Label != "UNKNOWN_2" {
		t.Errorf("entry past sidecar = %q, want UNKNOWN_2", tf.Entries[2].Label)
	}

	// No labels at all leaves entries unlabeled.
	tf = textFileOf(VersionSWSH, "a")
	ApplyLabels(tf, nil)
	if tf.Entries[0].Label != "" {
		t.Errorf("label invented from empty sidecar: %q", tf.Entries[0].Label)
	}
}
