// Copyright (c) 2025 Digote
// SPDX-License-Identifier: MIT

package pokedat

import (
	"fmt"
	"os"
	"path/filepath"
)

// DecodeFile reads, decrypts and decodes one container. When a .tbl
// sidecar sits next to the file its labels are applied to the entries;
// a missing or unreadable sidecar is not an error.
func DecodeFile(path string, p *Profile) (*TextFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	plain, err := Decrypt(raw, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tf, err := Decode(plain, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if labels, err := ReadTBL(TBLPath(path)); err == nil {
		ApplyLabels(tf, labels)
	}
	return tf, nil
}

// EncodeFile encodes, encrypts and writes one container. The write is
// atomic: data goes to a temp file in the target directory first and
// is renamed into place, so a failure never leaves a partial .dat
// behind.
func EncodeFile(path string, tf *TextFile, p *Profile) error {
	plain, err := Encode(tf, p)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	raw, err := Encrypt(plain, p)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return writeFileAtomic(path, raw)
}

// writeFileAtomic writes data to a sibling temp file and renames it
// into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".dat_*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
