// Copyright (c) 2025 Digote
// SPDX-License-Identifier: MIT

package pokedat

import (
	"errors"
	"strings"
	"testing"
)

func TestRenderParsePlainInverse(t *testing.T) {
	tf := textFileOf(VersionLGPE, "Hello", "", `with\ntoken`, "last")

	text, err := Render(tf, FormPlain)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if text != "Hello\n\nwith\\ntoken\nlast\n" {
		t.Fatalf("render = %q", text)
	}

	entries, err := Parse(text, FormPlain)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != len(tf.Entries) {
		t.Fatalf("got %d entries, want %d", len(entries), len(tf.Entries))
	}
	for i, e := range entries {
		if e.ID != i {
			t.Errorf("entry %d id = %d", i, e.ID)
		}
		if e.Text != tf.Entries[i].Text {
			t.Errorf("entry %d = %q, want %q", i, e.Text, tf.Entries[i].Text)
		}
		if e.HasChecksum {
			t.Errorf("entry %d carries a checksum in plain form", i)
		}
	}
}

func TestRenderParseStructuredInverse(t *testing.T) {
	tf := &TextFile{
		Version: VersionSWSH,
		Entries: []Entry{
			{ID: 0, Label: "msg_hello", Text: "Hello", Checksum: 0xDEADBEEF, HasChecksum: true},
			{ID: 1, Text: "no label here", Checksum: 0x12345678, HasChecksum: true},
			{ID: 2, Label: "msg_bye", Text: "Bye!", Checksum: 0, HasChecksum: true},
		},
	}

	text, err := Render(tf, FormStructured)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	entries, err := Parse(text, FormStructured)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	if entries[0].Label != "msg_hello" || entries[0].Checksum != 0xDEADBEEF || !entries[0].HasChecksum {
		t.Errorf("entry 0 lost metadata: %+v", entries[0])
	}
	if entries[1].ID != 1 || entries[1].Label != "" {
		t.Errorf("entry 1 identifier not recovered: %+v", entries[1])
	}
	if entries[2].Text != "Bye!" || entries[2].Checksum != 0 {
		t.Errorf("entry 2 mismatch: %+v", entries[2])
	}
}

func TestParseStructuredNumericLabel(t *testing.T) {
	tf := &TextFile{
		Version: VersionSWSH,
		Entries: []Entry{
			{ID: 0, Label: "123", Text: "numeric label"},
			{ID: 1, Text: "positional"},
		},
	}
	text, err := Render(tf, FormStructured)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	entries, err := Parse(text, FormStructured)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if entries[0].Label != "123" || entries[0].ID != 0 {
		t.Errorf("numeric label lost: %+v", entries[0])
	}
	if entries[1].Label != "" || entries[1].ID != 1 {
		t.Errorf("positional id misread as label: %+v", entries[1])
	}
}

func TestRenderStructuredOmitsHash(t *testing.T) {
	tf := textFileOf(VersionLGPE, "no checksums in this profile")
	text, err := Render(tf, FormStructured)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(text, "hash") {
		t.Errorf("hash field present for a checksum-less profile:\n%s", text)
	}

	entries, err := Parse(text, FormStructured)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if entries[0].HasChecksum {
		t.Errorf("parse invented a checksum")
	}
}

func TestParseStructuredFieldErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing text", `[{"id": "a"}]`},
		{"missing id", `[{"id": "", "text": "x"}]`},
		{"duplicate id", `[{"id": "a", "text": "x"}, {"id": "a", "text": "y"}]`},
		{"bad hash", `[{"id": "a", "hash": "zz", "text": "x"}]`},
		{"not json", `nonsense`},
	}
	for _, test := range tests {
		if _, err := Parse(test.in, FormStructured); !errors.Is(err, ErrFieldMismatch) {
			t.Errorf("%s: Parse = %v, want ErrFieldMismatch", test.name, err)
		}
	}
}

func TestParsePlainEmpty(t *testing.T) {
	entries, err := Parse("", FormPlain)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries from empty input", len(entries))
	}
}
