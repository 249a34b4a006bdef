// Copyright (c) 2025 Digote
// SPDX-License-Identifier: MIT

package pokedat

import (
	"errors"
	"reflect"
	"testing"
)

func namedFileOf(name string, texts ...string) NamedFile {
	entries := make([]Entry, len(texts))
	for i, s := range texts {
		entries[i] = Entry{ID: i, Text: s}
	}
	return NamedFile{Name: name, Entries: entries}
}

func TestMergeSplitRoundTrip(t *testing.T) {
	files := []NamedFile{
		namedFileOf("a.dat", "Hello", "World", "Foo"),
		namedFileOf("b.dat", "Hello", "World", "Foo"),
	}
	merged, warns := Merge(files)
	if len(warns) != 0 {
		t.Fatalf("unexpected merge warnings: %v", warns)
	}

	want := "a.dat ~~~~\nHello\nWorld\nFoo\nb.dat ~~~~\nHello\nWorld\nFoo\n"
	if merged != want {
		t.Fatalf("merged = %q, want %q", merged, want)
	}

	if names := MergedNames(merged); !reflect.DeepEqual(names, []string{"a.dat", "b.dat"}) {
		t.Errorf("MergedNames = %v", names)
	}

	res, err := Split(merged, []int{3, 3})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
	if !reflect.DeepEqual(res.Files, files) {
		t.Errorf("split files = %+v, want %+v", res.Files, files)
	}
}

func TestSplitMissingLines(t *testing.T) {
	merged, _ := Merge([]NamedFile{
		namedFileOf("a.dat", "Hello", "World", "Foo"),
		namedFileOf("b.dat", "Hello", "World"),
	})
	res, err := Split(merged, []int{3, 3})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(res.Warnings), res.Warnings)
	}
	w := res.Warnings[0]
	if w.Kind != WarnMissingLines || w.File != "b.dat" || w.Want != 3 || w.Got != 2 {
		t.Errorf("warning = %+v", w)
	}
	if len(res.Files[1].Entries) != 2 {
		t.Errorf("short file was padded without being asked: %d entries", len(res.Files[1].Entries))
	}
}

func TestSplitPadShort(t *testing.T) {
	merged, _ := Merge([]NamedFile{namedFileOf("a.dat", "only line")})
	res, err := SplitWithOptions(merged, []int{3}, SplitOptions{PadShort: true})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	// Padding fills the gap but the warning still fires.
	if len(res.Warnings) != 1 || res.Warnings[0].Kind != WarnMissingLines {
		t.Fatalf("warnings = %v", res.Warnings)
	}
	entries := res.Files[0].Entries
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Text != "only line" || entries[1].Text != "" || entries[2].Text != "" {
		t.Errorf("padded entries = %+v", entries)
	}
}

func TestSplitExtraLines(t *testing.T) {
	merged, _ := Merge([]NamedFile{namedFileOf("a.dat", "one", "two", "three")})
	res, err := Split(merged, []int{2})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(res.Warnings))
	}
	w := res.Warnings[0]
	if w.Kind != WarnExtraLines || w.Want != 2 || w.Got != 3 {
		t.Errorf("warning = %+v", w)
	}
	if len(res.Files[0].Entries) != 3 {
		t.Errorf("extra line dropped: %d entries", len(res.Files[0].Entries))
	}
}

func TestMergeSeparatorCollision(t *testing.T) {
	_, warns := Merge([]NamedFile{
		namedFileOf("a.dat", "fine"),
		namedFileOf("b.dat", "before", "fake.dat ~~~~", "after"),
	})
	if len(warns) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warns), warns)
	}
	w := warns[0]
	if w.Kind != WarnSeparatorText || w.File != "b.dat" || w.Entry != 1 {
		t.Errorf("warning = %+v", w)
	}
}

func TestSplitUnknownSeparator(t *testing.T) {
	_, err := Split("Hello\nWorld\n", []int{3, 3})
	if !errors.Is(err, ErrUnknownSeparator) {
		t.Fatalf("Split = %v, want ErrUnknownSeparator", err)
	}
	_, err = Split("", []int{3, 3})
	if !errors.Is(err, ErrUnknownSeparator) {
		t.Fatalf("Split on empty input = %v, want ErrUnknownSeparator", err)
	}
}

func TestSplitSingleFileNoSeparator(t *testing.T) {
	res, err := Split("Hello\nWorld\n", []int{2})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(res.Files) != 1 || len(res.Files[0].Entries) != 2 {
		t.Fatalf("files = %+v", res.Files)
	}
	if res.Files[0].Name != "" {
		t.Errorf("unnamed segment got name %q", res.Files[0].Name)
	}
}

func TestSplitSkipsUnknownCounts(t *testing.T) {
	merged, _ := Merge([]NamedFile{
		namedFileOf("a.dat", "x"),
		namedFileOf("b.dat", "y", "z"),
	})
	res, err := Split(merged, []int{1, -1})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("negative count still checked: %v", res.Warnings)
	}
}

func TestParseSeparator(t *testing.T) {
	tests := []struct {
		line string
		name string
		ok   bool
	}{
		{"a.dat ~~~~", "a.dat", true},
		{"a.dat ~~~~~~~~~~", "a.dat", true},
		{"name with spaces.dat ~~~~", "name with spaces.dat", true},
		{"a.dat ~~~", "", false},
		{"a.dat ~~x~", "", false},
		{"~~~~", "", false},
		{"plain text line", "", false},
		{"", "", false},
	}
	for _, test := range tests {
		name, ok := parseSeparator(test.line)
		if name != test.name || ok != test.ok {
			t.Errorf("parseSeparator(%q) = %q, %v; want %q, %v",
				test.line, name, ok, test.name, test.ok)
		}
	}
}
