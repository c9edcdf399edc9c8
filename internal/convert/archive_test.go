package convert

import (
	"strings"
	"testing"
)

func TestConvert_archiveProvenance(t *testing.T) {
	c := NewConverter()
	content := buildZip(t,
		zipEntry{"a.txt", []byte("hello")},
		zipEntry{"b.txt", []byte("world")},
	)
	got := c.Convert("bundle.zip", content)
	want := "--- Content from: a.txt ---\nhello\n\n--- Content from: b.txt ---\nworld"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConvert_archiveKeepsDirectoryOrder(t *testing.T) {
	c := NewConverter()
	// Entries deliberately not in name order; output follows archive order.
	content := buildZip(t,
		zipEntry{"z.txt", []byte("last name, first entry")},
		zipEntry{"a.txt", []byte("first name, last entry")},
	)
	got := c.Convert("bundle.zip", content)
	if !strings.HasPrefix(got, "--- Content from: z.txt ---") {
		t.Errorf("archive order not preserved: %q", got)
	}
}

func TestConvert_archiveFiltersNoiseEntries(t *testing.T) {
	c := NewConverter()
	content := buildZip(t,
		zipEntry{"__MACOSX/._a.txt", []byte("resource fork")},
		zipEntry{"docs/", nil},
		zipEntry{"docs/a.txt", []byte("real content")},
	)
	got := c.Convert("bundle.zip", content)
	want := "--- Content from: docs/a.txt ---\nreal content"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConvert_nestedArchive(t *testing.T) {
	c := NewConverter()
	inner := buildZip(t, zipEntry{"c.txt", []byte("deep")})
	outer := buildZip(t, zipEntry{"inner.zip", inner})
	got := c.Convert("outer.zip", outer)
	want := "--- Content from: inner.zip ---\n--- Content from: c.txt ---\ndeep"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConvert_emptyArchive(t *testing.T) {
	c := NewConverter()
	got := c.Convert("empty.zip", buildZip(t))
	if got != "" {
		t.Errorf("got %q", got)
	}
}

func TestConvert_archiveMixedFormats(t *testing.T) {
	c := NewConverter()
	content := buildZip(t,
		zipEntry{"doc.docx", buildDocx(t, docxBody(`<w:p><w:r><w:t>from word</w:t></w:r></w:p>`))},
		zipEntry{"readme.txt", []byte("from text")},
		zipEntry{"data.bin", []byte{0xde, 0xad}},
	)
	got := c.Convert("bundle.zip", content)
	want := "--- Content from: doc.docx ---\nfrom word\n\n" +
		"--- Content from: readme.txt ---\nfrom text\n\n" +
		"--- Content from: data.bin ---\nFile type '.bin' is not supported."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConvert_corruptEntryIsolatedEmptyMode(t *testing.T) {
	c := NewConverter()
	content := buildZip(t,
		zipEntry{"broken.docx", []byte("not a package")},
		zipEntry{"ok.txt", []byte("survives")},
	)
	got := c.Convert("bundle.zip", content)
	want := "--- Content from: broken.docx ---\n\n\n--- Content from: ok.txt ---\nsurvives"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConvert_corruptEntryIsolatedInlineMode(t *testing.T) {
	c := NewConverter(WithErrorMode(ErrorModeInline))
	content := buildZip(t,
		zipEntry{"broken.docx", []byte("not a package")},
		zipEntry{"ok.txt", []byte("survives")},
	)
	got := c.Convert("bundle.zip", content)
	if !strings.Contains(got, "--- Content from: broken.docx ---\nAn error occurred while processing 'broken.docx':") {
		t.Errorf("inline failure missing: %q", got)
	}
	if !strings.Contains(got, "--- Content from: ok.txt ---\nsurvives") {
		t.Errorf("sibling not extracted: %q", got)
	}
}

func TestConvert_depthCeiling(t *testing.T) {
	c := NewConverter(WithErrorMode(ErrorModeInline), WithMaxDepth(1))
	inner := buildZip(t, zipEntry{"c.txt", []byte("deep")})
	outer := buildZip(t,
		zipEntry{"flat.txt", []byte("fine")},
		zipEntry{"inner.zip", inner},
	)
	got := c.Convert("outer.zip", outer)
	if !strings.Contains(got, "--- Content from: flat.txt ---\nfine") {
		t.Errorf("flat entry should convert: %q", got)
	}
	if !strings.Contains(got, "An error occurred while processing 'inner.zip':") {
		t.Errorf("nested zip should hit the depth ceiling: %q", got)
	}
	if strings.Contains(got, "deep") {
		t.Errorf("nested content should not be extracted: %q", got)
	}
}

func TestConvert_byteCeiling(t *testing.T) {
	c := NewConverter(WithErrorMode(ErrorModeInline), WithMaxArchiveBytes(4))
	content := buildZip(t, zipEntry{"a.txt", []byte("hello")})
	got := c.Convert("bundle.zip", content)
	if !strings.Contains(got, "An error occurred while processing 'a.txt':") {
		t.Errorf("oversized entry should fail: %q", got)
	}
}

func TestConvert_byteCeilingUnderLimit(t *testing.T) {
	c := NewConverter(WithMaxArchiveBytes(1024))
	content := buildZip(t, zipEntry{"a.txt", []byte("hello")})
	got := c.Convert("bundle.zip", content)
	if got != "--- Content from: a.txt ---\nhello" {
		t.Errorf("got %q", got)
	}
}
