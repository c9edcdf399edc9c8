package convert

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
)

// zipEntry is a name/content pair for test archives.
type zipEntry struct {
	name    string
	content []byte
}

// buildZip writes entries into an in-memory zip in the given order.
func buildZip(t *testing.T, entries ...zipEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatalf("create %s: %v", e.name, err)
		}
		if _, err := w.Write(e.content); err != nil {
			t.Fatalf("write %s: %v", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestConvert_plain(t *testing.T) {
	c := NewConverter()
	got := c.Convert("notes.txt", []byte("Hello world\nLine 2"))
	if got != "Hello world\nLine 2" {
		t.Errorf("got %q", got)
	}
}

func TestConvert_plainInvalidUTF8(t *testing.T) {
	c := NewConverter()
	got := c.Convert("notes.txt", []byte("hello\x80world"))
	if got != "hello�world" {
		t.Errorf("got %q", got)
	}
}

func TestConvert_unsupportedExtension(t *testing.T) {
	c := NewConverter()
	got := c.Convert("image.xyz", []byte{0x01, 0x02})
	if got != "File type '.xyz' is not supported." {
		t.Errorf("got %q", got)
	}
}

func TestConvert_unsupportedCaseInsensitive(t *testing.T) {
	c := NewConverter()
	got := c.Convert("NOTES.TXT", []byte("upper"))
	if got != "upper" {
		t.Errorf("got %q", got)
	}
}

func TestConvert_noExtension(t *testing.T) {
	c := NewConverter()
	got := c.Convert("README", []byte("whatever"))
	if got != "File type '' is not supported." {
		t.Errorf("got %q", got)
	}
}

func TestConvert_emptyModeSuppressesFailure(t *testing.T) {
	c := NewConverter()
	got := c.Convert("broken.docx", []byte("not a zip at all"))
	if got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}

func TestConvert_inlineModeEmbedsFailure(t *testing.T) {
	c := NewConverter(WithErrorMode(ErrorModeInline))
	got := c.Convert("broken.docx", []byte("not a zip at all"))
	if !strings.HasPrefix(got, "An error occurred while processing 'broken.docx':") {
		t.Errorf("got %q", got)
	}
}

func TestExtract_returnsStructuredError(t *testing.T) {
	c := NewConverter()
	_, err := c.Extract("broken.zip", []byte("junk"))
	if err == nil {
		t.Fatal("expected error for corrupt archive")
	}
	var archiveErr *ArchiveError
	if !errors.As(err, &archiveErr) {
		t.Errorf("expected *ArchiveError, got %T: %v", err, err)
	}
}

func TestConvert_idempotent(t *testing.T) {
	c := NewConverter()
	content := buildZip(t,
		zipEntry{"a.txt", []byte("hello")},
		zipEntry{"b.txt", []byte("world")},
	)
	first := c.Convert("bundle.zip", content)
	second := c.Convert("bundle.zip", content)
	if first != second {
		t.Errorf("output not reproducible:\n%q\n%q", first, second)
	}
}

func TestParseErrorMode(t *testing.T) {
	if ParseErrorMode("inline") != ErrorModeInline {
		t.Error("inline should map to ErrorModeInline")
	}
	if ParseErrorMode("empty") != ErrorModeEmpty {
		t.Error("empty should map to ErrorModeEmpty")
	}
	if ParseErrorMode("") != ErrorModeEmpty {
		t.Error("unset should default to ErrorModeEmpty")
	}
}
