package convert

import (
	"strings"
	"testing"
)

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

// buildDocx wraps documentXML into a minimal .docx package.
func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	return buildZip(t,
		zipEntry{"[Content_Types].xml", []byte(docxContentTypes)},
		zipEntry{"word/document.xml", []byte(documentXML)},
	)
}

func docxBody(inner string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		inner + `</w:body></w:document>`
}

func TestExtractDOCX_paragraphs(t *testing.T) {
	content := buildDocx(t, docxBody(
		`<w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>Second</w:t></w:r><w:r><w:t xml:space="preserve"> paragraph</w:t></w:r></w:p>`))
	got, err := extractDOCX(content)
	if err != nil {
		t.Fatalf("extractDOCX: %v", err)
	}
	if got != "First paragraph\nSecond paragraph" {
		t.Errorf("got %q", got)
	}
}

func TestExtractDOCX_emptyParagraphsKept(t *testing.T) {
	// An empty paragraph is an empty line; line count must equal paragraph count.
	content := buildDocx(t, docxBody(
		`<w:p><w:r><w:t>A</w:t></w:r></w:p><w:p/><w:p><w:r><w:t>B</w:t></w:r></w:p>`))
	got, err := extractDOCX(content)
	if err != nil {
		t.Fatalf("extractDOCX: %v", err)
	}
	if got != "A\n\nB" {
		t.Errorf("got %q", got)
	}
	if n := len(strings.Split(got, "\n")); n != 3 {
		t.Errorf("expected 3 lines, got %d", n)
	}
}

func TestExtractDOCX_tableTextExcluded(t *testing.T) {
	content := buildDocx(t, docxBody(
		`<w:p><w:r><w:t>Before</w:t></w:r></w:p>`+
			`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell text</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`+
			`<w:p><w:r><w:t>After</w:t></w:r></w:p>`))
	got, err := extractDOCX(content)
	if err != nil {
		t.Fatalf("extractDOCX: %v", err)
	}
	if got != "Before\nAfter" {
		t.Errorf("got %q", got)
	}
}

func TestExtractDOCX_textBoxParagraphExcluded(t *testing.T) {
	// A text box nests a w:p inside a body paragraph. The nested paragraph
	// is not body text and must not cut the outer paragraph short.
	content := buildDocx(t, docxBody(
		`<w:p><w:r><w:t xml:space="preserve">start </w:t></w:r>`+
			`<w:r><w:pict><w:txbxContent><w:p><w:r><w:t>boxed</w:t></w:r></w:p></w:txbxContent></w:pict></w:r>`+
			`<w:r><w:t>end</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>second</w:t></w:r></w:p>`))
	got, err := extractDOCX(content)
	if err != nil {
		t.Fatalf("extractDOCX: %v", err)
	}
	if got != "start end\nsecond" {
		t.Errorf("got %q", got)
	}
}

func TestExtractDOCX_tabAndBreak(t *testing.T) {
	content := buildDocx(t, docxBody(
		`<w:p><w:r><w:t>a</w:t><w:tab/><w:t>b</w:t><w:br/><w:t>c</w:t></w:r></w:p>`))
	got, err := extractDOCX(content)
	if err != nil {
		t.Fatalf("extractDOCX: %v", err)
	}
	if got != "a\tb\nc" {
		t.Errorf("got %q", got)
	}
}

func TestExtractDOCX_emptyDocument(t *testing.T) {
	content := buildDocx(t, docxBody(``))
	got, err := extractDOCX(content)
	if err != nil {
		t.Fatalf("extractDOCX: %v", err)
	}
	if got != "" {
		t.Errorf("got %q", got)
	}
}

func TestExtractDOCX_contentTypesOverride(t *testing.T) {
	// Main document at a non-default path, resolved via [Content_Types].xml.
	types := strings.Replace(docxContentTypes, "/word/document.xml", "/word/document2.xml", 1)
	content := buildZip(t,
		zipEntry{"[Content_Types].xml", []byte(types)},
		zipEntry{"word/document2.xml", []byte(docxBody(`<w:p><w:r><w:t>moved</w:t></w:r></w:p>`))},
	)
	got, err := extractDOCX(content)
	if err != nil {
		t.Fatalf("extractDOCX: %v", err)
	}
	if got != "moved" {
		t.Errorf("got %q", got)
	}
}

func TestExtractDOCX_notAZip(t *testing.T) {
	_, err := extractDOCX([]byte("plainly not a package"))
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := err.(*MalformedError); !ok {
		t.Errorf("expected *MalformedError, got %T", err)
	}
}

func TestExtractDOCX_missingDocumentPart(t *testing.T) {
	content := buildZip(t, zipEntry{"word/styles.xml", []byte("<w:styles/>")})
	if _, err := extractDOCX(content); err == nil {
		t.Fatal("expected error for missing document part")
	}
}
