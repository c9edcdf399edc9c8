package convert

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// docxDocumentXMLPath is the default path to the main document body inside a .docx zip.
const docxDocumentXMLPath = "word/document.xml"

// contentTypesPath is the path to [Content_Types].xml in OOXML packages.
const contentTypesPath = "[Content_Types].xml"

// docxMainContentType is the content type for the main document in DOCX files.
const docxMainContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"

// partNameRe extracts PartName from Override elements in [Content_Types].xml.
var partNameRe = regexp.MustCompile(`<Override[^>]+PartName="([^"]+)"[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"`)

// partNameRe2 handles the case where ContentType appears before PartName.
var partNameRe2 = regexp.MustCompile(`<Override[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"[^>]+PartName="([^"]+)"`)

// findDocxMainDocumentPath finds the main document path from [Content_Types].xml.
// Returns the path without leading slash, or empty string if not found.
func findDocxMainDocumentPath(zr *zip.Reader) string {
	for _, f := range zr.File {
		if f.Name != contentTypesPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return ""
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			_ = rc.Close()
			return ""
		}
		_ = rc.Close()

		content := buf.String()
		// Try both attribute orders
		if matches := partNameRe.FindStringSubmatch(content); len(matches) > 1 {
			return strings.TrimPrefix(matches[1], "/")
		}
		if matches := partNameRe2.FindStringSubmatch(content); len(matches) > 1 {
			return strings.TrimPrefix(matches[1], "/")
		}
		return ""
	}
	return ""
}

// extractDOCX extracts text from .docx bytes. DOCX is a ZIP containing
// word/document.xml (OOXML). Output is one line per body-level paragraph,
// joined by newline, with empty paragraphs kept as empty lines, so the line
// count equals the paragraph count. Table, header, and footer text is
// excluded: tables live under w:tbl inside the body and headers/footers in
// separate package parts that are never read.
func extractDOCX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", &MalformedError{Format: "docx", Err: fmt.Errorf("not a zip: %w", err)}
	}

	// Find main document path from [Content_Types].xml, fall back to default
	docPath := findDocxMainDocumentPath(zr)
	if docPath == "" {
		docPath = docxDocumentXMLPath
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != docPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", &MalformedError{Format: "docx", Err: fmt.Errorf("open %s: %w", f.Name, err)}
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			_ = rc.Close()
			return "", &MalformedError{Format: "docx", Err: fmt.Errorf("read %s: %w", f.Name, err)}
		}
		_ = rc.Close()
		docXML = buf.Bytes()
		break
	}
	if docXML == nil {
		return "", &MalformedError{Format: "docx", Err: fmt.Errorf("%s not found", docPath)}
	}
	paras, err := docxBodyParagraphs(docXML)
	if err != nil {
		return "", &MalformedError{Format: "docx", Err: err}
	}
	return strings.Join(paras, "\n"), nil
}

// docxBodyParagraphs walks the document XML and returns the text of every
// paragraph that is a direct child of w:body, in document order. Runs are
// concatenated; w:tab becomes \t, w:br and w:cr become \n. Paragraph nesting
// is tracked the same way tables are: a w:p inside a body paragraph (text
// boxes via w:txbxContent) is not a body paragraph, contributes no text, and
// must not terminate the paragraph that contains it.
func docxBodyParagraphs(docXML []byte) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(docXML))
	var (
		paras    []string
		cur      strings.Builder
		inBody   bool
		inText   bool
		pDepth   int
		tblDepth int
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "body":
				inBody = true
			case "tbl":
				tblDepth++
			case "p":
				if inBody && tblDepth == 0 {
					if pDepth == 0 {
						cur.Reset()
					}
					pDepth++
				}
			case "t":
				if pDepth == 1 {
					inText = true
				}
			case "tab":
				if pDepth == 1 && !inText {
					cur.WriteByte('\t')
				}
			case "br", "cr":
				if pDepth == 1 {
					cur.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "body":
				inBody = false
			case "tbl":
				if tblDepth > 0 {
					tblDepth--
				}
			case "p":
				if inBody && tblDepth == 0 && pDepth > 0 {
					pDepth--
					if pDepth == 0 {
						paras = append(paras, cur.String())
					}
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}
	return paras, nil
}
