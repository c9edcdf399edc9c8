package convert

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// shapeSeparator joins shape texts across the whole deck. It sits between
// every pair of text-bearing shapes globally, not just between slides; that
// matches the original output contract and is covered by tests.
const shapeSeparator = "\n---\n"

// slidePathRe matches slide parts inside a .pptx zip and captures the slide number.
var slidePathRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// extractPPTX extracts text from .pptx bytes. PPTX is a ZIP with one
// ppt/slides/slideN.xml per slide (Office Open XML). Slides are read in
// numeric order of N; within a slide, every shape carrying a text body
// (p:sp with p:txBody) contributes one entry, empty text included.
func extractPPTX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", &MalformedError{Format: "pptx", Err: fmt.Errorf("not a zip: %w", err)}
	}

	type slidePart struct {
		num  int
		file *zip.File
	}
	var slides []slidePart
	for _, f := range zr.File {
		m := slidePathRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slides = append(slides, slidePart{num: n, file: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var shapes []string
	for _, s := range slides {
		rc, err := s.file.Open()
		if err != nil {
			return "", &MalformedError{Format: "pptx", Err: fmt.Errorf("open %s: %w", s.file.Name, err)}
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			_ = rc.Close()
			return "", &MalformedError{Format: "pptx", Err: fmt.Errorf("read %s: %w", s.file.Name, err)}
		}
		_ = rc.Close()
		texts, err := slideShapeTexts(buf.Bytes())
		if err != nil {
			return "", &MalformedError{Format: "pptx", Err: fmt.Errorf("%s: %w", s.file.Name, err)}
		}
		shapes = append(shapes, texts...)
	}
	return strings.Join(shapes, shapeSeparator), nil
}

// slideShapeTexts walks one slide's XML and returns the text of every shape
// with a text body, in the slide's native order. Within a shape, paragraphs
// (a:p) are joined by newline; runs (a:t) are concatenated and a:br becomes
// a newline.
func slideShapeTexts(slideXML []byte) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(slideXML))
	var (
		texts     []string
		cur       strings.Builder
		inShape   bool
		hasBody   bool
		inBody    bool
		inText    bool
		paraCount int
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse slide xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "sp":
				inShape = true
				hasBody = false
				paraCount = 0
				cur.Reset()
			case "txBody":
				if inShape {
					hasBody = true
					inBody = true
				}
			case "p":
				if inBody {
					if paraCount > 0 {
						cur.WriteByte('\n')
					}
					paraCount++
				}
			case "t":
				if inBody {
					inText = true
				}
			case "br":
				if inBody {
					cur.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "sp":
				if inShape && hasBody {
					texts = append(texts, cur.String())
				}
				inShape = false
				inBody = false
			case "txBody":
				inBody = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}
	return texts, nil
}
