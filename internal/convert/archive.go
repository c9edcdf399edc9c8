package convert

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// macosxPrefix marks macOS resource-fork noise entries inside zip archives.
const macosxPrefix = "__MACOSX/"

// extractArchive unwinds a zip archive: every qualifying entry is fully
// decompressed into memory and routed as its own document, and the results
// are wrapped in provenance blocks joined by a blank line. Entries keep the
// archive's internal directory order. __MACOSX/ noise and directory
// placeholders (names ending in /) are skipped. Nesting is unbounded unless
// a depth ceiling was configured.
//
// A failing entry never aborts its siblings: its block body collapses per
// the configured error mode, same as a top-level failure would.
func (c *Converter) extractArchive(st *budget, content []byte) (string, error) {
	if c.maxDepth > 0 && st.depth >= c.maxDepth {
		return "", &ArchiveError{Err: ErrDepthExceeded}
	}
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", &ArchiveError{Err: err}
	}

	var blocks []string
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, macosxPrefix) || strings.HasSuffix(f.Name, "/") {
			continue
		}
		if c.logger != nil {
			c.logger.Debug("processing archive entry", zap.String("name", f.Name))
		}
		body := c.convertEntry(st, f)
		blocks = append(blocks, fmt.Sprintf("--- Content from: %s ---\n%s", f.Name, body))
	}
	return strings.Join(blocks, "\n\n"), nil
}

// convertEntry materializes one archive member and routes it recursively.
// Errors are collapsed here so isolation is per entry.
func (c *Converter) convertEntry(st *budget, f *zip.File) string {
	data, err := c.readMember(st, f)
	if err != nil {
		return c.failure(f.Name, err)
	}
	st.depth++
	text, err := c.route(st, f.Name, data)
	st.depth--
	if err != nil {
		return c.failure(f.Name, err)
	}
	return text
}

// readMember fully decompresses f, charging its declared size against the
// byte budget before materializing anything.
func (c *Converter) readMember(st *budget, f *zip.File) ([]byte, error) {
	if err := st.charge(int64(f.UncompressedSize64)); err != nil {
		return nil, &ArchiveError{Err: err}
	}
	rc, err := f.Open()
	if err != nil {
		return nil, &ArchiveError{Err: fmt.Errorf("open %s: %w", f.Name, err)}
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &ArchiveError{Err: fmt.Errorf("read %s: %w", f.Name, err)}
	}
	return data, nil
}
