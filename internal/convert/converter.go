// Package convert extracts plain text from document container formats:
// Word (.docx), Excel (.xlsx), PowerPoint (.pptx), HTML, zip archives of
// any of these, and plain text. Dispatch is by file extension; zip archives
// are unwound recursively with a provenance header per member.
package convert

import (
	"fmt"
	"path/filepath"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"go.uber.org/zap"
)

// Converter converts a named byte stream to text. Every conversion is a pure
// function of its inputs; a Converter holds only configuration and is safe
// for concurrent use.
type Converter struct {
	mode     ErrorMode
	maxDepth int         // 0 = unlimited
	maxBytes int64       // total decompressed bytes per call, 0 = unlimited
	logger   *zap.Logger // optional; receives suppressed failure reasons
	html     *md.Converter
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithErrorMode sets how failures surface in output. The mode is applied
// uniformly, including per archive entry during recursion.
func WithErrorMode(m ErrorMode) ConverterOption {
	return func(c *Converter) { c.mode = m }
}

// WithLogger sets a logger for suppressed failures and per-entry progress.
func WithLogger(l *zap.Logger) ConverterOption {
	return func(c *Converter) { c.logger = l }
}

// WithMaxDepth caps archive nesting. 0 (the default) means unlimited.
func WithMaxDepth(n int) ConverterOption {
	return func(c *Converter) { c.maxDepth = n }
}

// WithMaxArchiveBytes caps the total decompressed bytes materialized during
// one conversion, across all nesting levels. 0 (the default) means unlimited.
func WithMaxArchiveBytes(n int64) ConverterOption {
	return func(c *Converter) { c.maxBytes = n }
}

// NewConverter returns a Converter. With no options it matches the original
// behavior: empty error mode, no depth or size ceiling.
func NewConverter(opts ...ConverterOption) *Converter {
	c := &Converter{}
	for _, opt := range opts {
		opt(c)
	}
	c.html = md.NewConverter("", true, &md.Options{HeadingStyle: "atx"})
	return c
}

// Convert extracts text from content, dispatching on name's extension.
// It never fails: extraction errors collapse per the configured ErrorMode.
// An unrecognized extension is a successful result, not an error.
func (c *Converter) Convert(name string, content []byte) string {
	text, err := c.Extract(name, content)
	if err != nil {
		return c.failure(name, err)
	}
	return text
}

// Extract is Convert without the top-level error collapse: callers that need
// the failure reason (e.g. to surface it out-of-band) get a structured
// error. Failures of individual archive entries are still isolated per the
// configured mode; only a top-level failure reaches the caller as an error.
func (c *Converter) Extract(name string, content []byte) (string, error) {
	st := &budget{depth: 0, bytesLeft: c.maxBytes, limited: c.maxBytes > 0}
	return c.route(st, name, content)
}

// budget tracks per-call recursion state. A Converter itself never carries
// state across calls.
type budget struct {
	depth     int
	bytesLeft int64
	limited   bool
}

func (b *budget) charge(n int64) error {
	if !b.limited {
		return nil
	}
	if n > b.bytesLeft {
		return ErrBytesExceeded
	}
	b.bytesLeft -= n
	return nil
}

// route dispatches on the lowercase extension of name. Zip handling recurses
// back through route for every archive member.
func (c *Converter) route(st *budget, name string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".docx":
		return extractDOCX(content)
	case ".xlsx":
		return extractExcel(content)
	case ".pptx":
		return extractPPTX(content)
	case ".html":
		return c.extractHTML(content)
	case ".zip":
		return c.extractArchive(st, content)
	case ".txt":
		return extractPlain(content)
	default:
		return fmt.Sprintf("File type '%s' is not supported.", ext), nil
	}
}

// failure collapses err per the configured mode. In empty mode the reason
// only reaches the logger.
func (c *Converter) failure(name string, err error) string {
	if c.mode == ErrorModeInline {
		return InlineFailure(name, err)
	}
	if c.logger != nil {
		c.logger.Warn("conversion failed", zap.String("name", name), zap.Error(err))
	}
	return ""
}
