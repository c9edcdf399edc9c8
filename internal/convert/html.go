package convert

// extractHTML converts HTML bytes to Markdown with ATX-style headings
// (#, ##, ...). Heading levels, lists, emphasis, and links survive in
// Markdown form. Decoding is lossy; invalid UTF-8 never fails.
func (c *Converter) extractHTML(content []byte) (string, error) {
	src, err := extractPlain(content)
	if err != nil {
		return "", err
	}
	out, err := c.html.ConvertString(src)
	if err != nil {
		return "", &MalformedError{Format: "html", Err: err}
	}
	return out, nil
}
