package pdfvalidation

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

var ErrNotPDF = errors.New("content is not a PDF document")

// Result describes a parsed PDF
type Result struct {
	PageCount int
	Text      string
}

// Inspect parses content and returns its page count and plain text
func Inspect(content []byte) (*Result, error) {
	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		return nil, ErrNotPDF
	}

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}

	result := &Result{PageCount: reader.NumPage()}

	var text strings.Builder
	for i := 1; i <= result.PageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", i, err)
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}
	result.Text = text.String()

	return result, nil
}
