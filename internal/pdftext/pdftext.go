package pdftext

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	ErrInvalidRange = errors.New("page range out of bounds")
	ErrNotPDF       = errors.New("not a PDF file")
)

// Document is an opened PDF. It owns the underlying file handle; the
// caller must Close it before opening a replacement.
type Document struct {
	path   string
	file   *os.File
	reader *pdf.Reader
}

// ExtractedText is the plain text of a page range, tagged with the
// range it came from.
type ExtractedText struct {
	Text      string
	StartPage int
	EndPage   int
}

// Open validates path and opens the PDF it names.
func Open(path string) (*Document, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("empty file path")
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return nil, fmt.Errorf("%s: %w", path, ErrNotPDF)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("locate %s: %w", path, err)
	}

	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Document{path: path, file: file, reader: reader}, nil
}

func (d *Document) Path() string {
	return d.path
}

func (d *Document) PageCount() int {
	return d.reader.NumPage()
}

func (d *Document) Close() error {
	return d.file.Close()
}

// Extract concatenates the plain text of the inclusive 1-based page
// range, in page order. Whatever separators the text layer yields are
// passed through untouched.
func (d *Document) Extract(startPage, endPage int) (ExtractedText, error) {
	if err := checkRange(startPage, endPage, d.PageCount()); err != nil {
		return ExtractedText{}, err
	}

	var builder strings.Builder
	for num := startPage; num <= endPage; num++ {
		page := d.reader.Page(num)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return ExtractedText{}, fmt.Errorf("extract page %d of %s: %w", num, d.path, err)
		}
		builder.WriteString(text)
	}

	return ExtractedText{
		Text:      builder.String(),
		StartPage: startPage,
		EndPage:   endPage,
	}, nil
}

func checkRange(startPage, endPage, pageCount int) error {
	if startPage < 1 || startPage > endPage || endPage > pageCount {
		return fmt.Errorf("pages %d-%d of %d: %w", startPage, endPage, pageCount, ErrInvalidRange)
	}
	return nil
}
