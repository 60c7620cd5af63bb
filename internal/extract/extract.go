// Package extract pulls raw text out of uploaded resume documents.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is wrapped by DocumentParseError when the file
// extension is not one we can read.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Format identifies a supported document type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "text"
)

// DocumentParseError reports a document that could not be read: corrupt
// binary, encrypted content, or an unsupported type.
type DocumentParseError struct {
	Name   string
	Format Format
	Err    error
}

func (e *DocumentParseError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("parse %s: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("parse %s (%s): %v", e.Name, e.Format, e.Err)
}

func (e *DocumentParseError) Unwrap() error {
	return e.Err
}

// DetectFormat maps a file name to a Format by extension.
func DetectFormat(name string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF, true
	case ".docx":
		return FormatDOCX, true
	case ".txt", ".md", ".text":
		return FormatText, true
	default:
		return "", false
	}
}

// Extract reads the in-memory document r of the given size and returns its
// text. name is only used to pick the format and to label errors.
func Extract(name string, r io.ReaderAt, size int64) (string, error) {
	format, ok := DetectFormat(name)
	if !ok {
		return "", &DocumentParseError{Name: name, Err: ErrUnsupportedFormat}
	}

	var (
		text string
		err  error
	)
	switch format {
	case FormatPDF:
		text, err = extractPDF(r, size)
	case FormatDOCX:
		text, err = extractDOCX(r, size)
	case FormatText:
		var buf bytes.Buffer
		_, err = io.Copy(&buf, io.NewSectionReader(r, 0, size))
		text = buf.String()
	}
	if err != nil {
		return "", &DocumentParseError{Name: name, Format: format, Err: err}
	}
	return text, nil
}

// ExtractFile loads the file at path into memory and extracts its text.
func ExtractFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return Extract(filepath.Base(path), bytes.NewReader(data), int64(len(data)))
}
