// Package extract pulls plain text out of uploaded documents.
// Supported formats: PDF, TXT and DOCX.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrUnsupportedType = errors.New("unsupported file type")

// Supported reports whether the filename's extension can be extracted.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".txt", ".docx":
		return true
	}
	return false
}

// Text extracts plain text from the file content, dispatching on extension.
// The result is trimmed; an empty result means the file had no extractable text.
func Text(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var text string
	var err error
	switch ext {
	case ".pdf":
		text, err = fromPDF(data)
	case ".txt":
		text, err = fromTXT(data)
	case ".docx":
		text, err = fromDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
