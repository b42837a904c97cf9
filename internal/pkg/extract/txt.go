package extract

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// fromTXT decodes the file as UTF-8, falling back to Latin-1 for legacy
// single-byte files.
func fromTXT(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode txt failed: %w", err)
	}
	return string(decoded), nil
}
