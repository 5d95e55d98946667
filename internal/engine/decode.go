package engine

import (
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrInvalidBase64 is the single error kind the engine surfaces to callers.
// Anything wrong with the CSV content itself degrades to Issues instead.
var ErrInvalidBase64 = errors.New("csv_b64 is not valid Base64 UTF-8 text")

// DecodeBase64Text turns a Base64 payload into UTF-8 text. Embedded
// whitespace (spaces, tabs, newlines) is stripped before strict decoding.
func DecodeBase64Text(csvB64 string) (string, error) {
	compact := strings.Join(strings.Fields(csvB64), "")
	raw, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return "", ErrInvalidBase64
	}
	if !utf8.Valid(raw) {
		return "", ErrInvalidBase64
	}
	return string(raw), nil
}
