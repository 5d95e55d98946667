package engine

import (
	"fmt"
	"strings"
)

// ParseRows tokenizes normalized text (LF line breaks) into rows of cells
// using quoted-CSV semantics: a field opened with the quote character may
// contain delimiters and line breaks, and a doubled quote stands for a
// literal quote. Leading spaces are kept. On a structural tokenizer error
// the whole text is re-split naively per line; that path never fails.
func ParseRows(text string, delimiter, quote rune) [][]string {
	rows, err := tokenizeRows(text, delimiter, quote)
	if err != nil {
		return splitRowsNaive(text, delimiter)
	}
	return rows
}

func tokenizeRows(text string, delimiter, quote rune) ([][]string, error) {
	rows := make([][]string, 0)
	row := make([]string, 0)
	var field strings.Builder

	inQuotes := false   // currently inside a quoted field
	quoted := false     // current field was opened with a quote
	closed := false     // quoted field closed; only delimiter or newline may follow
	sawContent := false // current row consumed at least one non-newline rune

	endField := func() {
		row = append(row, field.String())
		field.Reset()
		quoted = false
		closed = false
	}

	runes := []rune(text)
	n := len(runes)
	for i := 0; i < n; i++ {
		ch := runes[i]
		switch {
		case inQuotes:
			if ch != quote {
				field.WriteRune(ch)
				continue
			}
			if i+1 < n && runes[i+1] == quote {
				field.WriteRune(quote)
				i++
				continue
			}
			inQuotes = false
			closed = true

		case ch == '\n':
			// A fully blank line is an empty row, not [""].
			if sawContent {
				endField()
				rows = append(rows, row)
			} else {
				rows = append(rows, []string{})
			}
			row = make([]string, 0)
			sawContent = false

		case ch == delimiter:
			sawContent = true
			endField()

		case closed:
			return nil, fmt.Errorf("unexpected character %q after closing quote", ch)

		case ch == quote:
			if field.Len() > 0 || quoted {
				return nil, fmt.Errorf("bare quote in unquoted field")
			}
			inQuotes = true
			quoted = true
			sawContent = true

		default:
			field.WriteRune(ch)
			sawContent = true
		}
	}

	if inQuotes {
		return nil, fmt.Errorf("unterminated quoted field")
	}
	// Text not ending in a newline leaves a pending row; a trailing newline
	// does not produce a phantom empty row.
	if sawContent {
		endField()
		rows = append(rows, row)
	}
	return rows, nil
}

// splitRowsNaive is the parser's last resort: split every line on the raw
// delimiter, ignoring quoting entirely. An empty line yields an empty row.
func splitRowsNaive(text string, delimiter rune) [][]string {
	lines := strings.Split(text, "\n")
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			rows = append(rows, []string{})
			continue
		}
		rows = append(rows, strings.Split(line, string(delimiter)))
	}
	return rows
}
