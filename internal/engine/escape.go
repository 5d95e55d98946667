package engine

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/csv-escape/backend/internal/models"
)

// BOM is the byte-order-mark prepended for BOM-requesting profiles.
const BOM = "\uFEFF"

// dangerousPrefixes are the leading characters spreadsheets interpret as
// formula starts.
const dangerousPrefixes = "=+-@\t"

var numericCellRe = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// SerializeRows renders rows back to CSV text per the effective config:
// per-cell trimming, null substitution, formula-injection mitigation, quote
// policy, escape style, line terminator, and a single BOM when requested.
func SerializeRows(rows [][]string, cfg models.EffectiveConfig) string {
	terminator := "\n"
	if cfg.LineEnding == models.LineEndingCRLF {
		terminator = "\r\n"
	}

	delimiter := firstRune(cfg.Delimiter, ',')
	quote := firstRune(cfg.QuoteChar, '"')

	var out strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				out.WriteRune(delimiter)
			}
			out.WriteString(renderCell(cell, cfg, delimiter, quote))
		}
		out.WriteString(terminator)
	}

	text := out.String()
	if cfg.AddBOM && !strings.HasPrefix(text, BOM) {
		text = BOM + text
	}
	return text
}

func renderCell(cell string, cfg models.EffectiveConfig, delimiter, quote rune) string {
	value := cell

	switch cfg.TrimWhitespace {
	case models.TrimLeft:
		value = strings.TrimLeftFunc(value, unicode.IsSpace)
	case models.TrimRight:
		value = strings.TrimRightFunc(value, unicode.IsSpace)
	case models.TrimBoth:
		value = strings.TrimFunc(value, unicode.IsSpace)
	}

	if cfg.NullRepresentation != nil && value == "" {
		value = *cfg.NullRepresentation
	}

	if cfg.ExcelInjectionProtection != models.InjectionNone && value != "" {
		if strings.ContainsRune(dangerousPrefixes, rune(value[0])) {
			switch cfg.ExcelInjectionProtection {
			case models.InjectionPrefixQuote:
				value = "'" + value
			case models.InjectionStripFormula:
				for value != "" && strings.ContainsRune(dangerousPrefixes, rune(value[0])) {
					value = value[1:]
				}
			}
		}
	}

	if !needsQuoting(value, cfg.QuotePolicy, delimiter, quote) {
		return value
	}

	quoteStr := string(quote)
	escaped := value
	switch cfg.EscapeStyle {
	case models.EscapeStyleBackslash:
		escaped = strings.ReplaceAll(escaped, quoteStr, `\`+quoteStr)
	default:
		// rfc4180 / double, and anything unrecognized degrades here.
		escaped = strings.ReplaceAll(escaped, quoteStr, quoteStr+quoteStr)
	}
	return quoteStr + escaped + quoteStr
}

func needsQuoting(value string, policy models.QuotePolicy, delimiter, quote rune) bool {
	switch policy {
	case models.QuoteAll:
		return true
	case models.QuoteNonNumeric:
		return !numericCellRe.MatchString(value)
	default: // minimal
		return strings.ContainsAny(value, string(delimiter)+string(quote)+"\r\n")
	}
}

func firstRune(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}
