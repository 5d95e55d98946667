package engine

import "strings"

// Detected line-ending classes. Lone CR is treated as CRLF-class.
const (
	DetectedCRLF = "crlf"
	DetectedLF   = "lf"
	DetectedNone = "none"
)

// NormalizeLineEndings rewrites every line break to a single LF and reports
// the detected class of the original text.
func NormalizeLineEndings(text string) (string, string) {
	switch {
	case strings.Contains(text, "\r\n"):
		normalized := strings.ReplaceAll(text, "\r\n", "\n")
		normalized = strings.ReplaceAll(normalized, "\r", "\n")
		return normalized, DetectedCRLF
	case strings.Contains(text, "\r"):
		return strings.ReplaceAll(text, "\r", "\n"), DetectedCRLF
	case strings.Contains(text, "\n"):
		return text, DetectedLF
	default:
		return text, DetectedNone
	}
}

// delimiterCandidates is the fixed candidate order; on a tie the first
// maximum wins.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

// DetectDelimiter counts candidate occurrences in the sample and picks the
// most frequent one. All-zero counts default to comma.
func DetectDelimiter(sample string) rune {
	best := ','
	bestCount := 0
	for _, cand := range delimiterCandidates {
		if n := strings.Count(sample, string(cand)); n > bestCount {
			best = cand
			bestCount = n
		}
	}
	return best
}

// FirstNonBlankLine returns the first line with visible content, or ""
// when every line is blank.
func FirstNonBlankLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}
