package engine

import (
	"fmt"

	"github.com/csv-escape/backend/internal/models"
)

// isEmptyRow reports whether a row is structurally empty: zero cells, or a
// single cell holding the empty string.
func isEmptyRow(row []string) bool {
	return len(row) == 0 || (len(row) == 1 && row[0] == "")
}

// columnMode returns the most frequent column count. Ties break on first
// occurrence in scan order, mirroring the delimiter tie-break rule.
func columnMode(counts []int) int {
	freq := make(map[int]int, len(counts))
	for _, c := range counts {
		freq[c]++
	}
	mode := 0
	best := 0
	for _, c := range counts {
		if freq[c] > best {
			mode = c
			best = freq[c]
		}
	}
	return mode
}

// AnalyzeStructure computes column-count statistics over structurally
// non-empty rows and records a descriptive COLUMN_COUNT_MISMATCH issue for
// every row diverging from the mode. Row numbers are 1-based positions in
// the full parsed sequence, counting rows the statistics skip. The row data
// is never mutated here.
func AnalyzeStructure(rows [][]string, delimiter rune, hasHeader *bool) (models.Stats, []models.Issue) {
	issues := make([]models.Issue, 0)

	counts := make([]int, 0, len(rows))
	for _, row := range rows {
		if !isEmptyRow(row) {
			counts = append(counts, len(row))
		}
	}

	if len(counts) == 0 {
		return models.Stats{
			DelimiterDetected: string(delimiter),
			HasHeader:         hasHeader,
		}, issues
	}

	columnsMin := counts[0]
	columnsMax := counts[0]
	for _, c := range counts[1:] {
		if c < columnsMin {
			columnsMin = c
		}
		if c > columnsMax {
			columnsMax = c
		}
	}
	columnsMode := columnMode(counts)

	unfixed := 0
	for i, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		if len(row) != columnsMode {
			issues = append(issues, models.Issue{
				Type:     models.IssueColumnCountMismatch,
				Row:      i + 1,
				Severity: models.SeverityWarning,
				Description: fmt.Sprintf(
					"Row has %d columns (expected ~%d). No automatic fix in this step.",
					len(row), columnsMode),
				Fixed: false,
			})
			unfixed++
		}
	}

	return models.Stats{
		Rows:               len(counts),
		ColumnsMin:         columnsMin,
		ColumnsMax:         columnsMax,
		ColumnsMode:        columnsMode,
		UnfixedIssuesCount: unfixed,
		DelimiterDetected:  string(delimiter),
		HasHeader:          hasHeader,
	}, issues
}
