package engine

import (
	"fmt"
	"strings"

	"github.com/csv-escape/backend/internal/models"
)

// SanitizeRows reshapes every row to exactly expectedColumns cells:
// structurally empty rows are dropped, short rows are right-padded with
// empty cells, and surplus cells are merged into the last column using the
// delimiter. Returns the canonical rows, the fix records, and how many
// fixes were applied. Row numbers refer to the incoming sequence.
func SanitizeRows(rows [][]string, expectedColumns int, delimiter rune) ([][]string, []models.Issue, int) {
	sanitized := make([][]string, 0, len(rows))
	issues := make([]models.Issue, 0)
	fixed := 0

	for i, row := range rows {
		rowNum := i + 1

		if isEmptyRow(row) {
			issues = append(issues, models.Issue{
				Type:        models.IssueEmptyRowRemoved,
				Row:         rowNum,
				Severity:    models.SeverityInfo,
				Description: "Empty row removed during sanitize.",
				Fixed:       true,
			})
			fixed++
			continue
		}

		colCount := len(row)
		if colCount == expectedColumns {
			sanitized = append(sanitized, row)
			continue
		}

		if colCount < expectedColumns {
			padN := expectedColumns - colCount
			padded := make([]string, 0, expectedColumns)
			padded = append(padded, row...)
			for j := 0; j < padN; j++ {
				padded = append(padded, "")
			}
			issues = append(issues, models.Issue{
				Type:     models.IssueRowPadded,
				Row:      rowNum,
				Severity: models.SeverityWarning,
				Description: fmt.Sprintf(
					"Row had %d columns; padded with %d empty cell(s) to match expected %d.",
					colCount, padN, expectedColumns),
				Fixed: true,
			})
			fixed++
			sanitized = append(sanitized, padded)
			continue
		}

		var merged []string
		if expectedColumns <= 1 {
			merged = []string{strings.Join(row, string(delimiter))}
		} else {
			head := row[:expectedColumns-1]
			tail := strings.Join(row[expectedColumns-1:], string(delimiter))
			merged = make([]string, 0, expectedColumns)
			merged = append(merged, head...)
			merged = append(merged, tail)
		}
		issues = append(issues, models.Issue{
			Type:     models.IssueRowTruncated,
			Row:      rowNum,
			Severity: models.SeverityWarning,
			Description: fmt.Sprintf(
				"Row had %d columns; merged surplus cells into the last column to match expected %d.",
				colCount, expectedColumns),
			Fixed: true,
		})
		fixed++
		sanitized = append(sanitized, merged)
	}

	return sanitized, issues, fixed
}
