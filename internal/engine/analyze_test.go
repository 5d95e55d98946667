package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csv-escape/backend/internal/models"
)

func TestAnalyzeStructureUniformTable(t *testing.T) {
	rows := [][]string{{"a", "b"}, {"1", "2"}}
	stats, issues := AnalyzeStructure(rows, ',', nil)

	assert.Equal(t, 2, stats.Rows)
	assert.Equal(t, 2, stats.ColumnsMin)
	assert.Equal(t, 2, stats.ColumnsMax)
	assert.Equal(t, 2, stats.ColumnsMode)
	assert.Equal(t, 0, stats.UnfixedIssuesCount)
	assert.Equal(t, ",", stats.DelimiterDetected)
	assert.Empty(t, issues)
}

func TestAnalyzeStructureRaggedTable(t *testing.T) {
	rows := [][]string{
		{"col1", "col2", "col3"},
		{"1", "2", "3"},
		{"4", "5"},
		{"6", "7", "8", "9"},
		{"", ""},
	}
	stats, issues := AnalyzeStructure(rows, ',', nil)

	assert.Equal(t, 5, stats.Rows)
	assert.Equal(t, 2, stats.ColumnsMin)
	assert.Equal(t, 4, stats.ColumnsMax)
	assert.Equal(t, 3, stats.ColumnsMode)
	assert.Equal(t, 3, stats.UnfixedIssuesCount)

	require.Len(t, issues, 3)
	for _, issue := range issues {
		assert.Equal(t, models.IssueColumnCountMismatch, issue.Type)
		assert.Equal(t, models.SeverityWarning, issue.Severity)
		assert.False(t, issue.Fixed)
	}
	assert.Equal(t, 3, issues[0].Row)
	assert.Equal(t, 4, issues[1].Row)
	assert.Equal(t, 5, issues[2].Row)
}

func TestAnalyzeStructureRowNumbersSkipEmptyRows(t *testing.T) {
	// Empty rows do not count toward stats but still advance row numbering.
	rows := [][]string{
		{"a", "b"},
		{},
		{""},
		{"x", "y", "z"},
		{"p", "q"},
	}
	stats, issues := AnalyzeStructure(rows, ',', nil)

	assert.Equal(t, 3, stats.Rows)
	assert.Equal(t, 2, stats.ColumnsMode)
	require.Len(t, issues, 1)
	assert.Equal(t, 4, issues[0].Row)
}

func TestAnalyzeStructureNoRows(t *testing.T) {
	hdr := true
	stats, issues := AnalyzeStructure([][]string{{}, {""}}, ';', &hdr)

	assert.Zero(t, stats.Rows)
	assert.Zero(t, stats.ColumnsMin)
	assert.Zero(t, stats.ColumnsMax)
	assert.Zero(t, stats.ColumnsMode)
	assert.Equal(t, ";", stats.DelimiterDetected)
	require.NotNil(t, stats.HasHeader)
	assert.True(t, *stats.HasHeader)
	assert.Empty(t, issues)
}

func TestColumnModeTieBreaksOnFirstOccurrence(t *testing.T) {
	assert.Equal(t, 3, columnMode([]int{3, 3, 2, 4, 2}))
	assert.Equal(t, 2, columnMode([]int{2, 2, 3, 3}))
	assert.Equal(t, 5, columnMode([]int{5}))
}
