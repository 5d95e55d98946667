// Package engine implements the CSV normalization pipeline: Base64 decode,
// line-ending normalization, delimiter detection, row parsing, profile
// resolution, structure analysis, sanitization, and policy-driven
// re-serialization. Every stage is a pure in-memory transform; the package
// holds no state between calls and is safe for concurrent use.
package engine

import (
	"strings"

	"github.com/csv-escape/backend/internal/models"
)

// Process runs the full pipeline for one request and shapes the response by
// the requested verbosity. The only error it can return is ErrInvalidBase64;
// every anomaly in the CSV content itself is recorded as an Issue instead.
// The request must be defaulted and validated by the caller.
func Process(req models.EscapeRequest) (*models.EscapeResponse, error) {
	text, err := DecodeBase64Text(req.CsvB64)
	if err != nil {
		return nil, err
	}

	normalized, detectedLE := NormalizeLineEndings(text)

	sample := FirstNonBlankLine(normalized)
	if sample == "" {
		sample = normalized
	}
	detectedDelimiter := DetectDelimiter(sample)

	cfg := ResolveConfig(req, detectedLE, detectedDelimiter)
	delimiter := firstRune(cfg.Delimiter, ',')
	quote := firstRune(cfg.QuoteChar, '"')

	rows := ParseRows(normalized, delimiter, quote)
	if cfg.MaxRows > 0 && len(rows) > cfg.MaxRows {
		rows = rows[:cfg.MaxRows]
	}

	// Pre-sanitize snapshot; serves as the "before" view in every mode.
	statsBefore, issuesBefore := AnalyzeStructure(rows, delimiter, cfg.HasHeader)

	var (
		csvText string
		issues  []models.Issue
		stats   models.Stats
		meta    models.Meta
	)

	meta = models.Meta{
		Version:           models.Version,
		Profile:           cfg.Profile,
		ModeUsed:          req.Mode,
		ResponseLevelUsed: req.ResponseLevel,
		EffectiveConfig:   &cfg,
	}

	switch req.Mode {
	case models.ModeAnalyze:
		// Only line endings are reflowed; cell content stays untouched.
		if cfg.LineEnding == models.LineEndingCRLF {
			csvText = strings.ReplaceAll(normalized, "\n", "\r\n")
		} else {
			csvText = normalized
		}
		stats = statsBefore
		issues = issuesBefore
		meta.StructureStatsBefore = &statsBefore

	case models.ModeSanitize:
		target := statsBefore.ColumnsMode
		if target == 0 {
			target = statsBefore.ColumnsMax
		}

		sanitizedRows, sanitizeIssues, fixedCount := SanitizeRows(rows, target, delimiter)

		stats = models.Stats{
			Rows:               len(sanitizedRows),
			ColumnsMin:         target,
			ColumnsMax:         target,
			ColumnsMode:        target,
			FixedIssuesCount:   fixedCount,
			UnfixedIssuesCount: 0,
			DelimiterDetected:  statsBefore.DelimiterDetected,
			HasHeader:          statsBefore.HasHeader,
		}
		issues = append(append([]models.Issue{}, issuesBefore...), sanitizeIssues...)
		csvText = SerializeRows(sanitizedRows, cfg)

		sanitized := true
		meta.StructureStatsBefore = &statsBefore
		meta.Sanitized = &sanitized

	default: // escape
		csvText = SerializeRows(rows, cfg)
		stats = statsBefore
		issues = issuesBefore
	}

	return shapeResponse(req.ResponseLevel, csvText, issues, stats, meta), nil
}

// shapeResponse trims result and meta down to the requested verbosity. The
// {result, meta} envelope itself is stable across levels.
func shapeResponse(level models.ResponseLevel, csvText string, issues []models.Issue, stats models.Stats, full models.Meta) *models.EscapeResponse {
	meta := models.Meta{
		Version:           full.Version,
		Profile:           full.Profile,
		ModeUsed:          full.ModeUsed,
		ResponseLevelUsed: level,
	}

	switch level {
	case models.LevelStandard:
		meta.EffectiveConfig = full.EffectiveConfig
		meta.Sanitized = full.Sanitized
		return &models.EscapeResponse{
			Result: models.EscapeResult{CsvText: csvText, Issues: issues, Stats: &stats},
			Meta:   meta,
		}
	case models.LevelDebug:
		meta.EffectiveConfig = full.EffectiveConfig
		meta.StructureStatsBefore = full.StructureStatsBefore
		meta.Sanitized = full.Sanitized
		return &models.EscapeResponse{
			Result: models.EscapeResult{CsvText: csvText, Issues: issues, Stats: &stats},
			Meta:   meta,
		}
	default: // simple
		return &models.EscapeResponse{
			Result: models.EscapeResult{CsvText: csvText, Issues: []models.Issue{}},
			Meta:   meta,
		}
	}
}
