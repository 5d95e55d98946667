package models

// Version is the engine/API version reported in every response meta block.
const Version = "0.2.0"

// Issue kinds recorded during analysis and sanitization.
const (
	IssueColumnCountMismatch = "COLUMN_COUNT_MISMATCH"
	IssueEmptyRowRemoved     = "EMPTY_ROW_REMOVED"
	IssueRowPadded           = "ROW_PADDED"
	IssueRowTruncated        = "ROW_TRUNCATED"
)

// Severity levels for issues.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Issue is one diagnostic or fix record. Row numbers are 1-based positions
// in the parsed row sequence before sanitization.
type Issue struct {
	Type        string `json:"type" msgpack:"type"`
	Row         int    `json:"row,omitempty" msgpack:"row,omitempty"`
	Column      *int   `json:"column" msgpack:"column"`
	Severity    string `json:"severity" msgpack:"severity"`
	Description string `json:"description" msgpack:"description"`
	Fixed       bool   `json:"fixed" msgpack:"fixed"`
}

// Stats summarizes table structure. The "before" snapshot reflects the parsed
// rows; a sanitize "after" snapshot reflects the canonical shape.
type Stats struct {
	Rows               int    `json:"rows" msgpack:"rows"`
	ColumnsMin         int    `json:"columns_min" msgpack:"columns_min"`
	ColumnsMax         int    `json:"columns_max" msgpack:"columns_max"`
	ColumnsMode        int    `json:"columns_mode" msgpack:"columns_mode"`
	FixedIssuesCount   int    `json:"fixed_issues_count" msgpack:"fixed_issues_count"`
	UnfixedIssuesCount int    `json:"unfixed_issues_count" msgpack:"unfixed_issues_count"`
	DelimiterDetected  string `json:"delimiter_detected" msgpack:"delimiter_detected"`
	HasHeader          *bool  `json:"has_header" msgpack:"has_header"`
}

// EffectiveConfig is the fully resolved configuration: request values merged
// with detection results, then overlaid by the target profile. Computed once
// per request and never mutated afterwards.
type EffectiveConfig struct {
	Profile                  TargetProfile       `json:"profile" msgpack:"profile"`
	Delimiter                string              `json:"delimiter" msgpack:"delimiter"`
	QuoteChar                string              `json:"quote_char" msgpack:"quote_char"`
	EscapeStyle              EscapeStyle         `json:"escape_style" msgpack:"escape_style"`
	LineEnding               LineEnding          `json:"line_ending" msgpack:"line_ending"`
	QuotePolicy              QuotePolicy         `json:"quote_policy" msgpack:"quote_policy"`
	ExcelInjectionProtection InjectionProtection `json:"excel_injection_protection" msgpack:"excel_injection_protection"`
	TrimWhitespace           TrimWhitespace      `json:"trim_whitespace" msgpack:"trim_whitespace"`
	NullRepresentation       *string             `json:"null_representation" msgpack:"null_representation"`
	AddBOM                   bool                `json:"add_bom" msgpack:"add_bom"`
	MaxRows                  int                 `json:"max_rows" msgpack:"max_rows"`
	HasHeader                *bool               `json:"has_header" msgpack:"has_header"`
}

// EscapeResult carries the re-serialized CSV plus diagnostics. Stats is nil
// at the simple response level.
type EscapeResult struct {
	CsvText string  `json:"csv_text" msgpack:"csv_text"`
	Issues  []Issue `json:"issues" msgpack:"issues"`
	Stats   *Stats  `json:"stats,omitempty" msgpack:"stats,omitempty"`
}

// Meta describes how the result was produced. Optional fields populate with
// increasing response verbosity.
type Meta struct {
	Version           string        `json:"version" msgpack:"version"`
	Profile           TargetProfile `json:"profile" msgpack:"profile"`
	ModeUsed          Mode          `json:"mode_used" msgpack:"mode_used"`
	ResponseLevelUsed ResponseLevel `json:"response_level_used" msgpack:"response_level_used"`

	EffectiveConfig      *EffectiveConfig `json:"effective_config,omitempty" msgpack:"effective_config,omitempty"`
	StructureStatsBefore *Stats           `json:"structure_stats_before,omitempty" msgpack:"structure_stats_before,omitempty"`
	Sanitized            *bool            `json:"sanitized,omitempty" msgpack:"sanitized,omitempty"`
}

// EscapeResponse is the stable {result, meta} envelope returned for every
// successful request regardless of verbosity.
type EscapeResponse struct {
	Result EscapeResult `json:"result" msgpack:"result"`
	Meta   Meta         `json:"meta" msgpack:"meta"`
}
