package models

import (
	"encoding/json"
	"fmt"
)

// Mode selects what the engine does with the parsed table.
type Mode string

const (
	ModeEscape   Mode = "escape"
	ModeAnalyze  Mode = "analyze"
	ModeSanitize Mode = "sanitize"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeEscape, ModeAnalyze, ModeSanitize:
		return true
	}
	return false
}

// LineEnding is the requested output line ending. "auto" follows detection.
type LineEnding string

const (
	LineEndingAuto LineEnding = "auto"
	LineEndingLF   LineEnding = "lf"
	LineEndingCRLF LineEnding = "crlf"
)

func (l LineEnding) Valid() bool {
	switch l {
	case LineEndingAuto, LineEndingLF, LineEndingCRLF:
		return true
	}
	return false
}

// EscapeStyle selects how quote characters inside quoted cells are escaped.
type EscapeStyle string

const (
	EscapeStyleRFC4180   EscapeStyle = "rfc4180"
	EscapeStyleDouble    EscapeStyle = "double"
	EscapeStyleBackslash EscapeStyle = "backslash"
	EscapeStyleNone      EscapeStyle = "none"
)

func (e EscapeStyle) Valid() bool {
	switch e {
	case EscapeStyleRFC4180, EscapeStyleDouble, EscapeStyleBackslash, EscapeStyleNone:
		return true
	}
	return false
}

// TargetProfile names a bundle of formatting/safety defaults.
type TargetProfile string

const (
	ProfileExcel     TargetProfile = "excel"
	ProfileDBRFC4180 TargetProfile = "db_rfc4180"
	ProfileAISafety  TargetProfile = "ai_safety"
	ProfileCustom    TargetProfile = "custom"
)

func (p TargetProfile) Valid() bool {
	switch p {
	case ProfileExcel, ProfileDBRFC4180, ProfileAISafety, ProfileCustom:
		return true
	}
	return false
}

// QuotePolicy decides which cells get quoted during serialization.
type QuotePolicy string

const (
	QuoteMinimal    QuotePolicy = "minimal"
	QuoteAll        QuotePolicy = "all"
	QuoteNonNumeric QuotePolicy = "non_numeric"
)

func (q QuotePolicy) Valid() bool {
	switch q {
	case QuoteMinimal, QuoteAll, QuoteNonNumeric:
		return true
	}
	return false
}

// InjectionProtection selects the spreadsheet formula-injection mitigation.
type InjectionProtection string

const (
	InjectionNone         InjectionProtection = "none"
	InjectionPrefixQuote  InjectionProtection = "prefix_quote"
	InjectionStripFormula InjectionProtection = "strip_formula"
)

func (i InjectionProtection) Valid() bool {
	switch i {
	case InjectionNone, InjectionPrefixQuote, InjectionStripFormula:
		return true
	}
	return false
}

// TrimWhitespace selects which side(s) of each cell get trimmed.
type TrimWhitespace string

const (
	TrimNone  TrimWhitespace = "none"
	TrimLeft  TrimWhitespace = "left"
	TrimRight TrimWhitespace = "right"
	TrimBoth  TrimWhitespace = "both"
)

func (t TrimWhitespace) Valid() bool {
	switch t {
	case TrimNone, TrimLeft, TrimRight, TrimBoth:
		return true
	}
	return false
}

// ResponseLevel controls how much diagnostic detail the response carries.
type ResponseLevel string

const (
	LevelSimple   ResponseLevel = "simple"
	LevelStandard ResponseLevel = "standard"
	LevelDebug    ResponseLevel = "debug"
)

func (r ResponseLevel) Valid() bool {
	switch r {
	case LevelSimple, LevelStandard, LevelDebug:
		return true
	}
	return false
}

// HasHeader is the tri-state header hint: "auto" (unknown), true, or false.
// The zero value means "auto".
type HasHeader struct {
	Known bool
	Value bool
}

func (h HasHeader) MarshalJSON() ([]byte, error) {
	if !h.Known {
		return []byte(`"auto"`), nil
	}
	return json.Marshal(h.Value)
}

func (h *HasHeader) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "auto" {
			return fmt.Errorf("has_header: unknown value %q", s)
		}
		*h = HasHeader{}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("has_header: expected \"auto\" or boolean")
	}
	*h = HasHeader{Known: true, Value: b}
	return nil
}

// Resolved returns nil for "auto", otherwise a pointer to the boolean value.
func (h HasHeader) Resolved() *bool {
	if !h.Known {
		return nil
	}
	v := h.Value
	return &v
}

// ValidationError reports the first request field holding an invalid value.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "invalid value for field: " + e.Field
}

// EscapeRequest is the engine input contract. Only mode and csv_b64 are
// required; everything else defaults via ApplyDefaults.
type EscapeRequest struct {
	Mode   Mode   `json:"mode"`
	CsvB64 string `json:"csv_b64"`

	Delimiter     string        `json:"delimiter,omitempty"`
	QuoteChar     string        `json:"quote_char,omitempty"`
	EscapeStyle   EscapeStyle   `json:"escape_style,omitempty"`
	LineEnding    LineEnding    `json:"line_ending,omitempty"`
	HasHeader     HasHeader     `json:"has_header,omitempty"`
	TargetProfile TargetProfile `json:"target_profile,omitempty"`
	MaxRows       int           `json:"max_rows,omitempty"`

	QuotePolicy              QuotePolicy         `json:"quote_policy,omitempty"`
	ExcelInjectionProtection InjectionProtection `json:"excel_injection_protection,omitempty"`
	TrimWhitespace           TrimWhitespace      `json:"trim_whitespace,omitempty"`
	NullRepresentation       *string             `json:"null_representation,omitempty"`
	AddBOM                   bool                `json:"add_bom,omitempty"`

	ResponseLevel ResponseLevel `json:"response_level,omitempty"`
}

// ApplyDefaults fills every omitted optional field with its documented
// default. csv_b64 stays required.
func (r *EscapeRequest) ApplyDefaults() {
	if r.Mode == "" {
		r.Mode = ModeEscape
	}
	if r.QuoteChar == "" {
		r.QuoteChar = `"`
	}
	if r.EscapeStyle == "" {
		r.EscapeStyle = EscapeStyleRFC4180
	}
	if r.LineEnding == "" {
		r.LineEnding = LineEndingAuto
	}
	if r.TargetProfile == "" {
		r.TargetProfile = ProfileExcel
	}
	if r.QuotePolicy == "" {
		r.QuotePolicy = QuoteMinimal
	}
	if r.ExcelInjectionProtection == "" {
		r.ExcelInjectionProtection = InjectionNone
	}
	if r.TrimWhitespace == "" {
		r.TrimWhitespace = TrimNone
	}
	if r.ResponseLevel == "" {
		r.ResponseLevel = LevelSimple
	}
	if r.MaxRows < 0 {
		r.MaxRows = 0
	}
}

// Validate checks every enum field. Call after ApplyDefaults.
func (r *EscapeRequest) Validate() error {
	if !r.Mode.Valid() {
		return &ValidationError{Field: "mode"}
	}
	if r.CsvB64 == "" {
		return &ValidationError{Field: "csv_b64"}
	}
	if !r.EscapeStyle.Valid() {
		return &ValidationError{Field: "escape_style"}
	}
	if !r.LineEnding.Valid() {
		return &ValidationError{Field: "line_ending"}
	}
	if !r.TargetProfile.Valid() {
		return &ValidationError{Field: "target_profile"}
	}
	if !r.QuotePolicy.Valid() {
		return &ValidationError{Field: "quote_policy"}
	}
	if !r.ExcelInjectionProtection.Valid() {
		return &ValidationError{Field: "excel_injection_protection"}
	}
	if !r.TrimWhitespace.Valid() {
		return &ValidationError{Field: "trim_whitespace"}
	}
	if !r.ResponseLevel.Valid() {
		return &ValidationError{Field: "response_level"}
	}
	return nil
}
