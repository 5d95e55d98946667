package engine

import "github.com/csv-escape/backend/internal/models"

// profileOverride is a partial configuration applied on top of the
// user-supplied values. Profiles are pure data and win over the request for
// every field they define.
type profileOverride struct {
	lineEnding     models.LineEnding
	addBOM         bool
	quotePolicy    models.QuotePolicy
	injection      models.InjectionProtection
	trim           models.TrimWhitespace
	escapeStyle    models.EscapeStyle
	nullIfUnset    string
	hasNullIfUnset bool
}

var profileOverrides = map[models.TargetProfile]profileOverride{
	models.ProfileExcel: {
		lineEnding:  models.LineEndingCRLF,
		addBOM:      true,
		quotePolicy: models.QuoteMinimal,
		injection:   models.InjectionPrefixQuote,
		trim:        models.TrimRight,
		escapeStyle: models.EscapeStyleRFC4180,
	},
	models.ProfileDBRFC4180: {
		lineEnding:     models.LineEndingCRLF,
		addBOM:         false,
		quotePolicy:    models.QuoteAll,
		injection:      models.InjectionNone,
		trim:           models.TrimNone,
		escapeStyle:    models.EscapeStyleRFC4180,
		nullIfUnset:    `\N`,
		hasNullIfUnset: true,
	},
	models.ProfileAISafety: {
		lineEnding:  models.LineEndingLF,
		addBOM:      false,
		quotePolicy: models.QuoteAll,
		injection:   models.InjectionStripFormula,
		trim:        models.TrimBoth,
		escapeStyle: models.EscapeStyleRFC4180,
	},
	// ProfileCustom has no entry: request values pass through unchanged.
}

// ResolveConfig merges the request with detection results, then overlays the
// target profile. The returned EffectiveConfig is computed once per request
// and treated as immutable downstream.
func ResolveConfig(req models.EscapeRequest, detectedLE string, detectedDelimiter rune) models.EffectiveConfig {
	lineEnding := req.LineEnding
	if lineEnding == models.LineEndingAuto {
		switch detectedLE {
		case DetectedCRLF:
			lineEnding = models.LineEndingCRLF
		default: // "lf" or "none"
			lineEnding = models.LineEndingLF
		}
	}

	delimiter := req.Delimiter
	if delimiter == "" {
		delimiter = string(detectedDelimiter)
	}

	maxRows := req.MaxRows
	if maxRows < 0 {
		maxRows = 0
	}

	cfg := models.EffectiveConfig{
		Profile:                  req.TargetProfile,
		Delimiter:                delimiter,
		QuoteChar:                req.QuoteChar,
		EscapeStyle:              req.EscapeStyle,
		LineEnding:               lineEnding,
		QuotePolicy:              req.QuotePolicy,
		ExcelInjectionProtection: req.ExcelInjectionProtection,
		TrimWhitespace:           req.TrimWhitespace,
		NullRepresentation:       req.NullRepresentation,
		AddBOM:                   req.AddBOM,
		MaxRows:                  maxRows,
		HasHeader:                req.HasHeader.Resolved(),
	}

	if override, ok := profileOverrides[req.TargetProfile]; ok {
		cfg.LineEnding = override.lineEnding
		cfg.AddBOM = override.addBOM
		cfg.QuotePolicy = override.quotePolicy
		cfg.ExcelInjectionProtection = override.injection
		cfg.TrimWhitespace = override.trim
		cfg.EscapeStyle = override.escapeStyle
		if override.hasNullIfUnset && cfg.NullRepresentation == nil {
			null := override.nullIfUnset
			cfg.NullRepresentation = &null
		}
	}

	return cfg
}
