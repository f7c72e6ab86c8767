package domain

import (
	"fmt"
	"regexp"
)

// Capture-group arity required of the strict field patterns.
const (
	// HeaderCaptureCount is id, name, contact.
	HeaderCaptureCount = 3

	// DetailCaptureCount is period plus three count fields.
	DetailCaptureCount = 4
)

// CleanRule is one ordered field-cleanup rewrite.
// Replacement follows regexp.ReplaceAllString semantics.
type CleanRule struct {
	Pattern     string `toml:"pattern"`
	Replacement string `toml:"replacement"`
}

// RuleSet is the declarative configuration that drives one extraction:
// the five patterns plus the ordered cleanup rules. It is what rule
// profiles serialize to and from.
type RuleSet struct {
	// Name identifies the profile (e.g. "dealership").
	Name string `toml:"name"`

	// Delimiter splits the document into segments. Each match is a
	// boundary, consumed and included in neither adjacent segment.
	Delimiter string `toml:"delimiter"`

	// HeaderLine is the coarse existence check for an entity header line.
	HeaderLine string `toml:"header_line"`

	// HeaderFields is the strict capture pattern applied to the matched
	// header line. Must capture exactly id, name, contact.
	HeaderFields string `toml:"header_fields"`

	// DetailLine is the coarse match for one per-period detail line.
	DetailLine string `toml:"detail_line"`

	// DetailFields is the strict capture pattern for a detail line.
	// Must capture exactly period and three counts.
	DetailFields string `toml:"detail_fields"`

	// CleanRules are applied to the captured name field, in order.
	CleanRules []CleanRule `toml:"clean_rules"`
}

// Rules is a compiled, validated RuleSet ready to drive the pipeline.
type Rules struct {
	Name         string
	Delimiter    *regexp.Regexp
	HeaderLine   *regexp.Regexp
	HeaderFields *regexp.Regexp
	DetailLine   *regexp.Regexp
	DetailFields *regexp.Regexp
	Clean        []CompiledCleanRule
}

// CompiledCleanRule is one compiled cleanup rewrite.
type CompiledCleanRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Compile validates the rule set and compiles every pattern.
// Capture-group arity is checked here so a misconfigured profile fails
// at load time rather than producing silently empty extractions.
func (rs RuleSet) Compile() (*Rules, error) {
	compile := func(field, expr string) (*regexp.Regexp, error) {
		if expr == "" {
			return nil, fmt.Errorf("%w: %s pattern is empty", ErrInvalidRuleSet, field)
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: %s pattern: %v", ErrInvalidRuleSet, field, err)
		}
		return re, nil
	}

	delim, err := compile("delimiter", rs.Delimiter)
	if err != nil {
		return nil, err
	}
	headerLine, err := compile("header_line", rs.HeaderLine)
	if err != nil {
		return nil, err
	}
	headerFields, err := compile("header_fields", rs.HeaderFields)
	if err != nil {
		return nil, err
	}
	if n := headerFields.NumSubexp(); n != HeaderCaptureCount {
		return nil, fmt.Errorf("%w: header_fields must have exactly %d capture groups, has %d",
			ErrInvalidRuleSet, HeaderCaptureCount, n)
	}
	detailLine, err := compile("detail_line", rs.DetailLine)
	if err != nil {
		return nil, err
	}
	detailFields, err := compile("detail_fields", rs.DetailFields)
	if err != nil {
		return nil, err
	}
	if n := detailFields.NumSubexp(); n != DetailCaptureCount {
		return nil, fmt.Errorf("%w: detail_fields must have exactly %d capture groups, has %d",
			ErrInvalidRuleSet, DetailCaptureCount, n)
	}

	clean := make([]CompiledCleanRule, 0, len(rs.CleanRules))
	for i, cr := range rs.CleanRules {
		re, err := regexp.Compile(cr.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: clean_rules[%d]: %v", ErrInvalidRuleSet, i, err)
		}
		clean = append(clean, CompiledCleanRule{Pattern: re, Replacement: cr.Replacement})
	}

	return &Rules{
		Name:         rs.Name,
		Delimiter:    delim,
		HeaderLine:   headerLine,
		HeaderFields: headerFields,
		DetailLine:   detailLine,
		DetailFields: detailFields,
		Clean:        clean,
	}, nil
}
