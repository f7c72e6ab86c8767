package domain

// DefaultRuleSet returns the built-in profile for the flat-text dealership
// sales report that motivated this tool. `reportex rules init` writes it out
// as a starting point for custom profiles.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Name:         "dealership",
		Delimiter:    `(?m)^DEALER# `,
		HeaderLine:   `^D\d+\b.*PHONE:`,
		HeaderFields: `^(D\d+)\s+(.+?)\s+PHONE:\s*(\S+)\s*$`,
		DetailLine:   `^UNITS SOLD IN \d{4}\b`,
		DetailFields: `^UNITS SOLD IN (\d{4})\s+NEW:(\S+)\s+USED:(\S+)\s+TOTAL:(\S+)\s*$`,
		CleanRules: []CleanRule{
			// Collapse run-on internal whitespace first so the suffix rule
			// sees a single space before the legal form.
			{Pattern: `\s{2,}`, Replacement: ` `},
			// Strip trailing legal-entity suffixes, repeated occurrences
			// included, so re-cleaning is a no-op.
			{Pattern: `(?i)(?:[,\s]+(?:LLC|INC|CORP|LTD)\.?)+$`, Replacement: ``},
		},
	}
}
