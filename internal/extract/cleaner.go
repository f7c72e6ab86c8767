package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/fairview-data/reportex/internal/core/domain"
)

// countPattern is the only shape a count field may take: a plain
// non-negative integer. Anything else fails coercion.
var countPattern = regexp.MustCompile(`^[0-9]+$`)

// Cleaner normalises extracted string fields by applying the profile's
// cleanup rules in their declared order. Cleaning is idempotent: running
// an already-cleaned field through the full rule set changes nothing.
type Cleaner struct {
	rules []domain.CompiledCleanRule
}

// NewCleaner creates a cleaner from compiled cleanup rules.
func NewCleaner(rules []domain.CompiledCleanRule) *Cleaner {
	return &Cleaner{rules: rules}
}

// Clean trims the field and applies every cleanup rule once, in order.
func (c *Cleaner) Clean(field string) string {
	out := strings.TrimSpace(field)
	for _, r := range c.rules {
		out = r.Pattern.ReplaceAllString(out, r.Replacement)
	}
	return strings.TrimSpace(out)
}

// CoerceCount converts a captured count field to its integer value.
// It fails with domain.ErrParse for anything that is not a well-formed
// non-negative integer; it never silently yields zero.
func CoerceCount(field string) (int, error) {
	if !countPattern.MatchString(field) {
		return 0, fmt.Errorf("%w: %q is not a non-negative integer", domain.ErrParse, field)
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", domain.ErrParse, field, err)
	}
	return n, nil
}
