package driven

import (
	"context"

	"github.com/fairview-data/reportex/internal/core/domain"
)

// RuleStore persists rule-set profiles.
// Backed by TOML files in the reportex config directory.
type RuleStore interface {
	// Save stores or replaces a profile under its name.
	Save(ctx context.Context, rs domain.RuleSet) error

	// Get retrieves a profile by name. domain.ErrNotFound if absent.
	Get(ctx context.Context, name string) (*domain.RuleSet, error)

	// List returns the names of all stored profiles, sorted.
	List(ctx context.Context) ([]string, error)

	// Delete removes a profile. domain.ErrNotFound if absent.
	Delete(ctx context.Context, name string) error
}
