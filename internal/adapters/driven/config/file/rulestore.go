package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/fairview-data/reportex/internal/core/domain"
	"github.com/fairview-data/reportex/internal/core/ports/driven"
)

// Ensure RuleStore implements the interface.
var _ driven.RuleStore = (*RuleStore)(nil)

// RuleStore is a file-based implementation of driven.RuleStore using TOML.
// Each profile lives in its own file so users can edit and share them.
type RuleStore struct {
	mu  sync.RWMutex
	dir string
}

// NewRuleStore creates a TOML-based rule profile store.
// If configDir is empty, defaults to ~/.reportex/rules.
func NewRuleStore(configDir string) (*RuleStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".reportex", "rules")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &RuleStore{dir: configDir}, nil
}

// Save stores or replaces a profile under its name.
// The profile must compile: a misconfigured rule set is rejected at save
// time rather than at the first extraction that uses it.
func (s *RuleStore) Save(_ context.Context, rs domain.RuleSet) error {
	if err := validateName(rs.Name); err != nil {
		return err
	}
	if _, err := rs.Compile(); err != nil {
		return err
	}

	data, err := toml.Marshal(rs)
	if err != nil {
		return fmt.Errorf("marshalling profile %q: %w", rs.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(s.path(rs.Name), data, 0600)
}

// Get retrieves a profile by name.
func (s *RuleStore) Get(_ context.Context, name string) (*domain.RuleSet, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading profile %q: %w", name, err)
	}

	var rs domain.RuleSet
	if err := toml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parsing profile %q: %w", name, err)
	}
	if rs.Name == "" {
		rs.Name = name
	}
	return &rs, nil
}

// List returns the names of all stored profiles, sorted.
func (s *RuleStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading rules directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".toml") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".toml"))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a profile.
func (s *RuleStore) Delete(_ context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(name)); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("deleting profile %q: %w", name, err)
	}
	return nil
}

func (s *RuleStore) path(name string) string {
	return filepath.Join(s.dir, name+".toml")
}

// validateName keeps profile names filesystem-safe.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: profile name is empty", domain.ErrInvalidInput)
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return fmt.Errorf("%w: profile name %q must not contain path separators", domain.ErrInvalidInput, name)
	}
	return nil
}
