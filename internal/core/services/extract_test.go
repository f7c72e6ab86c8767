package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairview-data/reportex/internal/adapters/driven/storage/memory"
	"github.com/fairview-data/reportex/internal/core/domain"
	"github.com/fairview-data/reportex/internal/core/ports/driving"
)

// --- Mock implementations ---

// mockRuleStore implements driven.RuleStore for testing.
type mockRuleStore struct {
	profiles map[string]domain.RuleSet
	getErr   error
}

func (m *mockRuleStore) Save(_ context.Context, rs domain.RuleSet) error {
	m.profiles[rs.Name] = rs
	return nil
}

func (m *mockRuleStore) Get(_ context.Context, name string) (*domain.RuleSet, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	rs, ok := m.profiles[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rs, nil
}

func (m *mockRuleStore) List(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(m.profiles))
	for name := range m.profiles {
		names = append(names, name)
	}
	return names, nil
}

func (m *mockRuleStore) Delete(_ context.Context, name string) error {
	delete(m.profiles, name)
	return nil
}

const sampleReport = "HEADER\n" +
	"DEALER# D001  ACME MOTORS  PHONE: 555-111-2222\n" +
	"UNITS SOLD IN 2021 NEW:10 USED:5 TOTAL:15\n" +
	"UNITS SOLD IN 2022 NEW:12 USED:6 TOTAL:18\n" +
	"DEALER# D002 BAYSIDE AUTO PHONE: 555-333-4444\n" +
	"UNITS SOLD IN 2022 NEW:3 USED:1 TOTAL:4\n"

// TestExtractionService_Extract_DefaultRules tests extraction with the
// built-in profile.
func TestExtractionService_Extract_DefaultRules(t *testing.T) {
	svc := NewExtractionService(nil, nil)

	report, err := svc.Extract(context.Background(), driving.ExtractRequest{
		Document: sampleReport,
		Source:   "report.txt",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, report.Run.ID)
	assert.Equal(t, "report.txt", report.Run.Source)
	assert.Equal(t, "dealership", report.Run.RuleSet)
	assert.Equal(t, 2, report.Run.SegmentCount)
	assert.Equal(t, 3, report.Run.RowCount)
	assert.Zero(t, report.Run.DiagnosticCount)
	assert.Len(t, report.Rows, 3)
}

// TestExtractionService_Extract_NamedProfile tests profile resolution
// through the rule store.
func TestExtractionService_Extract_NamedProfile(t *testing.T) {
	rs := domain.DefaultRuleSet()
	rs.Name = "custom"
	rules := &mockRuleStore{profiles: map[string]domain.RuleSet{"custom": rs}}
	svc := NewExtractionService(rules, nil)

	report, err := svc.Extract(context.Background(), driving.ExtractRequest{
		Document: sampleReport,
		Source:   "report.txt",
		Profile:  "custom",
	})
	require.NoError(t, err)
	assert.Equal(t, "custom", report.Run.RuleSet)
}

// TestExtractionService_Extract_ProfileNotFound tests the miss path.
func TestExtractionService_Extract_ProfileNotFound(t *testing.T) {
	rules := &mockRuleStore{profiles: map[string]domain.RuleSet{}}
	svc := NewExtractionService(rules, nil)

	_, err := svc.Extract(context.Background(), driving.ExtractRequest{
		Document: sampleReport,
		Profile:  "missing",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestExtractionService_Extract_ProfileWithoutStore tests asking for a
// profile when no rule store is configured.
func TestExtractionService_Extract_ProfileWithoutStore(t *testing.T) {
	svc := NewExtractionService(nil, nil)

	_, err := svc.Extract(context.Background(), driving.ExtractRequest{
		Document: sampleReport,
		Profile:  "anything",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestExtractionService_Extract_ExplicitRulesWin tests that explicit rules
// bypass profile lookup entirely.
func TestExtractionService_Extract_ExplicitRulesWin(t *testing.T) {
	rs := domain.DefaultRuleSet()
	rs.Name = "explicit"
	svc := NewExtractionService(nil, nil)

	report, err := svc.Extract(context.Background(), driving.ExtractRequest{
		Document: sampleReport,
		Profile:  "ignored",
		Rules:    &rs,
	})
	require.NoError(t, err)
	assert.Equal(t, "explicit", report.Run.RuleSet)
}

// TestExtractionService_Extract_InvalidRules tests that an uncompilable
// rule set fails before any extraction work.
func TestExtractionService_Extract_InvalidRules(t *testing.T) {
	rs := domain.DefaultRuleSet()
	rs.DetailFields = `(\d{4})` // wrong arity
	svc := NewExtractionService(nil, nil)

	_, err := svc.Extract(context.Background(), driving.ExtractRequest{
		Document: sampleReport,
		Rules:    &rs,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRuleSet)
}

// TestExtractionService_Extract_Persist tests storing a run.
func TestExtractionService_Extract_Persist(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRunStore()
	svc := NewExtractionService(nil, store)

	report, err := svc.Extract(ctx, driving.ExtractRequest{
		Document: sampleReport,
		Source:   "report.txt",
		Persist:  true,
	})
	require.NoError(t, err)

	stored, err := store.GetRun(ctx, report.Run.ID)
	require.NoError(t, err)
	assert.Equal(t, report.Run, *stored)

	rows, err := store.GetRows(ctx, report.Run.ID)
	require.NoError(t, err)
	assert.Equal(t, report.Rows, rows)
}

// TestExtractionService_Extract_PersistWithoutStore tests the guard.
func TestExtractionService_Extract_PersistWithoutStore(t *testing.T) {
	svc := NewExtractionService(nil, nil)

	_, err := svc.Extract(context.Background(), driving.ExtractRequest{
		Document: sampleReport,
		Persist:  true,
	})
	assert.ErrorIs(t, err, domain.ErrStoreDisabled)
}

// TestExtractionService_Extract_DiagnosticsAreNotErrors tests the
// partial-failure contract at the service boundary.
func TestExtractionService_Extract_DiagnosticsAreNotErrors(t *testing.T) {
	doc := "DEALER# garbage segment without a header\n" + sampleReport

	svc := NewExtractionService(nil, nil)
	report, err := svc.Extract(context.Background(), driving.ExtractRequest{Document: doc})
	require.NoError(t, err)

	assert.Len(t, report.Rows, 3)
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, domain.SegmentHeaderMissing, report.Diagnostics[0].Code)
	assert.Equal(t, 1, report.Run.DiagnosticCount)
}
