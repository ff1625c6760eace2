package cases

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/labassist/labassist/internal/domain/catalog"
	"github.com/labassist/labassist/internal/domain/rules"
	"github.com/labassist/labassist/internal/recommend"
)

// Service creates and maintains triage cases. On every create and update it
// re-runs the recommendation matcher and compliance check, so the stored
// snapshot always reflects the ordered tests it was derived from.
type Service struct {
	cases   CaseRepository
	rules   *rules.Service
	catalog *catalog.Service
	logger  zerolog.Logger
}

func NewService(cases CaseRepository, ruleSvc *rules.Service, catalogSvc *catalog.Service, logger zerolog.Logger) *Service {
	return &Service{cases: cases, rules: ruleSvc, catalog: catalogSvc, logger: logger}
}

// CreateCase validates the intake data, derives the recommendation and
// compliance snapshot and stores the case. The repository assigns the case
// number.
func (s *Service) CreateCase(ctx context.Context, cs *Case) error {
	if err := s.prepare(ctx, cs); err != nil {
		return err
	}
	return s.cases.Create(ctx, cs)
}

// UpdateCase replaces a stored case and re-derives its compliance snapshot.
// Case number and creation time survive the update.
func (s *Service) UpdateCase(ctx context.Context, id uuid.UUID, cs *Case) error {
	if _, err := s.cases.GetByID(ctx, id); err != nil {
		return err
	}
	cs.ID = id
	if err := s.prepare(ctx, cs); err != nil {
		return err
	}
	return s.cases.Update(ctx, cs)
}

func (s *Service) GetCase(ctx context.Context, id uuid.UUID) (*Case, error) {
	return s.cases.GetByID(ctx, id)
}

func (s *Service) DeleteCase(ctx context.Context, id uuid.UUID) error {
	return s.cases.Delete(ctx, id)
}

func (s *Service) ListCases(ctx context.Context, limit, offset int) ([]*Case, int, error) {
	return s.cases.List(ctx, limit, offset)
}

func (s *Service) CountCases(ctx context.Context) (int, error) {
	return s.cases.Count(ctx)
}

// prepare validates the editable fields and fills the derived ones.
func (s *Service) prepare(ctx context.Context, cs *Case) error {
	cs.PatientNumber = strings.TrimSpace(cs.PatientNumber)
	cs.SuspectedDiagnosis = strings.TrimSpace(cs.SuspectedDiagnosis)

	if cs.PatientNumber == "" {
		return fmt.Errorf("patient_number is required")
	}
	if cs.Age < 0 || cs.Age > 130 {
		return fmt.Errorf("age must be between 0 and 130")
	}
	if !validGender(cs.Gender) {
		return fmt.Errorf("invalid gender: %s", cs.Gender)
	}
	if !rules.ValidMTSCategory(cs.MTSCategory) {
		return fmt.Errorf("invalid mts_category: %s", cs.MTSCategory)
	}
	if cs.SuspectedDiagnosis == "" {
		return fmt.Errorf("suspected_diagnosis is required")
	}

	cs.OrderedTests = normalizeCodes(cs.OrderedTests)
	if len(cs.OrderedTests) == 0 {
		return fmt.Errorf("ordered_tests must not be empty")
	}
	cs.Symptoms = trimBlank(cs.Symptoms)

	ruleSet, err := s.rules.AllRules(ctx)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}
	tests, err := s.catalog.AllLabTests(ctx)
	if err != nil {
		return fmt.Errorf("load lab tests: %w", err)
	}

	outcome := recommend.Match(cs.SuspectedDiagnosis, cs.MTSCategory, ruleSet)
	compliance := recommend.Evaluate(outcome, cs.OrderedTests, tests)

	cs.RecommendedTests = outcome.RecommendedTests
	cs.MandatoryTests = outcome.MandatoryTests
	cs.OptionalTests = outcome.OptionalTests
	cs.RuleMatched = outcome.Matched
	cs.Rationale = outcome.Rationale
	cs.MissingTests = compliance.MissingTests
	cs.UnnecessaryTests = compliance.UnnecessaryTests
	cs.EstimatedTotalDuration = compliance.EstimatedTotalDuration

	if dangling := codesWithoutCatalogEntry(cs.OrderedTests, tests); len(dangling) > 0 {
		s.logger.Warn().
			Strs("codes", dangling).
			Str("patient_number", cs.PatientNumber).
			Msg("ordered tests reference codes missing from the catalogue")
	}
	return nil
}

func validGender(g string) bool {
	for _, known := range Genders {
		if g == known {
			return true
		}
	}
	return false
}

func codesWithoutCatalogEntry(ordered []string, tests []*catalog.LabTest) []string {
	known := make(map[string]bool, len(tests))
	for _, t := range tests {
		known[t.Code] = true
	}
	var out []string
	for _, code := range ordered {
		if !known[code] {
			out = append(out, code)
		}
	}
	return out
}

// normalizeCodes trims, uppercases and deduplicates test codes while keeping
// their first-seen order.
func normalizeCodes(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}

func trimBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
