package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	rules RuleRepository
}

func NewService(rules RuleRepository) *Service {
	return &Service{rules: rules}
}

// CreateRule validates and stores a recommendation rule. Mandatory tests
// must be a subset of the recommended tests; optional tests overlapping the
// recommended set are dropped, since recommended already covers them.
func (s *Service) CreateRule(ctx context.Context, r *RecommendationRule) error {
	r.DiagnosisName = strings.TrimSpace(r.DiagnosisName)
	if r.DiagnosisName == "" {
		return fmt.Errorf("diagnosis_name is required")
	}
	if !ValidMTSCategory(r.MTSCategory) {
		return fmt.Errorf("invalid mts_category: %s", r.MTSCategory)
	}
	if strings.TrimSpace(r.Rationale) == "" {
		return fmt.Errorf("rationale is required")
	}

	r.RecommendedTests = normalizeCodes(r.RecommendedTests)
	r.MandatoryTests = normalizeCodes(r.MandatoryTests)
	r.OptionalTests = normalizeCodes(r.OptionalTests)

	if len(r.RecommendedTests) == 0 {
		return fmt.Errorf("recommended_tests must not be empty")
	}

	recommended := make(map[string]bool, len(r.RecommendedTests))
	for _, code := range r.RecommendedTests {
		recommended[code] = true
	}
	for _, code := range r.MandatoryTests {
		if !recommended[code] {
			return fmt.Errorf("mandatory test %s is not in recommended_tests", code)
		}
	}

	optional := r.OptionalTests[:0]
	for _, code := range r.OptionalTests {
		if !recommended[code] {
			optional = append(optional, code)
		}
	}
	r.OptionalTests = optional

	return s.rules.Create(ctx, r)
}

func (s *Service) GetRule(ctx context.Context, id uuid.UUID) (*RecommendationRule, error) {
	return s.rules.GetByID(ctx, id)
}

func (s *Service) DeleteRule(ctx context.Context, id uuid.UUID) error {
	return s.rules.Delete(ctx, id)
}

func (s *Service) ListRules(ctx context.Context, limit, offset int) ([]*RecommendationRule, int, error) {
	return s.rules.List(ctx, limit, offset)
}

// AllRules returns the full rule snapshot for the recommendation matcher.
func (s *Service) AllRules(ctx context.Context) ([]*RecommendationRule, error) {
	return s.rules.All(ctx)
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
