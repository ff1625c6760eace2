package rules

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRuleRepo keeps rules in process memory. The key index makes the
// one-rule-per-(diagnosis, category) invariant structural: a duplicate can
// never be inserted, so the matcher never has to disambiguate.
type memoryRuleRepo struct {
	mu    sync.RWMutex
	rules []*RecommendationRule
	byKey map[string]*RecommendationRule
}

func NewMemoryRuleRepo() RuleRepository {
	return &memoryRuleRepo{byKey: make(map[string]*RecommendationRule)}
}

func (r *memoryRuleRepo) Create(_ context.Context, rule *RecommendationRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := Key(rule.DiagnosisName, rule.MTSCategory)
	if _, ok := r.byKey[key]; ok {
		return ErrDuplicateKey
	}
	rule.ID = uuid.New()
	rule.CreatedAt = time.Now().UTC()

	stored := cloneRule(rule)
	r.rules = append(r.rules, stored)
	r.byKey[key] = stored
	return nil
}

func (r *memoryRuleRepo) GetByID(_ context.Context, id uuid.UUID) (*RecommendationRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rule := range r.rules {
		if rule.ID == id {
			return cloneRule(rule), nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRuleRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rule := range r.rules {
		if rule.ID == id {
			r.rules = append(r.rules[:i], r.rules[i+1:]...)
			delete(r.byKey, Key(rule.DiagnosisName, rule.MTSCategory))
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryRuleRepo) List(_ context.Context, limit, offset int) ([]*RecommendationRule, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.rules)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	to := total
	if limit > 0 && offset+limit < total {
		to = offset + limit
	}
	out := make([]*RecommendationRule, 0, to-offset)
	for _, rule := range r.rules[offset:to] {
		out = append(out, cloneRule(rule))
	}
	return out, total, nil
}

func (r *memoryRuleRepo) All(_ context.Context) ([]*RecommendationRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*RecommendationRule, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, cloneRule(rule))
	}
	return out, nil
}

// cloneRule deep-copies a rule so callers never share the stored slices.
func cloneRule(rule *RecommendationRule) *RecommendationRule {
	out := *rule
	out.RecommendedTests = append([]string(nil), rule.RecommendedTests...)
	out.MandatoryTests = append([]string(nil), rule.MandatoryTests...)
	out.OptionalTests = append([]string(nil), rule.OptionalTests...)
	return &out
}
