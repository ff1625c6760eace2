package rules

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a rule does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateKey is returned when a rule for the same (diagnosis, MTS
// category) pair already exists.
var ErrDuplicateKey = errors.New("rule for diagnosis and MTS category already exists")

type RuleRepository interface {
	Create(ctx context.Context, r *RecommendationRule) error
	GetByID(ctx context.Context, id uuid.UUID) (*RecommendationRule, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*RecommendationRule, int, error)
	// All returns every rule in insertion order, as the read-only snapshot
	// handed to the recommendation matcher.
	All(ctx context.Context) ([]*RecommendationRule, error)
}
