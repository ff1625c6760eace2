package cases

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no case exists for the given id.
var ErrNotFound = errors.New("case not found")

type CaseRepository interface {
	// Create stores the case and assigns id, case number and created_at.
	Create(ctx context.Context, cs *Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*Case, error)
	// Update replaces the stored case. Id, case number and created_at are
	// preserved from the stored record.
	Update(ctx context.Context, cs *Case) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns cases newest first.
	List(ctx context.Context, limit, offset int) ([]*Case, int, error)
	Count(ctx context.Context) (int, error)
}
