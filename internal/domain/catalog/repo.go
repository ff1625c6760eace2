package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a catalogue entry does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique attribute (test code, diagnosis
// name) is already taken.
var ErrDuplicate = errors.New("already exists")

type LabTestRepository interface {
	Create(ctx context.Context, t *LabTest) error
	GetByID(ctx context.Context, id uuid.UUID) (*LabTest, error)
	GetByCode(ctx context.Context, code string) (*LabTest, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*LabTest, int, error)
	// All returns the full catalogue in insertion order, for callers that
	// need a read-only snapshot (compliance evaluation, seeding checks).
	All(ctx context.Context) ([]*LabTest, error)
}

type DiagnosisRepository interface {
	Create(ctx context.Context, d *Diagnosis) error
	GetByID(ctx context.Context, id uuid.UUID) (*Diagnosis, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Diagnosis, int, error)
}
