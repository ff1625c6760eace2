package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	tests     LabTestRepository
	diagnoses DiagnosisRepository
}

func NewService(tests LabTestRepository, diagnoses DiagnosisRepository) *Service {
	return &Service{tests: tests, diagnoses: diagnoses}
}

var validUrgencyLevels = map[string]bool{
	UrgencyStandard: true, UrgencyDringend: true, UrgencyNotfall: true,
}

// -- Lab Tests --

func (s *Service) CreateLabTest(ctx context.Context, t *LabTest) error {
	if strings.TrimSpace(t.Code) == "" {
		return fmt.Errorf("code is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(t.Category) == "" {
		return fmt.Errorf("category is required")
	}
	if t.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	if t.UrgencyLevel == "" {
		t.UrgencyLevel = UrgencyStandard
	}
	if !validUrgencyLevels[t.UrgencyLevel] {
		return fmt.Errorf("invalid urgency_level: %s", t.UrgencyLevel)
	}
	return s.tests.Create(ctx, t)
}

func (s *Service) GetLabTest(ctx context.Context, id uuid.UUID) (*LabTest, error) {
	return s.tests.GetByID(ctx, id)
}

func (s *Service) GetLabTestByCode(ctx context.Context, code string) (*LabTest, error) {
	return s.tests.GetByCode(ctx, code)
}

func (s *Service) DeleteLabTest(ctx context.Context, id uuid.UUID) error {
	return s.tests.Delete(ctx, id)
}

func (s *Service) ListLabTests(ctx context.Context, limit, offset int) ([]*LabTest, int, error) {
	return s.tests.List(ctx, limit, offset)
}

// AllLabTests returns the full catalogue snapshot for compliance evaluation.
func (s *Service) AllLabTests(ctx context.Context) ([]*LabTest, error) {
	return s.tests.All(ctx)
}

// -- Diagnoses --

func (s *Service) CreateDiagnosis(ctx context.Context, d *Diagnosis) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(d.Category) == "" {
		return fmt.Errorf("category is required")
	}
	return s.diagnoses.Create(ctx, d)
}

func (s *Service) GetDiagnosis(ctx context.Context, id uuid.UUID) (*Diagnosis, error) {
	return s.diagnoses.GetByID(ctx, id)
}

func (s *Service) DeleteDiagnosis(ctx context.Context, id uuid.UUID) error {
	return s.diagnoses.Delete(ctx, id)
}

func (s *Service) ListDiagnoses(ctx context.Context, limit, offset int) ([]*Diagnosis, int, error) {
	return s.diagnoses.List(ctx, limit, offset)
}
