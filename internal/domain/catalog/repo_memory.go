package catalog

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryLabTestRepo keeps the catalogue in process memory. Insertion order is
// preserved for listing; a code index enforces uniqueness structurally.
type memoryLabTestRepo struct {
	mu     sync.RWMutex
	tests  []*LabTest
	byCode map[string]*LabTest
}

func NewMemoryLabTestRepo() LabTestRepository {
	return &memoryLabTestRepo{byCode: make(map[string]*LabTest)}
}

func (r *memoryLabTestRepo) Create(_ context.Context, t *LabTest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := strings.ToUpper(strings.TrimSpace(t.Code))
	if _, ok := r.byCode[code]; ok {
		return ErrDuplicate
	}
	t.ID = uuid.New()
	t.Code = code
	t.CreatedAt = time.Now().UTC()

	stored := *t
	r.tests = append(r.tests, &stored)
	r.byCode[code] = &stored
	return nil
}

func (r *memoryLabTestRepo) GetByID(_ context.Context, id uuid.UUID) (*LabTest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.tests {
		if t.ID == id {
			out := *t
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryLabTestRepo) GetByCode(_ context.Context, code string) (*LabTest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil, ErrNotFound
	}
	out := *t
	return &out, nil
}

func (r *memoryLabTestRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.tests {
		if t.ID == id {
			r.tests = append(r.tests[:i], r.tests[i+1:]...)
			delete(r.byCode, t.Code)
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryLabTestRepo) List(_ context.Context, limit, offset int) ([]*LabTest, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.tests)
	from, to := window(total, limit, offset)
	out := make([]*LabTest, 0, to-from)
	for _, t := range r.tests[from:to] {
		copy := *t
		out = append(out, &copy)
	}
	return out, total, nil
}

func (r *memoryLabTestRepo) All(_ context.Context) ([]*LabTest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*LabTest, 0, len(r.tests))
	for _, t := range r.tests {
		copy := *t
		out = append(out, &copy)
	}
	return out, nil
}

// memoryDiagnosisRepo holds reference diagnoses with a case-insensitive
// unique name index.
type memoryDiagnosisRepo struct {
	mu        sync.RWMutex
	diagnoses []*Diagnosis
	byName    map[string]*Diagnosis
}

func NewMemoryDiagnosisRepo() DiagnosisRepository {
	return &memoryDiagnosisRepo{byName: make(map[string]*Diagnosis)}
}

func (r *memoryDiagnosisRepo) Create(_ context.Context, d *Diagnosis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(d.Name))
	if _, ok := r.byName[key]; ok {
		return ErrDuplicate
	}
	d.ID = uuid.New()
	d.Name = strings.TrimSpace(d.Name)
	d.CreatedAt = time.Now().UTC()

	stored := *d
	r.diagnoses = append(r.diagnoses, &stored)
	r.byName[key] = &stored
	return nil
}

func (r *memoryDiagnosisRepo) GetByID(_ context.Context, id uuid.UUID) (*Diagnosis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.diagnoses {
		if d.ID == id {
			out := *d
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryDiagnosisRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, d := range r.diagnoses {
		if d.ID == id {
			r.diagnoses = append(r.diagnoses[:i], r.diagnoses[i+1:]...)
			delete(r.byName, strings.ToLower(d.Name))
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryDiagnosisRepo) List(_ context.Context, limit, offset int) ([]*Diagnosis, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.diagnoses)
	from, to := window(total, limit, offset)
	out := make([]*Diagnosis, 0, to-from)
	for _, d := range r.diagnoses[from:to] {
		copy := *d
		out = append(out, &copy)
	}
	return out, total, nil
}

// window clamps a limit/offset pair to valid slice bounds.
func window(total, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	if limit <= 0 {
		return offset, total
	}
	to := offset + limit
	if to > total {
		to = total
	}
	return offset, to
}
