package cases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryCaseRepo keeps cases in process memory and owns the per-year case
// number sequence. Numbers are never reused, also not after a delete.
type memoryCaseRepo struct {
	mu    sync.RWMutex
	cases []*Case
	seq   map[int]int
}

func NewMemoryCaseRepo() CaseRepository {
	return &memoryCaseRepo{seq: make(map[int]int)}
}

func (r *memoryCaseRepo) Create(_ context.Context, cs *Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	r.seq[now.Year()]++
	cs.ID = uuid.New()
	cs.CaseNumber = fmt.Sprintf("%d-%02d", now.Year(), r.seq[now.Year()])
	cs.CreatedAt = now

	r.cases = append(r.cases, cloneCase(cs))
	return nil
}

func (r *memoryCaseRepo) GetByID(_ context.Context, id uuid.UUID) (*Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cs := range r.cases {
		if cs.ID == id {
			return cloneCase(cs), nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryCaseRepo) Update(_ context.Context, cs *Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, stored := range r.cases {
		if stored.ID == cs.ID {
			cs.CaseNumber = stored.CaseNumber
			cs.CreatedAt = stored.CreatedAt
			r.cases[i] = cloneCase(cs)
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryCaseRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, cs := range r.cases {
		if cs.ID == id {
			r.cases = append(r.cases[:i], r.cases[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryCaseRepo) List(_ context.Context, limit, offset int) ([]*Case, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.cases)
	from, to := window(total, limit, offset)
	out := make([]*Case, 0, to-from)
	// newest first
	for i := total - 1 - from; i >= total-to; i-- {
		out = append(out, cloneCase(r.cases[i]))
	}
	return out, total, nil
}

func (r *memoryCaseRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cases), nil
}

func cloneCase(cs *Case) *Case {
	out := *cs
	out.Symptoms = append([]string{}, cs.Symptoms...)
	out.OrderedTests = append([]string{}, cs.OrderedTests...)
	out.RecommendedTests = append([]string{}, cs.RecommendedTests...)
	out.MandatoryTests = append([]string{}, cs.MandatoryTests...)
	out.OptionalTests = append([]string{}, cs.OptionalTests...)
	out.MissingTests = append([]string{}, cs.MissingTests...)
	out.UnnecessaryTests = append([]string{}, cs.UnnecessaryTests...)
	return &out
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
