package intake

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no draft exists for the given id, including
// after a successful submit.
var ErrNotFound = errors.New("draft not found")

type DraftStore interface {
	Create(ctx context.Context, d *Draft) error
	Get(ctx context.Context, id uuid.UUID) (*Draft, error)
	Save(ctx context.Context, d *Draft) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// memoryDraftStore keeps wizard drafts in process memory, keyed by draft id.
type memoryDraftStore struct {
	mu     sync.RWMutex
	drafts map[uuid.UUID]*Draft
}

func NewMemoryDraftStore() DraftStore {
	return &memoryDraftStore{drafts: make(map[uuid.UUID]*Draft)}
}

func (s *memoryDraftStore) Create(_ context.Context, d *Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.ID = uuid.New()
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	s.drafts[d.ID] = cloneDraft(d)
	return nil
}

func (s *memoryDraftStore) Get(_ context.Context, id uuid.UUID) (*Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drafts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneDraft(d), nil
}

func (s *memoryDraftStore) Save(_ context.Context, d *Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.drafts[d.ID]
	if !ok {
		return ErrNotFound
	}
	d.CreatedAt = stored.CreatedAt
	d.UpdatedAt = time.Now().UTC()
	s.drafts[d.ID] = cloneDraft(d)
	return nil
}

func (s *memoryDraftStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drafts[id]; !ok {
		return ErrNotFound
	}
	delete(s.drafts, id)
	return nil
}

func cloneDraft(d *Draft) *Draft {
	out := *d
	out.Symptoms = append([]string{}, d.Symptoms...)
	out.SelectedTests = append([]string{}, d.SelectedTests...)
	if d.Outcome != nil {
		oc := *d.Outcome
		oc.RecommendedTests = append([]string{}, d.Outcome.RecommendedTests...)
		oc.MandatoryTests = append([]string{}, d.Outcome.MandatoryTests...)
		oc.OptionalTests = append([]string{}, d.Outcome.OptionalTests...)
		out.Outcome = &oc
	}
	return &out
}
