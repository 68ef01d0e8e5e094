package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"virtual-pet-service/internal/domain/carelog"
)

type careLogRepo struct {
	mu   sync.RWMutex
	byID map[string]carelog.Entry
}

func NewCareLogRepo() carelog.Repository {
	return &careLogRepo{
		byID: make(map[string]carelog.Entry),
	}
}

func (r *careLogRepo) Create(ctx context.Context, e carelog.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("entry id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("entry already exists")
	}

	r.byID[e.ID] = e
	return nil
}

func (r *careLogRepo) ListByPet(ctx context.Context, petID string, filter carelog.ListFilter) ([]carelog.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	out := make([]carelog.Entry, 0)

	for _, e := range r.byID {
		if e.PetID != petID {
			continue
		}

		// Type filter
		if len(filter.Types) > 0 {
			ok := false
			for _, t := range filter.Types {
				if e.Type == t {
					ok = true
					break
				}
			}
			if !ok {
				continue
			}
		}

		// Date filters (occurred_at, ambos inclusivos)
		if filter.From != nil {
			if e.OccurredAt.Before(*filter.From) {
				continue
			}
		}
		if filter.To != nil {
			if e.OccurredAt.After(*filter.To) {
				continue
			}
		}

		out = append(out, e)
	}

	// Orden por occurred_at desc (más reciente primero)
	sort.Slice(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}
