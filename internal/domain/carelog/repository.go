package carelog

import (
	"context"
	"time"
)

type ListFilter struct {
	Limit int
	Types []EntryType
	From  *time.Time
	To    *time.Time
}

type Repository interface {
	Create(ctx context.Context, e Entry) error

	// ListByPet devuelve entradas ordenadas por occurred_at desc.
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Entry, error)
}
