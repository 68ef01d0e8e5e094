package carelog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"virtual-pet-service/internal/domain/pets"

	"github.com/google/uuid"
)

// Broadcaster empuja entradas nuevas al stream en vivo. Lo implementa el
// hub de websockets; nil => sin stream.
type Broadcaster interface {
	BroadcastEntry(e Entry)
}

type Service struct {
	repo      Repository
	broadcast Broadcaster
	now       func() time.Time
}

func NewService(repo Repository, broadcast Broadcaster) *Service {
	return &Service{
		repo:      repo,
		broadcast: broadcast,
		now:       time.Now,
	}
}

// Record implementa pets.Journal. Es best-effort por contrato: la transición
// ya está persistida, así que un fallo acá no puede (ni debe) revertirla.
func (s *Service) Record(ctx context.Context, je pets.JournalEntry) {
	e := Entry{
		ID:           uuid.NewString(),
		PetID:        je.PetID,
		Type:         entryTypeFor(je.Action),
		OccurredAt:   je.OccurredAt,
		RecordedAt:   s.now(),
		Actor:        actorFor(je),
		StatusBefore: string(je.StatusBefore),
		StatusAfter:  string(je.StatusAfter),
		Detail:       detailFor(je),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		// Sin logger acá a propósito: el caller decide qué loguear.
		return
	}

	if s.broadcast != nil {
		s.broadcast.BroadcastEntry(e)
	}
}

func (s *Service) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Entry, error) {
	if strings.TrimSpace(petID) == "" {
		return nil, nil
	}
	return s.repo.ListByPet(ctx, petID, filter)
}

func entryTypeFor(a pets.Action) EntryType {
	switch a {
	case pets.ActionFeed:
		return EntryTypeFed
	case pets.ActionPlay:
		return EntryTypePlayed
	case pets.ActionSleep:
		return EntryTypeSlept
	case pets.ActionHeal:
		return EntryTypeHealed
	default:
		return EntryTypeStatusChanged
	}
}

func actorFor(je pets.JournalEntry) Actor {
	if strings.TrimSpace(je.ActorID) == "" {
		return Actor{Type: ActorTypeScheduler, ID: "decay-scheduler"}
	}
	return Actor{Type: ActorTypeOwnerUser, ID: je.ActorID}
}

func detailFor(je pets.JournalEntry) string {
	if je.StatusBefore == je.StatusAfter {
		return fmt.Sprintf("%s: %s sigue %s", je.Action, je.PetName, je.StatusAfter)
	}
	return fmt.Sprintf("%s: %s pasó de %s a %s", je.Action, je.PetName, je.StatusBefore, je.StatusAfter)
}
