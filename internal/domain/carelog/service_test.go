package carelog

import (
	"context"
	"errors"
	"testing"
	"time"

	"virtual-pet-service/internal/domain/pets"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Entry
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Entry{}}
}

func (r *testRepo) Create(ctx context.Context, e Entry) error {
	if e.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[e.ID] = e
	return nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Entry, error) {
	out := make([]Entry, 0)
	for _, e := range r.byID {
		if e.PetID == petID {
			out = append(out, e)
		}
	}
	return out, nil
}

type testBroadcast struct {
	entries []Entry
}

func (b *testBroadcast) BroadcastEntry(e Entry) {
	b.entries = append(b.entries, e)
}

// -------------------------
// Tests
// -------------------------

func TestService_Record_MapsActionAndActor(t *testing.T) {
	repo := newTestRepo()
	bc := &testBroadcast{}
	svc := NewService(repo, bc)

	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	occurred := now.Add(-1 * time.Second)
	svc.Record(context.Background(), pets.JournalEntry{
		PetID:        "pet-1",
		PetName:      "Milo",
		Action:       pets.ActionFeed,
		ActorID:      "owner-1",
		StatusBefore: pets.StatusHungry,
		StatusAfter:  pets.StatusActive,
		OccurredAt:   occurred,
	})

	items, err := svc.ListByPet(context.Background(), "pet-1", ListFilter{})
	if err != nil {
		t.Fatalf("ListByPet error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(items))
	}

	e := items[0]
	if e.Type != EntryTypeFed {
		t.Fatalf("expected FED, got %s", e.Type)
	}
	if e.Actor.Type != ActorTypeOwnerUser || e.Actor.ID != "owner-1" {
		t.Fatalf("unexpected actor: %#v", e.Actor)
	}
	if e.OccurredAt != occurred || e.RecordedAt != now {
		t.Fatalf("expected occurred/recorded split, got %#v", e)
	}
	if e.StatusBefore != "hungry" || e.StatusAfter != "active" {
		t.Fatalf("unexpected status fields: %#v", e)
	}

	if len(bc.entries) != 1 {
		t.Fatalf("expected broadcast of 1 entry, got %d", len(bc.entries))
	}
}

func TestService_Record_SchedulerActorWhenNoUser(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	svc.Record(context.Background(), pets.JournalEntry{
		PetID:        "pet-1",
		PetName:      "Milo",
		Action:       pets.ActionDecay,
		StatusBefore: pets.StatusActive,
		StatusAfter:  pets.StatusHungry,
		OccurredAt:   time.Now(),
	})

	items, _ := svc.ListByPet(context.Background(), "pet-1", ListFilter{})
	if len(items) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(items))
	}
	if items[0].Type != EntryTypeStatusChanged {
		t.Fatalf("expected STATUS_CHANGED for decay, got %s", items[0].Type)
	}
	if items[0].Actor.Type != ActorTypeScheduler {
		t.Fatalf("expected scheduler actor, got %#v", items[0].Actor)
	}
}
