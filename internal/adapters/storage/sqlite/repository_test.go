package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"virtual-pet-service/internal/domain/carelog"
	"virtual-pet-service/internal/domain/pets"
)

func openTestDB(t *testing.T) *PetsRepo {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "pets.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return NewPetsRepo(db)
}

func samplePet(id, owner string) pets.Pet {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return pets.Pet{
		ID:          id,
		OwnerUserID: owner,
		Name:        "Michi",
		Type:        pets.TypeCat,
		Level:       1,
		Health:      100,
		Hunger:      100,
		Happiness:   100,
		Energy:      100,
		Status:      pets.StatusHappy,
		LastFed:     now,
		LastPlayed:  now,
		LastSlept:   now,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestPetsRepo_CreateAndGet(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	p := samplePet("pet-1", "user-1")
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, "pet-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Michi" || got.Type != pets.TypeCat || got.Hunger != 100 {
		t.Fatalf("registro inesperado: %+v", got)
	}
	if !got.Active {
		t.Fatal("la mascota debería estar activa")
	}
}

func TestPetsRepo_GetByID_NotFound(t *testing.T) {
	repo := openTestDB(t)

	_, err := repo.GetByID(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("se esperaba ErrNotFound, vino %v", err)
	}
}

func TestPetsRepo_Mutate_PersistsResult(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	if err := repo.Create(ctx, samplePet("pet-1", "user-1")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	now := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	updated, err := repo.Mutate(ctx, "pet-1", func(p pets.Pet) (pets.Pet, error) {
		return pets.Feed(p, now), nil
	})
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}
	if updated.Experience != 10 {
		t.Fatalf("experiencia esperada 10, vino %d", updated.Experience)
	}

	got, err := repo.GetByID(ctx, "pet-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Experience != 10 || !got.LastFed.Equal(now) {
		t.Fatalf("el Mutate no persistió: %+v", got)
	}
}

func TestPetsRepo_Mutate_FnErrorAborts(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	if err := repo.Create(ctx, samplePet("pet-1", "user-1")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	boom := errors.New("boom")
	_, err := repo.Mutate(ctx, "pet-1", func(p pets.Pet) (pets.Pet, error) {
		p.Health = 0
		return p, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("se esperaba el error de fn, vino %v", err)
	}

	got, _ := repo.GetByID(ctx, "pet-1")
	if got.Health != 100 {
		t.Fatalf("la transacción no hizo rollback: health=%d", got.Health)
	}
}

func TestPetsRepo_ListActive_SkipsInactive(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	a := samplePet("pet-a", "user-1")
	b := samplePet("pet-b", "user-2")
	b.Active = false
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create a: %v", err)
	}
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("Create b: %v", err)
	}

	active, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 1 || active[0].ID != "pet-a" {
		t.Fatalf("se esperaba solo pet-a, vino %+v", active)
	}
}

func TestCareLogRepo_ListByPet_Filters(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "pets.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	repo := NewCareLogRepo(db)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entries := []carelog.Entry{
		{ID: "e1", PetID: "pet-1", Type: carelog.EntryTypeFed, OccurredAt: base, RecordedAt: base},
		{ID: "e2", PetID: "pet-1", Type: carelog.EntryTypePlayed, OccurredAt: base.Add(time.Hour), RecordedAt: base.Add(time.Hour)},
		{ID: "e3", PetID: "pet-1", Type: carelog.EntryTypeFed, OccurredAt: base.Add(2 * time.Hour), RecordedAt: base.Add(2 * time.Hour)},
		{ID: "e4", PetID: "pet-2", Type: carelog.EntryTypeFed, OccurredAt: base, RecordedAt: base},
	}
	for _, e := range entries {
		e.Actor = carelog.Actor{Type: carelog.ActorTypeOwnerUser, ID: "user-1"}
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create %s: %v", e.ID, err)
		}
	}

	got, err := repo.ListByPet(ctx, "pet-1", carelog.ListFilter{Types: []carelog.EntryType{carelog.EntryTypeFed}})
	if err != nil {
		t.Fatalf("ListByPet: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("se esperaban 2 entradas FED, vinieron %d", len(got))
	}
	// orden descendente por occurred_at
	if got[0].ID != "e3" || got[1].ID != "e1" {
		t.Fatalf("orden inesperado: %s, %s", got[0].ID, got[1].ID)
	}

	from := base.Add(30 * time.Minute)
	got, err = repo.ListByPet(ctx, "pet-1", carelog.ListFilter{From: &from})
	if err != nil {
		t.Fatalf("ListByPet from: %v", err)
	}
	if len(got) != 2 || got[0].ID != "e3" || got[1].ID != "e2" {
		t.Fatalf("filtro from inesperado: %+v", got)
	}
}
