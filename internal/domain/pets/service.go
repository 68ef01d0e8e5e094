package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
)

type Service struct {
	repo    Repository
	journal Journal // opcional; nil => no se registra nada
	now     func() time.Time
}

func NewService(repo Repository, journal Journal) *Service {
	return &Service{
		repo:    repo,
		journal: journal,
		now:     time.Now,
	}
}

type CreateInput struct {
	Name string
	Type PetType
}

var validTypes = map[PetType]bool{
	TypeCat:    true,
	TypeDog:    true,
	TypeBird:   true,
	TypeFish:   true,
	TypeRabbit: true,
}

// Create registra una mascota nueva: vitales al máximo, experiencia 0 y
// status derivado por el clasificador (con todo en 100 sale "happy").
func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if !validTypes[in.Type] {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Type:        in.Type,
		Level:       LevelFor(0),
		Experience:  0,
		Health:      maxVital,
		Hunger:      maxVital,
		Happiness:   maxVital,
		Energy:      maxVital,
		LastFed:     now,
		LastPlayed:  now,
		LastSlept:   now,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	p.Status = ClassifyStatus(p.Health, p.Hunger, p.Happiness, p.Energy)

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	// Datos externos o editados a mano entran saneados.
	return Normalize(p), nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	items, err := s.repo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i] = Normalize(items[i])
	}
	return items, nil
}

// OwnerOf expone el ownerUserID de una mascota sin acoplar otros módulos
// al modelo completo.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}

// Feed / Play / Sleep / Heal aplican la transición correspondiente dentro
// del read-modify-write atómico del repo y devuelven el registro nuevo.

func (s *Service) Feed(ctx context.Context, petID, actorID string) (Pet, error) {
	return s.applyAction(ctx, petID, actorID, ActionFeed, Feed)
}

func (s *Service) Play(ctx context.Context, petID, actorID string) (Pet, error) {
	return s.applyAction(ctx, petID, actorID, ActionPlay, Play)
}

func (s *Service) Sleep(ctx context.Context, petID, actorID string) (Pet, error) {
	return s.applyAction(ctx, petID, actorID, ActionSleep, Sleep)
}

func (s *Service) Heal(ctx context.Context, petID, actorID string) (Pet, error) {
	return s.applyAction(ctx, petID, actorID, ActionHeal, Heal)
}

func (s *Service) applyAction(
	ctx context.Context,
	petID, actorID string,
	action Action,
	transition func(Pet, time.Time) Pet,
) (Pet, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	var before Status

	updated, err := s.repo.Mutate(ctx, petID, func(p Pet) (Pet, error) {
		if !p.Active {
			return Pet{}, ErrNotFound
		}
		before = Normalize(p).Status
		return transition(p, now), nil
	})
	if err != nil {
		return Pet{}, err
	}

	if s.journal != nil {
		s.journal.Record(ctx, JournalEntry{
			PetID:        updated.ID,
			PetName:      updated.Name,
			Action:       action,
			ActorID:      actorID,
			StatusBefore: before,
			StatusAfter:  updated.Status,
			OccurredAt:   now,
		})
	}

	return updated, nil
}

// Deactivate marca la mascota como inactiva (soft-delete). No borra nada.
func (s *Service) Deactivate(ctx context.Context, petID string) error {
	_, err := s.repo.Mutate(ctx, petID, func(p Pet) (Pet, error) {
		p.Active = false
		p.UpdatedAt = s.now()
		return p, nil
	})
	return err
}

// RunDecayPass aplica Decay a toda la población activa. Cada mascota es
// independiente y el orden entre mascotas no importa. Devuelve cuántas se
// procesaron. Un error en una mascota no corta el pase.
func (s *Service) RunDecayPass(ctx context.Context) (int, error) {
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	processed := 0
	var lastErr error

	for _, item := range items {
		var before Status

		updated, err := s.repo.Mutate(ctx, item.ID, func(p Pet) (Pet, error) {
			if !p.Active {
				return Pet{}, ErrNotFound
			}
			before = Normalize(p).Status
			return Decay(p, now), nil
		})
		if err != nil {
			// Puede haber desaparecido entre el List y el Mutate; se tolera.
			lastErr = err
			continue
		}
		processed++

		// El decaimiento solo se journalea cuando cambia la etiqueta;
		// registrar cada pase sería puro ruido.
		if s.journal != nil && updated.Status != before {
			s.journal.Record(ctx, JournalEntry{
				PetID:        updated.ID,
				PetName:      updated.Name,
				Action:       ActionDecay,
				StatusBefore: before,
				StatusAfter:  updated.Status,
				OccurredAt:   now,
			})
		}
	}

	if processed == 0 && lastErr != nil {
		return 0, lastErr
	}
	return processed, nil
}
