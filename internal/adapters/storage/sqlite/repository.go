package sqlite

import (
	"context"
	"errors"
	"strings"

	"virtual-pet-service/internal/domain/carelog"
	"virtual-pet-service/internal/domain/pets"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("not found")
)

type PetsRepo struct {
	db *gorm.DB
}

func NewPetsRepo(db *gorm.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	m := toPetModel(p)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	var m PetModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}
	return toPet(m), nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows := make([]PetModel, 0)
	err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]pets.Pet, 0, len(rows))
	for _, m := range rows {
		out = append(out, toPet(m))
	}
	return out, nil
}

func (r *PetsRepo) ListActive(ctx context.Context) ([]pets.Pet, error) {
	rows := make([]PetModel, 0)
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]pets.Pet, 0, len(rows))
	for _, m := range rows {
		out = append(out, toPet(m))
	}
	return out, nil
}

// Mutate serializa el read-modify-write dentro de una transacción.
// sqlite tiene un único writer, así que la transacción alcanza como
// exclusión entre acciones sobre la misma mascota.
func (r *PetsRepo) Mutate(ctx context.Context, id string, fn func(pets.Pet) (pets.Pet, error)) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	var result pets.Pet
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m PetModel
		if err := tx.First(&m, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		next, err := fn(toPet(m))
		if err != nil {
			return err
		}

		nm := toPetModel(next)
		if err := tx.Save(&nm).Error; err != nil {
			return err
		}

		result = next
		return nil
	})
	if err != nil {
		return pets.Pet{}, err
	}
	return result, nil
}

type CareLogRepo struct {
	db *gorm.DB
}

func NewCareLogRepo(db *gorm.DB) *CareLogRepo {
	return &CareLogRepo{db: db}
}

func (r *CareLogRepo) Create(ctx context.Context, e carelog.Entry) error {
	m := CareLogModel{
		ID:           e.ID,
		PetID:        e.PetID,
		Type:         string(e.Type),
		OccurredAt:   e.OccurredAt,
		RecordedAt:   e.RecordedAt,
		ActorType:    string(e.Actor.Type),
		ActorID:      e.Actor.ID,
		StatusBefore: e.StatusBefore,
		StatusAfter:  e.StatusAfter,
		Detail:       e.Detail,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *CareLogRepo) ListByPet(ctx context.Context, petID string, filter carelog.ListFilter) ([]carelog.Entry, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	q := r.db.WithContext(ctx).Model(&CareLogModel{}).Where("pet_id = ?", petID)
	if len(filter.Types) > 0 {
		types := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			types = append(types, string(t))
		}
		q = q.Where("type IN ?", types)
	}
	if filter.From != nil {
		q = q.Where("occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("occurred_at <= ?", *filter.To)
	}

	rows := make([]CareLogModel, 0)
	if err := q.Order("occurred_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]carelog.Entry, 0, len(rows))
	for _, m := range rows {
		out = append(out, carelog.Entry{
			ID:           m.ID,
			PetID:        m.PetID,
			Type:         carelog.EntryType(m.Type),
			OccurredAt:   m.OccurredAt,
			RecordedAt:   m.RecordedAt,
			Actor:        carelog.Actor{Type: carelog.ActorType(m.ActorType), ID: m.ActorID},
			StatusBefore: m.StatusBefore,
			StatusAfter:  m.StatusAfter,
			Detail:       m.Detail,
		})
	}
	return out, nil
}

func toPetModel(p pets.Pet) PetModel {
	return PetModel{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Type:        string(p.Type),
		Level:       p.Level,
		Experience:  p.Experience,
		Health:      p.Health,
		Hunger:      p.Hunger,
		Happiness:   p.Happiness,
		Energy:      p.Energy,
		Status:      string(p.Status),
		LastFed:     p.LastFed,
		LastPlayed:  p.LastPlayed,
		LastSlept:   p.LastSlept,
		BattlesWon:  p.BattlesWon,
		BattlesLost: p.BattlesLost,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPet(m PetModel) pets.Pet {
	return pets.Pet{
		ID:          m.ID,
		OwnerUserID: m.OwnerUserID,
		Name:        m.Name,
		Type:        pets.PetType(m.Type),
		Level:       m.Level,
		Experience:  m.Experience,
		Health:      m.Health,
		Hunger:      m.Hunger,
		Happiness:   m.Happiness,
		Energy:      m.Energy,
		Status:      pets.Status(m.Status),
		LastFed:     m.LastFed,
		LastPlayed:  m.LastPlayed,
		LastSlept:   m.LastSlept,
		BattlesWon:  m.BattlesWon,
		BattlesLost: m.BattlesLost,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
