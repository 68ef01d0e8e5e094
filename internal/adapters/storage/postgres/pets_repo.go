package postgres

import (
	"context"
	"database/sql"
	"strings"

	"virtual-pet-service/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, owner_user_id,
	name, type,
	level, experience,
	health, hunger, happiness, energy,
	status,
	last_fed, last_played, last_slept,
	battles_won, battles_lost,
	active,
	created_at, updated_at
`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		string(p.Type),
		p.Level,
		p.Experience,
		p.Health,
		p.Hunger,
		p.Happiness,
		p.Energy,
		string(p.Status),
		p.LastFed,
		p.LastPlayed,
		p.LastSlept,
		p.BattlesWon,
		p.BattlesLost,
		p.Active,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE id = $1
	`, id)

	return scanPet(row)
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPets(rows)
}

func (r *PetsRepo) ListActive(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE active = TRUE
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPets(rows)
}

// Mutate serializa el read-modify-write con una transacción y
// SELECT ... FOR UPDATE: una segunda acción sobre la misma mascota queda
// bloqueada hasta que esta commitee, así ninguna parte de un snapshot viejo.
func (r *PetsRepo) Mutate(ctx context.Context, id string, fn func(pets.Pet) (pets.Pet, error)) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return pets.Pet{}, err
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE id = $1
		FOR UPDATE
	`, id)

	p, err := scanPet(row)
	if err != nil {
		return pets.Pet{}, err
	}

	next, err := fn(p)
	if err != nil {
		return pets.Pet{}, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			type = $3,
			level = $4,
			experience = $5,
			health = $6,
			hunger = $7,
			happiness = $8,
			energy = $9,
			status = $10,
			last_fed = $11,
			last_played = $12,
			last_slept = $13,
			battles_won = $14,
			battles_lost = $15,
			active = $16,
			updated_at = $17
		WHERE id = $1
	`,
		next.ID,
		next.Name,
		string(next.Type),
		next.Level,
		next.Experience,
		next.Health,
		next.Hunger,
		next.Happiness,
		next.Energy,
		string(next.Status),
		next.LastFed,
		next.LastPlayed,
		next.LastSlept,
		next.BattlesWon,
		next.BattlesLost,
		next.Active,
		next.UpdatedAt,
	)
	if err != nil {
		return pets.Pet{}, err
	}

	if err := tx.Commit(); err != nil {
		return pets.Pet{}, err
	}
	return next, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var petType, status string

	if err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&petType,
		&p.Level,
		&p.Experience,
		&p.Health,
		&p.Hunger,
		&p.Happiness,
		&p.Energy,
		&status,
		&p.LastFed,
		&p.LastPlayed,
		&p.LastSlept,
		&p.BattlesWon,
		&p.BattlesLost,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}

	p.Type = pets.PetType(petType)
	p.Status = pets.Status(status)
	return p, nil
}

func collectPets(rows *sql.Rows) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
