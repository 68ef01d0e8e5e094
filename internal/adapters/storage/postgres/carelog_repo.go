package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"virtual-pet-service/internal/domain/carelog"
)

type CareLogRepo struct {
	db *sql.DB
}

func NewCareLogRepo(db *sql.DB) *CareLogRepo {
	return &CareLogRepo{db: db}
}

func (r *CareLogRepo) Create(ctx context.Context, e carelog.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO care_log (
			id, pet_id, type,
			occurred_at, recorded_at,
			actor_type, actor_id,
			status_before, status_after,
			detail
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		e.ID,
		e.PetID,
		string(e.Type),
		e.OccurredAt,
		e.RecordedAt,
		string(e.Actor.Type),
		e.Actor.ID,
		e.StatusBefore,
		e.StatusAfter,
		e.Detail,
	)
	return err
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

	// Query dinámica simple; los placeholders se numeran a mano.
	where := []string{"pet_id = $1"}
	args := []any{petID}

	if len(filter.Types) > 0 {
		marks := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			args = append(args, string(t))
			marks = append(marks, fmt.Sprintf("$%d", len(args)))
		}
		where = append(where, "type IN ("+strings.Join(marks, ",")+")")
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where = append(where, fmt.Sprintf("occurred_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where = append(where, fmt.Sprintf("occurred_at <= $%d", len(args)))
	}

	args = append(args, limit)
	query := `
		SELECT
			id, pet_id, type,
			occurred_at, recorded_at,
			actor_type, actor_id,
			status_before, status_after,
			detail
		FROM care_log
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY occurred_at DESC
		LIMIT $` + fmt.Sprint(len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]carelog.Entry, 0)
	for rows.Next() {
		var e carelog.Entry
		var entryType, actorType string
		if err := rows.Scan(
			&e.ID,
			&e.PetID,
			&entryType,
			&e.OccurredAt,
			&e.RecordedAt,
			&actorType,
			&e.Actor.ID,
			&e.StatusBefore,
			&e.StatusAfter,
			&e.Detail,
		); err != nil {
			return nil, err
		}
		e.Type = carelog.EntryType(entryType)
		e.Actor.Type = carelog.ActorType(actorType)
		out = append(out, e)
	}

	return out, rows.Err()
}
