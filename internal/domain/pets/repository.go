package pets

import "context"

// Repository persiste mascotas. Mutate es el punto de serialización:
// acciones concurrentes sobre la MISMA mascota deben ejecutarse como
// read-modify-write atómico (dos Feed desde el mismo snapshot perderían
// una actualización en silencio). Mascotas distintas pueden ir en paralelo.
type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)

	// ListActive devuelve todas las mascotas con active=true, para el
	// pase de decaimiento.
	ListActive(ctx context.Context) ([]Pet, error)

	// Mutate carga el registro más reciente, aplica fn bajo exclusión y
	// persiste el resultado. Si fn devuelve error no se persiste nada.
	Mutate(ctx context.Context, id string, fn func(Pet) (Pet, error)) (Pet, error)
}
