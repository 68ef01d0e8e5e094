package carelog

import "time"

type Actor struct {
	Type ActorType
	ID   string
}

// Entry es un registro append-only de actividad del engine sobre una
// mascota: acciones del jugador y cambios de status por decaimiento.
type Entry struct {
	ID    string
	PetID string

	Type EntryType

	// OccurredAt es el "now" con el que se aplicó la transición;
	// RecordedAt es cuándo lo persistió este módulo.
	OccurredAt time.Time
	RecordedAt time.Time

	Actor Actor

	StatusBefore string
	StatusAfter  string

	Detail string
}
