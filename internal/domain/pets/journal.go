package pets

import (
	"context"
	"time"
)

// Action identifica una transición del engine para el journal.
type Action string

const (
	ActionFeed  Action = "feed"
	ActionPlay  Action = "play"
	ActionSleep Action = "sleep"
	ActionHeal  Action = "heal"
	ActionDecay Action = "decay"
)

// JournalEntry es lo que el servicio reporta tras cada transición aplicada.
type JournalEntry struct {
	PetID   string
	PetName string

	Action Action

	// ActorID vacío cuando el actor es el scheduler.
	ActorID string

	StatusBefore Status
	StatusAfter  Status

	OccurredAt time.Time
}

// Journal recibe las entradas. Lo implementa el módulo carelog; acá solo
// se declara el puerto para no acoplar pets a ese módulo.
// El registro es best-effort: no puede vetar la transición ya persistida.
type Journal interface {
	Record(ctx context.Context, e JournalEntry)
}
