package pets

import "time"

// PetType define las especies soportadas.
// @Enum cat, dog, bird, fish, rabbit
type PetType string

const (
	TypeCat    PetType = "cat"
	TypeDog    PetType = "dog"
	TypeBird   PetType = "bird"
	TypeFish   PetType = "fish"
	TypeRabbit PetType = "rabbit"
)

// Status es la etiqueta derivada de los cuatro vitales.
// Nunca se guarda "stale": se recalcula tras cada mutación del engine.
// @Enum active, sleeping, sick, happy, hungry
type Status string

const (
	StatusActive   Status = "active"
	StatusSleeping Status = "sleeping"
	StatusSick     Status = "sick"
	StatusHappy    Status = "happy"
	StatusHungry   Status = "hungry"
)

// Pet representa una mascota virtual y su vector de atributos.
//
// Ojo con Hunger: semántica invertida respecto al nombre (más alto = más
// alimentada). Se conserva así por compatibilidad con clientes existentes.
type Pet struct {
	ID          string
	OwnerUserID string

	Name string
	Type PetType

	// Level siempre es floor(Experience/100)+1; nunca se setea aparte.
	Level      int
	Experience int

	// Vitales, clampeados a [0,100] tras cualquier operación del engine.
	Health    int
	Hunger    int
	Happiness int
	Energy    int

	Status Status

	LastFed    time.Time
	LastPlayed time.Time
	LastSlept  time.Time

	// Contadores de batalla: el engine no los toca.
	BattlesWon  int
	BattlesLost int

	// Soft-delete. El engine tampoco lo toca.
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
