package sqlite

import "time"

type PetModel struct {
	ID          string `gorm:"primaryKey"`
	OwnerUserID string `gorm:"index;not null"`
	Name        string `gorm:"not null"`
	Type        string `gorm:"not null"`
	Level       int    `gorm:"not null;default:1"`
	Experience  int    `gorm:"not null;default:0"`
	Health      int    `gorm:"not null"`
	Hunger      int    `gorm:"not null"`
	Happiness   int    `gorm:"not null"`
	Energy      int    `gorm:"not null"`
	Status      string `gorm:"not null"`
	LastFed     time.Time
	LastPlayed  time.Time
	LastSlept   time.Time
	BattlesWon  int  `gorm:"not null;default:0"`
	BattlesLost int  `gorm:"not null;default:0"`
	Active      bool `gorm:"index;not null;default:true"`

	// El dominio es dueño de los timestamps; gorm no los toca.
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (PetModel) TableName() string { return "pets" }

type CareLogModel struct {
	ID           string    `gorm:"primaryKey"`
	PetID        string    `gorm:"index;not null"`
	Type         string    `gorm:"not null"`
	OccurredAt   time.Time `gorm:"index"`
	RecordedAt   time.Time
	ActorType    string
	ActorID      string
	StatusBefore string
	StatusAfter  string
	Detail       string
}

func (CareLogModel) TableName() string { return "care_log" }
