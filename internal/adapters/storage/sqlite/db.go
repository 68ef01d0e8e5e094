package sqlite

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// Open abre (o crea) la base sqlite en path usando el driver modernc
// (sin cgo) por debajo de gorm.
func Open(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path,
	}, &gorm.Config{})
}

// Migrate crea/actualiza el esquema. Dos tablas, alcanza con AutoMigrate.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&PetModel{}, &CareLogModel{})
}
