package storage

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/UnitedVilla/checkin-system/models"
)

var DB *gorm.DB

func connectToDB(dsn string) *gorm.DB {
	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if dbError != nil {
		log.Panic("error connection to db: " + dbError.Error())
	}

	DB = db
	return db
}

func performMigrations(db *gorm.DB) {
	db.AutoMigrate(
		&models.Reservation{},
		&models.CheckinSession{},
	)
}

// InitializeDB opens the connection pool and runs migrations. Called once
// at startup with the DSN from the loaded config; handlers only ever read
// the resulting handle.
func InitializeDB(dsn string) *gorm.DB {
	db := connectToDB(dsn)
	performMigrations(db)
	return db
}
