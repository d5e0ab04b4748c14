package config

import (
	"os"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/projeto-es-grupo-3/facilitai-backend/models"
)

func Migrate(db *gorm.DB) error {
	// Migrate the schema
	err := db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.BookDetail{},
		&models.ApartmentDetail{},
		&models.Favorite{},
		&models.RevokedToken{},
	)

	if err != nil {
		log.Error().Err(err).Msg("failed to migrate database schema")
		return err
	}

	log.Info().Msg("database migrations completed")
	return nil
}

// EnsureUploadDir creates the image storage directory if it is missing.
func EnsureUploadDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
