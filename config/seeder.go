package config

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/projeto-es-grupo-3/facilitai-backend/models"
	"github.com/projeto-es-grupo-3/facilitai-backend/utils"
)

func SeedUsers(db *gorm.DB) {
	log.Info().Msg("seeding users...")

	password, _ := utils.HashPassword("password123")

	users := []models.User{
		{
			Username:     "user1",
			Email:        "user1@example.com",
			PasswordHash: password,
			EnrollmentID: "120110001",
			Campus:       "CG",
			Course:       "CC",
		},
		{
			Username:     "user2",
			Email:        "user2@example.com",
			PasswordHash: password,
			EnrollmentID: "120110002",
			Campus:       "CG",
			Course:       "EE",
		},
	}

	for _, user := range users {
		var existingUser models.User
		if err := db.Where("email = ?", user.Email).First(&existingUser).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&user).Error; err != nil {
					log.Error().Err(err).Str("username", user.Username).Msg("failed to seed user")
				} else {
					log.Info().Str("username", user.Username).Uint("id", user.ID).Msg("user seeded")
				}
			}
		} else {
			log.Info().Str("username", user.Username).Msg("user already exists")
		}
	}
}

func SeedListings(db *gorm.DB) {
	log.Info().Msg("seeding listings...")

	var author models.User
	if err := db.Where("username = ?", "user1").First(&author).Error; err != nil {
		log.Error().Err(err).Msg("seed user missing, skipping listings")
		return
	}

	var count int64
	db.Model(&models.Listing{}).Count(&count)
	if count > 0 {
		log.Info().Msg("listings already seeded")
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		book := models.Listing{
			UserID:      author.ID,
			Title:       "Calculus textbook, barely used",
			Description: "Third edition, no annotations.",
			Price:       35.0,
			Status:      models.StatusAwaitingAction,
			Category:    models.CategoryBook,
		}
		if err := tx.Create(&book).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.BookDetail{
			ListingID:    book.ID,
			BookTitle:    "Calculus",
			AuthorName:   "James Stewart",
			Genre:        "Mathematics",
			AcceptsTrade: true,
		}).Error; err != nil {
			return err
		}

		apartment := models.Listing{
			UserID:      author.ID,
			Title:       "Room near campus",
			Description: "Two blocks from the main gate.",
			Price:       450.0,
			Status:      models.StatusAwaitingAction,
			Category:    models.CategoryApartment,
		}
		if err := tx.Create(&apartment).Error; err != nil {
			return err
		}
		return tx.Create(&models.ApartmentDetail{
			ListingID: apartment.ID,
			Address:   "Aprigio Veloso St, 882",
			Area:      40,
			Rooms:     2,
		}).Error
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to seed listings")
		return
	}
	log.Info().Msg("seeding complete")
}
