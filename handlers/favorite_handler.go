package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/projeto-es-grupo-3/facilitai-backend/middleware"
	"github.com/projeto-es-grupo-3/facilitai-backend/models"
)

type FavoriteHandler struct {
	DB *gorm.DB
}

func NewFavoriteHandler(db *gorm.DB) *FavoriteHandler {
	return &FavoriteHandler{DB: db}
}

// FavoriteListing - POST /fav-ad
func (h *FavoriteHandler) FavoriteListing(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User must be logged in"})
	}

	var req struct {
		ListingID uint `json:"listing_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.ListingID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Listing id is required"})
	}

	var listing models.Listing
	if err := h.DB.First(&listing, req.ListingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
	}

	var count int64
	if err := h.DB.Model(&models.Favorite{}).
		Where("user_id = ? AND listing_id = ?", user.ID, listing.ID).
		Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not check favorites"})
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Listing is already in the user's favorites"})
	}

	favorite := models.Favorite{UserID: user.ID, ListingID: listing.ID}
	if err := h.DB.Create(&favorite).Error; err != nil {
		// The composite unique index catches races the pre-check misses.
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Listing is already in the user's favorites"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Listing added to favorites", "id": favorite.ID})
}

// GetFavorites - GET /get-fav-ads
//
// Returns the user's favorited listings in the order they were recorded.
func (h *FavoriteHandler) GetFavorites(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User must be logged in"})
	}

	var favorites []models.Favorite
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("id asc").
		Preload("Listing").
		Preload("Listing.Author").
		Preload("Listing.Book").
		Preload("Listing.Apartment").
		Find(&favorites).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch favorites"})
	}

	views := make([]models.ListingView, 0, len(favorites))
	for _, f := range favorites {
		if f.Listing == nil {
			continue
		}
		views = append(views, f.Listing.View(false))
	}

	return c.JSON(fiber.Map{"data": views})
}
