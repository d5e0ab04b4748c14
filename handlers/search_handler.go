package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/projeto-es-grupo-3/facilitai-backend/models"
)

type SearchHandler struct {
	DB *gorm.DB
}

func NewSearchHandler(db *gorm.DB) *SearchHandler {
	return &SearchHandler{DB: db}
}

// SearchBooks - GET /search-books
//
// Every filter is optional; supplied filters combine with AND. Without
// filters all book listings come back, in insertion order.
func (h *SearchHandler) SearchBooks(c *fiber.Ctx) error {
	query := h.DB.Model(&models.Listing{}).Select("listings.*").
		Joins("JOIN book_details ON book_details.listing_id = listings.id").
		Where("listings.category = ?", models.CategoryBook)

	if v := c.Query("book_title"); v != "" {
		query = query.Where("LOWER(book_details.book_title) LIKE ?", contains(v))
	}
	if v := c.Query("author_name"); v != "" {
		query = query.Where("LOWER(book_details.author_name) LIKE ?", contains(v))
	}
	if v := c.Query("genre"); v != "" {
		query = query.Where("LOWER(book_details.genre) LIKE ?", contains(v))
	}
	if v := c.Query("price_min"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid price_min"})
		}
		query = query.Where("listings.price >= ?", min)
	}
	if v := c.Query("price_max"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid price_max"})
		}
		query = query.Where("listings.price <= ?", max)
	}
	if v := c.Query("accepts_trade"); v != "" {
		accepts, err := strconv.ParseBool(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid accepts_trade"})
		}
		query = query.Where("book_details.accepts_trade = ?", accepts)
	}

	var listings []models.Listing
	if err := query.Order("listings.id asc").
		Preload("Author").Preload("Book").
		Find(&listings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not search books"})
	}

	return c.JSON(fiber.Map{"data": models.Views(listings)})
}

// SearchApartments - GET /search-apartments
func (h *SearchHandler) SearchApartments(c *fiber.Ctx) error {
	query := h.DB.Model(&models.Listing{}).Select("listings.*").
		Joins("JOIN apartment_details ON apartment_details.listing_id = listings.id").
		Where("listings.category = ?", models.CategoryApartment)

	if v := c.Query("address"); v != "" {
		query = query.Where("LOWER(apartment_details.address) LIKE ?", contains(v))
	}
	if v := c.Query("price_min"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid price_min"})
		}
		query = query.Where("listings.price >= ?", min)
	}
	if v := c.Query("price_max"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid price_max"})
		}
		query = query.Where("listings.price <= ?", max)
	}
	if v := c.Query("min_rooms"); v != "" {
		rooms, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid min_rooms"})
		}
		query = query.Where("apartment_details.rooms >= ?", rooms)
	}

	var listings []models.Listing
	if err := query.Order("listings.id asc").
		Preload("Author").Preload("Apartment").
		Find(&listings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not search apartments"})
	}

	return c.JSON(fiber.Map{"data": models.Views(listings)})
}

// contains builds a case-insensitive LIKE pattern. LOWER on both sides keeps
// the match portable between postgres and sqlite.
func contains(v string) string {
	return "%" + strings.ToLower(v) + "%"
}
