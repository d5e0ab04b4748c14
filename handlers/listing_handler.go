package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/projeto-es-grupo-3/facilitai-backend/middleware"
	"github.com/projeto-es-grupo-3/facilitai-backend/models"
	"github.com/projeto-es-grupo-3/facilitai-backend/utils"
)

type ListingHandler struct {
	DB     *gorm.DB
	Mailer *utils.Mailer
}

func NewListingHandler(db *gorm.DB, mailer *utils.Mailer) *ListingHandler {
	return &ListingHandler{DB: db, Mailer: mailer}
}

// CreateListingRequest carries the base fields plus whichever subtype block
// matches the category.
type CreateListingRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`

	// Book fields
	BookTitle    string `json:"book_title"`
	AuthorName   string `json:"author_name"`
	Genre        string `json:"genre"`
	AcceptsTrade bool   `json:"accepts_trade"`

	// Apartment fields
	Address string `json:"address"`
	Area    int    `json:"area"`
	Rooms   int    `json:"rooms"`
}

// EditListingRequest is a sparse patch: only non-nil fields are applied.
type EditListingRequest struct {
	ListingID uint   `json:"listing_id"`
	Category  string `json:"category"`

	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Status      *string  `json:"status"`

	BookTitle    *string `json:"book_title"`
	AuthorName   *string `json:"author_name"`
	Genre        *string `json:"genre"`
	AcceptsTrade *bool   `json:"accepts_trade"`

	Address *string `json:"address"`
	Area    *int    `json:"area"`
	Rooms   *int    `json:"rooms"`
}

// CreateListing - POST /create-ad
func (h *ListingHandler) CreateListing(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User must be logged in"})
	}

	var req CreateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if req.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Category is required"})
	}
	if !models.ValidCategory(req.Category) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No listings of that category"})
	}
	if req.Title == "" || req.Description == "" || req.Price <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "All fields must be filled"})
	}

	listing := models.Listing{
		UserID:      user.ID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Status:      models.StatusAwaitingAction,
		Category:    req.Category,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		switch req.Category {
		case models.CategoryBook:
			if req.BookTitle == "" || req.Genre == "" {
				return errMissingFields
			}
			if err := tx.Create(&listing).Error; err != nil {
				return err
			}
			listing.Book = &models.BookDetail{
				ListingID:    listing.ID,
				BookTitle:    req.BookTitle,
				AuthorName:   req.AuthorName,
				Genre:        req.Genre,
				AcceptsTrade: req.AcceptsTrade,
			}
			return tx.Create(listing.Book).Error
		case models.CategoryApartment:
			if req.Address == "" || req.Area <= 0 || req.Rooms <= 0 {
				return errMissingFields
			}
			if err := tx.Create(&listing).Error; err != nil {
				return err
			}
			listing.Apartment = &models.ApartmentDetail{
				ListingID: listing.ID,
				Address:   req.Address,
				Area:      req.Area,
				Rooms:     req.Rooms,
			}
			return tx.Create(listing.Apartment).Error
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errMissingFields) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "All fields must be filled"})
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Could not create listing"})
	}

	listing.Author = *user
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Listing created", "data": listing.View(true)})
}

var errMissingFields = errors.New("missing fields")

// EditListing - PUT /edit-ad
func (h *ListingHandler) EditListing(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User must be logged in"})
	}

	var req EditListingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	var listing models.Listing
	if err := h.DB.Preload("Book").Preload("Apartment").First(&listing, req.ListingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
	}

	if listing.UserID != user.ID {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Only the author may edit this listing"})
	}

	// The category, when given, must name the listing's actual subtype.
	if req.Category != "" && req.Category != listing.Category {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Category does not match listing"})
	}

	if req.Title != nil && *req.Title != "" {
		listing.Title = *req.Title
	}
	if req.Description != nil && *req.Description != "" {
		listing.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Price must not be negative"})
		}
		listing.Price = *req.Price
	}

	ratingBump := false
	if req.Status != nil && *req.Status != "" {
		if !models.ValidStatus(*req.Status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status"})
		}
		// A completed sale or trade earns the author a rating point.
		if listing.Status != *req.Status &&
			(*req.Status == models.StatusSold || *req.Status == models.StatusTraded) {
			ratingBump = true
		}
		listing.Status = *req.Status
	}

	switch listing.Category {
	case models.CategoryBook:
		if listing.Book != nil {
			if req.BookTitle != nil && *req.BookTitle != "" {
				listing.Book.BookTitle = *req.BookTitle
			}
			if req.AuthorName != nil && *req.AuthorName != "" {
				listing.Book.AuthorName = *req.AuthorName
			}
			if req.Genre != nil && *req.Genre != "" {
				listing.Book.Genre = *req.Genre
			}
			if req.AcceptsTrade != nil {
				listing.Book.AcceptsTrade = *req.AcceptsTrade
			}
		}
	case models.CategoryApartment:
		if listing.Apartment != nil {
			if req.Address != nil && *req.Address != "" {
				listing.Apartment.Address = *req.Address
			}
			if req.Area != nil && *req.Area > 0 {
				listing.Apartment.Area = *req.Area
			}
			if req.Rooms != nil && *req.Rooms > 0 {
				listing.Apartment.Rooms = *req.Rooms
			}
		}
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&listing).Error; err != nil {
			return err
		}
		if listing.Book != nil {
			if err := tx.Save(listing.Book).Error; err != nil {
				return err
			}
		}
		if listing.Apartment != nil {
			if err := tx.Save(listing.Apartment).Error; err != nil {
				return err
			}
		}
		if ratingBump {
			if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
				Update("rating", gorm.Expr("rating + 1")).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Could not update listing"})
	}

	h.notifyFavoriters(&listing)

	listing.Author = *user
	return c.JSON(fiber.Map{"message": "Listing updated successfully", "data": listing.View(true)})
}

// DeleteListing - DELETE /delete-ad
func (h *ListingHandler) DeleteListing(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User must be logged in"})
	}

	var req struct {
		ID uint `json:"id"`
	}
	if err := c.BodyParser(&req); err != nil || req.ID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "The id field must be filled"})
	}

	var listing models.Listing
	if err := h.DB.First(&listing, req.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing does not exist"})
	}

	if listing.UserID != user.ID {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Listing can only be deleted by its author"})
	}

	// Removal cascades to every user's favorites and the subtype row.
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", listing.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", listing.ID).Delete(&models.BookDetail{}).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", listing.ID).Delete(&models.ApartmentDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&listing).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete listing"})
	}

	return c.JSON(fiber.Map{"message": "Listing deleted"})
}

// notifyFavoriters emails everyone who favorited the listing. Best effort:
// failures are logged and otherwise ignored.
func (h *ListingHandler) notifyFavoriters(listing *models.Listing) {
	if h.Mailer == nil {
		return
	}
	var users []models.User
	err := h.DB.Model(&models.User{}).
		Joins("JOIN favorites ON favorites.user_id = users.id").
		Where("favorites.listing_id = ?", listing.ID).
		Find(&users).Error
	if err != nil {
		log.Warn().Err(err).Uint("listing_id", listing.ID).Msg("could not load favoriters for notification")
		return
	}
	for _, u := range users {
		if err := h.Mailer.Notify(u.Email); err != nil {
			log.Warn().Err(err).Str("email", u.Email).Msg("failed to send notification")
		}
	}
}
