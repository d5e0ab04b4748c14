package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/projeto-es-grupo-3/facilitai-backend/middleware"
	"github.com/projeto-es-grupo-3/facilitai-backend/models"
	"github.com/projeto-es-grupo-3/facilitai-backend/utils"
)

type UserHandler struct {
	DB *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// UpdateProfileRequest is a sparse patch: empty fields keep prior values.
type UpdateProfileRequest struct {
	Username string `json:"username"`
	Campus   string `json:"campus"`
	Password string `json:"password"`
	Course   string `json:"course"`
}

// UpdateProfile - POST /update
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No user logged in"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if req.Username != "" && req.Username != user.Username {
		var other models.User
		if err := h.DB.Where("username = ?", req.Username).First(&other).Error; err == nil && other.ID != user.ID {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Username not available"})
		}
		user.Username = req.Username
	}
	if req.Campus != "" {
		user.Campus = req.Campus
	}
	if req.Course != "" {
		user.Course = req.Course
	}
	if req.Password != "" {
		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not hash password"})
		}
		user.PasswordHash = hashed
	}

	if err := h.DB.Save(user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update user"})
	}

	return c.JSON(fiber.Map{"message": "User updated successfully"})
}
