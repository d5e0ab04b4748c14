package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/projeto-es-grupo-3/facilitai-backend/middleware"
	"github.com/projeto-es-grupo-3/facilitai-backend/models"
	"github.com/projeto-es-grupo-3/facilitai-backend/utils"
)

// EnrollmentIDLength is the fixed size of a valid matricula.
const EnrollmentIDLength = 9

type AuthHandler struct {
	DB  *gorm.DB
	JWT *utils.JWTService
}

func NewAuthHandler(db *gorm.DB, jwt *utils.JWTService) *AuthHandler {
	return &AuthHandler{DB: db, JWT: jwt}
}

// RegisterRequest defines the payload for registration
type RegisterRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	EnrollmentID string `json:"enrollment_id"`
	Campus       string `json:"campus"`
	Password     string `json:"password"`
	Course       string `json:"course"`
}

// LoginRequest defines the payload for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register - POST /register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if req.Username == "" || req.Email == "" || req.EnrollmentID == "" ||
		req.Campus == "" || req.Password == "" || req.Course == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "All fields must be filled"})
	}

	if len(req.EnrollmentID) != EnrollmentIDLength {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid enrollment id"})
	}

	// Uniqueness checks surface a precise conflict message; the unique
	// indexes still back them up at the storage layer.
	var count int64
	if err := h.DB.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create user"})
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Username already registered"})
	}
	if err := h.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create user"})
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already registered"})
	}
	if err := h.DB.Model(&models.User{}).Where("enrollment_id = ?", req.EnrollmentID).Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create user"})
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Enrollment id already registered"})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not hash password"})
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		EnrollmentID: req.EnrollmentID,
		Campus:       req.Campus,
		Course:       req.Course,
	}

	if err := h.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "User already exists"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User registered successfully"})
}

// Login - POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	// Lookup and hash failures share one message so usernames can't be
	// enumerated.
	var user models.User
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := h.JWT.GenerateToken(user.Username)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not login"})
	}

	return c.JSON(fiber.Map{
		"message": "Logged in successfully",
		"token":   token,
		"user": fiber.Map{
			"id":        user.ID,
			"username":  user.Username,
			"email":     user.Email,
			"image_url": user.ProfileImg,
		},
	})
}

// Logout - DELETE /logout
//
// Records the token's jti in the revocation store. Revoking an already
// revoked jti is harmless.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	jti, _ := c.Locals(middleware.LocalJTI).(string)
	if jti == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	revoked := models.RevokedToken{JTI: jti}
	if err := h.DB.Where("jti = ?", jti).FirstOrCreate(&revoked).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not revoke token"})
	}

	return c.JSON(fiber.Map{"message": "Token revoked"})
}
