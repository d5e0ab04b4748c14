package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/projeto-es-grupo-3/facilitai-backend/models"
	"github.com/projeto-es-grupo-3/facilitai-backend/utils"
)

// Locals keys set by Protected for downstream handlers.
const (
	LocalUser = "user"
	LocalJTI  = "jti"
)

// Protected returns a middleware that validates the bearer token, rejects
// revoked jtis and resolves the token subject to the stored user. The user
// and jti are stored in the request locals.
func Protected(db *gorm.DB, jwtService *utils.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing authorization header"})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid authorization header format"})
		}

		claims, err := jwtService.ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Revocation check runs on every protected request.
		var revoked int64
		if err := db.Model(&models.RevokedToken{}).Where("jti = ?", claims.ID).Count(&revoked).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not verify token"})
		}
		if revoked > 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token has been revoked"})
		}

		var user models.User
		if err := db.Where("username = ?", claims.Subject).First(&user).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
		}

		c.Locals(LocalUser, &user)
		c.Locals(LocalJTI, claims.ID)

		return c.Next()
	}
}

// CurrentUser pulls the authenticated user placed in locals by Protected.
func CurrentUser(c *fiber.Ctx) *models.User {
	if u, ok := c.Locals(LocalUser).(*models.User); ok {
		return u
	}
	return nil
}
