package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/projeto-es-grupo-3/facilitai-backend/middleware"
	"github.com/projeto-es-grupo-3/facilitai-backend/models"
)

var (
	errNoFile      = errors.New("image file is required")
	errBadFileType = errors.New("only .jpg, .jpeg, and .png files are allowed")
)

// UploadHandler handles image uploads and retrieval
type UploadHandler struct {
	DB        *gorm.DB
	UploadDir string
}

func NewUploadHandler(db *gorm.DB, uploadDir string) *UploadHandler {
	return &UploadHandler{DB: db, UploadDir: uploadDir}
}

// UploadListingImage - POST /upload-image
//
// Attaches an image to one of the caller's own listings.
func (h *UploadHandler) UploadListingImage(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User must be logged in"})
	}

	listingID, err := strconv.Atoi(c.FormValue("listing_id"))
	if err != nil || listingID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Listing id is required"})
	}

	var listing models.Listing
	if err := h.DB.First(&listing, listingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
	}
	if listing.UserID != user.ID {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Only the author may attach an image"})
	}

	filename, err := h.saveFile(c, "image")
	if err != nil {
		return uploadError(c, err)
	}

	if err := h.DB.Model(&listing).Update("image_file", filename).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not save image reference"})
	}

	return c.JSON(fiber.Map{"message": "Image uploaded", "url": "/image/" + filename})
}

// UploadProfileImage - POST /upload-profile
func (h *UploadHandler) UploadProfileImage(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User must be logged in"})
	}

	filename, err := h.saveFile(c, "image")
	if err != nil {
		return uploadError(c, err)
	}

	if err := h.DB.Model(user).Update("profile_img", filename).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not save image reference"})
	}

	return c.JSON(fiber.Map{"message": "Image uploaded", "url": "/image/" + filename})
}

// ServeImage - GET /image/:file_name
func (h *UploadHandler) ServeImage(c *fiber.Ctx) error {
	// filepath.Base strips any traversal the client smuggles in.
	name := filepath.Base(c.Params("file_name"))
	if name == "." || name == "/" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid file name"})
	}
	return c.SendFile(filepath.Join(h.UploadDir, name))
}

// saveFile stores the uploaded file under a collision-free name and returns
// that name.
func (h *UploadHandler) saveFile(c *fiber.Ctx, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", errNoFile
	}

	// Validate file type (simple check extension)
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", errBadFileType
	}

	filename := fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(file.Filename))
	if err := c.SaveFile(file, filepath.Join(h.UploadDir, filename)); err != nil {
		return "", err
	}
	return filename, nil
}

func uploadError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errNoFile) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Image file is required"})
	}
	if errors.Is(err, errBadFileType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only .jpg, .jpeg, and .png files are allowed"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not save file"})
}
