package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/projeto-es-grupo-3/facilitai-backend/middleware"
	"github.com/projeto-es-grupo-3/facilitai-backend/utils"
)

// SetupRoutes wires every endpoint to its handler. Handlers get their
// dependencies here, once, instead of reaching for globals.
func SetupRoutes(app *fiber.App, db *gorm.DB, jwtService *utils.JWTService, mailer *utils.Mailer, uploadDir string) {
	authHandler := NewAuthHandler(db, jwtService)
	userHandler := NewUserHandler(db)
	listingHandler := NewListingHandler(db, mailer)
	searchHandler := NewSearchHandler(db)
	favoriteHandler := NewFavoriteHandler(db)
	uploadHandler := NewUploadHandler(db, uploadDir)

	protected := middleware.Protected(db, jwtService)

	// Public routes
	app.Post("/register", authHandler.Register)
	app.Post("/login", authHandler.Login)
	app.Get("/search-books", searchHandler.SearchBooks)
	app.Get("/search-apartments", searchHandler.SearchApartments)

	// Bearer-token routes
	app.Delete("/logout", protected, authHandler.Logout)
	app.Post("/update", protected, userHandler.UpdateProfile)
	app.Post("/create-ad", protected, listingHandler.CreateListing)
	app.Put("/edit-ad", protected, listingHandler.EditListing)
	app.Delete("/delete-ad", protected, listingHandler.DeleteListing)
	app.Post("/fav-ad", protected, favoriteHandler.FavoriteListing)
	app.Get("/get-fav-ads", protected, favoriteHandler.GetFavorites)
	app.Post("/upload-image", protected, uploadHandler.UploadListingImage)
	app.Post("/upload-profile", protected, uploadHandler.UploadProfileImage)
	app.Get("/image/:file_name", protected, uploadHandler.ServeImage)
}
