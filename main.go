package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/projeto-es-grupo-3/facilitai-backend/config"
	"github.com/projeto-es-grupo-3/facilitai-backend/handlers"
	"github.com/projeto-es-grupo-3/facilitai-backend/middleware"
	"github.com/projeto-es-grupo-3/facilitai-backend/utils"
)

func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.AppEnv)

	db, err := config.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := config.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	if err := config.EnsureUploadDir(cfg.UploadDir); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("failed to create upload directory")
	}

	if os.Getenv("SEED") == "true" {
		config.SeedUsers(db)
		config.SeedListings(db)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Facilitai Backend",
		ServerHeader: "Facilitai Backend Server/1.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Default 500 statuscode
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			// Retrieve the custom statuscode if it's a *fiber.Error
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": msg,
			})
		},
	})

	middleware.SetupMiddleware(app, cfg)

	// Health Check Endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "success",
			"message": "API is healthy",
		})
	})

	jwtService := utils.NewJWTService(cfg.JWTSecret)
	mailer := utils.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	handlers.SetupRoutes(app, db, jwtService, mailer, cfg.UploadDir)

	log.Info().Str("host", cfg.Host).Str("port", cfg.AppPort).Msg("server starting")

	if err := app.Listen(cfg.Host + ":" + cfg.AppPort); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
