package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Server Settings
	AppPort     string
	Host        string
	AppEnv      string
	DatabaseURL string

	// JWT Settings
	JWTSecret string

	// Image storage
	UploadDir string

	// Mail Settings (best-effort notifications)
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	// CORS Settings
	CORSAllowOrigins string
	CORSAllowMethods string
	CORSAllowHeaders string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using environment variables")
	}

	config := &Config{
		AppPort:     getEnv("PORT", "8080"),
		Host:        getEnv("HOST", "0.0.0.0"),
		AppEnv:      getEnv("APP_ENV", "dev"),
		DatabaseURL: getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=facilitai port=5432 sslmode=disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		UploadDir: getEnv("UPLOAD_DIR", "./uploads/images"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "465"),
		SMTPUsername: getEnv("EMAIL_USERNAME", ""),
		SMTPPassword: getEnv("EMAIL_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", "facilitai-ufcg@gmail.com"),

		CORSAllowOrigins: "*",
		CORSAllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		CORSAllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}

	if config.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	return config
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
