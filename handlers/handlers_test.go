package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/projeto-es-grupo-3/facilitai-backend/config"
	"github.com/projeto-es-grupo-3/facilitai-backend/utils"
)

// setupTestApp builds the full route table over an in-memory sqlite DB.
func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// A single connection keeps every query on the same :memory: database.
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	app := fiber.New()
	SetupRoutes(app, db, utils.NewJWTService("test-secret"), nil, t.TempDir())
	return app, db
}

// doRequest performs a JSON request against the app and decodes the response
// body into a generic map.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	out := map[string]any{}
	if resp.Body != nil {
		_ = json.NewDecoder(resp.Body).Decode(&out)
		resp.Body.Close()
	}
	return resp, out
}

// registerUser creates a user through the API. Suffix keeps unique fields
// distinct between users of the same test.
func registerUser(t *testing.T, app *fiber.App, suffix string) (username, password string) {
	t.Helper()

	username = "user" + suffix
	password = "password123"
	resp, body := doRequest(t, app, http.MethodPost, "/register", "", map[string]any{
		"username":      username,
		"email":         fmt.Sprintf("user%s@example.com", suffix),
		"enrollment_id": fmt.Sprintf("12012%04s", suffix),
		"campus":        "CG",
		"password":      password,
		"course":        "CC",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d body %v", username, resp.StatusCode, body)
	}
	return username, password
}

// loginUser logs in and returns the bearer token.
func loginUser(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()

	resp, body := doRequest(t, app, http.MethodPost, "/login", "", map[string]any{
		"username": username,
		"password": password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d body %v", username, resp.StatusCode, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("login %s: no token in response %v", username, body)
	}
	return token
}

// createBook posts a book listing and returns its id.
func createBook(t *testing.T, app *fiber.App, token string, fields map[string]any) uint {
	t.Helper()

	payload := map[string]any{
		"title":         "Book for sale",
		"description":   "Good condition",
		"price":         10.0,
		"category":      "book",
		"book_title":    "Book A",
		"author_name":   "Author X",
		"genre":         "Fiction",
		"accepts_trade": true,
	}
	for k, v := range fields {
		payload[k] = v
	}
	resp, body := doRequest(t, app, http.MethodPost, "/create-ad", token, payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create book: status %d body %v", resp.StatusCode, body)
	}
	return listingID(t, body)
}

// createApartment posts an apartment listing and returns its id.
func createApartment(t *testing.T, app *fiber.App, token string, fields map[string]any) uint {
	t.Helper()

	payload := map[string]any{
		"title":       "Apartment 1",
		"description": "Description 1",
		"price":       1000.0,
		"category":    "apartment",
		"address":     "Address 1",
		"area":        50,
		"rooms":       2,
	}
	for k, v := range fields {
		payload[k] = v
	}
	resp, body := doRequest(t, app, http.MethodPost, "/create-ad", token, payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create apartment: status %d body %v", resp.StatusCode, body)
	}
	return listingID(t, body)
}

func listingID(t *testing.T, body map[string]any) uint {
	t.Helper()

	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("no data in response %v", body)
	}
	id, ok := data["id"].(float64)
	if !ok || id == 0 {
		t.Fatalf("no listing id in response %v", body)
	}
	return uint(id)
}

func dataSlice(t *testing.T, body map[string]any) []map[string]any {
	t.Helper()

	raw, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("no data array in response %v", body)
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			t.Fatalf("unexpected item %v", item)
		}
		out = append(out, m)
	}
	return out
}
