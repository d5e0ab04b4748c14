package handlers

import (
	"net/http"
	"testing"

	"github.com/projeto-es-grupo-3/facilitai-backend/models"
)

func TestCreateBookListing(t *testing.T) {
	app, db := setupTestApp(t)
	username, password := registerUser(t, app, "10")
	token := loginUser(t, app, username, password)

	id := createBook(t, app, token, map[string]any{
		"title":         "Calculus for sale",
		"price":         42.5,
		"book_title":    "Calculus",
		"author_name":   "Stewart",
		"genre":         "Mathematics",
		"accepts_trade": true,
	})

	var listing models.Listing
	if err := db.Preload("Book").First(&listing, id).Error; err != nil {
		t.Fatalf("listing not persisted: %v", err)
	}
	if listing.Title != "Calculus for sale" || listing.Price != 42.5 {
		t.Errorf("unexpected base fields: %+v", listing)
	}
	if listing.Status != models.StatusAwaitingAction {
		t.Errorf("status = %q, want %q", listing.Status, models.StatusAwaitingAction)
	}
	if listing.Category != models.CategoryBook {
		t.Errorf("category = %q, want %q", listing.Category, models.CategoryBook)
	}
	if listing.Book == nil {
		t.Fatal("book detail row missing")
	}
	if listing.Book.BookTitle != "Calculus" || listing.Book.Genre != "Mathematics" || !listing.Book.AcceptsTrade {
		t.Errorf("unexpected book fields: %+v", listing.Book)
	}
}

func TestCreateApartmentListing(t *testing.T) {
	app, db := setupTestApp(t)
	username, password := registerUser(t, app, "11")
	token := loginUser(t, app, username, password)

	id := createApartment(t, app, token, map[string]any{
		"address": "Main St, 42",
		"area":    80,
		"rooms":   3,
	})

	var listing models.Listing
	if err := db.Preload("Apartment").First(&listing, id).Error; err != nil {
		t.Fatalf("listing not persisted: %v", err)
	}
	if listing.Apartment == nil {
		t.Fatal("apartment detail row missing")
	}
	if listing.Apartment.Address != "Main St, 42" || listing.Apartment.Rooms != 3 {
		t.Errorf("unexpected apartment fields: %+v", listing.Apartment)
	}
}

func TestCreateListingValidation(t *testing.T) {
	app, _ := setupTestApp(t)
	username, password := registerUser(t, app, "12")
	token := loginUser(t, app, username, password)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"unknown category", map[string]any{
			"title": "x", "description": "y", "price": 1.0, "category": "car",
		}},
		{"missing category", map[string]any{
			"title": "x", "description": "y", "price": 1.0,
		}},
		{"book without book_title", map[string]any{
			"title": "x", "description": "y", "price": 1.0, "category": "book", "genre": "Fiction",
		}},
		{"apartment without address", map[string]any{
			"title": "x", "description": "y", "price": 1.0, "category": "apartment", "area": 10, "rooms": 1,
		}},
		{"missing common fields", map[string]any{
			"category": "book", "book_title": "B", "genre": "Fiction",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doRequest(t, app, http.MethodPost, "/create-ad", token, tt.payload)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
			}
		})
	}
}

func TestEditListingRequiresAuthor(t *testing.T) {
	app, _ := setupTestApp(t)
	owner, ownerPass := registerUser(t, app, "13")
	other, otherPass := registerUser(t, app, "14")
	ownerToken := loginUser(t, app, owner, ownerPass)
	otherToken := loginUser(t, app, other, otherPass)

	id := createBook(t, app, ownerToken, nil)

	resp, _ := doRequest(t, app, http.MethodPut, "/edit-ad", otherToken, map[string]any{
		"listing_id": id,
		"title":      "hijacked",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("non-author edit: status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestEditListingSparsePatch(t *testing.T) {
	app, db := setupTestApp(t)
	username, password := registerUser(t, app, "15")
	token := loginUser(t, app, username, password)

	id := createBook(t, app, token, map[string]any{
		"title": "Original title",
		"price": 10.0,
		"genre": "Fiction",
	})

	resp, _ := doRequest(t, app, http.MethodPut, "/edit-ad", token, map[string]any{
		"listing_id": id,
		"price":      12.5,
		"genre":      "Drama",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("edit: status %d", resp.StatusCode)
	}

	var listing models.Listing
	if err := db.Preload("Book").First(&listing, id).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if listing.Price != 12.5 {
		t.Errorf("price = %v, want 12.5", listing.Price)
	}
	if listing.Title != "Original title" {
		t.Errorf("title changed on sparse patch: %q", listing.Title)
	}
	if listing.Book.Genre != "Drama" {
		t.Errorf("genre = %q, want Drama", listing.Book.Genre)
	}
	if listing.Book.BookTitle != "Book A" {
		t.Errorf("book title changed on sparse patch: %q", listing.Book.BookTitle)
	}
}

func TestEditListingInvalidStatus(t *testing.T) {
	app, _ := setupTestApp(t)
	username, password := registerUser(t, app, "16")
	token := loginUser(t, app, username, password)
	id := createBook(t, app, token, nil)

	resp, _ := doRequest(t, app, http.MethodPut, "/edit-ad", token, map[string]any{
		"listing_id": id,
		"status":     "vanished",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestEditListingCategoryMismatch(t *testing.T) {
	app, _ := setupTestApp(t)
	username, password := registerUser(t, app, "17")
	token := loginUser(t, app, username, password)
	id := createBook(t, app, token, nil)

	resp, _ := doRequest(t, app, http.MethodPut, "/edit-ad", token, map[string]any{
		"listing_id": id,
		"category":   "apartment",
		"address":    "somewhere",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestEditListingSoldBumpsRating(t *testing.T) {
	app, db := setupTestApp(t)
	username, password := registerUser(t, app, "18")
	token := loginUser(t, app, username, password)
	id := createBook(t, app, token, nil)

	resp, _ := doRequest(t, app, http.MethodPut, "/edit-ad", token, map[string]any{
		"listing_id": id,
		"status":     models.StatusSold,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("edit: status %d", resp.StatusCode)
	}

	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if user.Rating != 1 {
		t.Errorf("rating = %d, want 1", user.Rating)
	}
}

func TestDeleteListing(t *testing.T) {
	app, db := setupTestApp(t)
	owner, ownerPass := registerUser(t, app, "19")
	other, otherPass := registerUser(t, app, "20")
	ownerToken := loginUser(t, app, owner, ownerPass)
	otherToken := loginUser(t, app, other, otherPass)

	id := createBook(t, app, ownerToken, nil)

	// The other user favorites it first; deletion must cascade.
	resp, _ := doRequest(t, app, http.MethodPost, "/fav-ad", otherToken, map[string]any{"listing_id": id})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("favorite: status %d", resp.StatusCode)
	}

	resp, _ = doRequest(t, app, http.MethodDelete, "/delete-ad", otherToken, map[string]any{"id": id})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("non-author delete: status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}

	resp, _ = doRequest(t, app, http.MethodDelete, "/delete-ad", ownerToken, map[string]any{"id": id})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: status %d", resp.StatusCode)
	}

	resp, body := doRequest(t, app, http.MethodGet, "/search-books", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search: status %d", resp.StatusCode)
	}
	if got := len(dataSlice(t, body)); got != 0 {
		t.Errorf("search still returns %d listings after delete", got)
	}

	var favCount int64
	db.Model(&models.Favorite{}).Where("listing_id = ?", id).Count(&favCount)
	if favCount != 0 {
		t.Errorf("favorites not cascaded: %d rows left", favCount)
	}

	resp, _ = doRequest(t, app, http.MethodDelete, "/delete-ad", ownerToken, map[string]any{"id": id})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("deleting missing listing: status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}
