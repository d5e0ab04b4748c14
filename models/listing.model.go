package models

import (
	"time"
)

// Listing categories. The category column is the discriminator that selects
// which detail row (BookDetail or ApartmentDetail) belongs to a listing.
const (
	CategoryBook      = "book"
	CategoryApartment = "apartment"
)

// Listing lifecycle states.
const (
	StatusAwaitingAction = "awaiting_action"
	StatusTraded         = "traded"
	StatusSold           = "sold"
	StatusDonated        = "donated"
)

// ValidStatus reports whether s is one of the four lifecycle states.
func ValidStatus(s string) bool {
	switch s {
	case StatusAwaitingAction, StatusTraded, StatusSold, StatusDonated:
		return true
	}
	return false
}

// ValidCategory reports whether c names a known listing subtype.
func ValidCategory(c string) bool {
	return c == CategoryBook || c == CategoryApartment
}

type Listing struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	UserID      uint    `gorm:"index;not null" json:"user_id"`
	Title       string  `gorm:"size:70;not null" json:"title"`
	Description string  `gorm:"size:500;not null" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Status      string  `gorm:"size:20;not null;default:'awaiting_action'" json:"status"`
	Category    string  `gorm:"size:20;not null;index" json:"category"`
	ImageFile   string  `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations. Exactly one detail row exists, selected by Category.
	Author    User             `gorm:"foreignKey:UserID" json:"-"`
	Book      *BookDetail      `gorm:"foreignKey:ListingID" json:"-"`
	Apartment *ApartmentDetail `gorm:"foreignKey:ListingID" json:"-"`
}

type BookDetail struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	ListingID    uint   `gorm:"uniqueIndex;not null" json:"-"`
	BookTitle    string `gorm:"size:70;not null" json:"book_title"`
	AuthorName   string `gorm:"size:70" json:"author_name"`
	Genre        string `gorm:"size:50" json:"genre"`
	AcceptsTrade bool   `gorm:"not null;default:false" json:"accepts_trade"`
}

type ApartmentDetail struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	ListingID uint   `gorm:"uniqueIndex;not null" json:"-"`
	Address   string `gorm:"size:70;uniqueIndex;not null" json:"address"`
	Area      int    `json:"area,omitempty"`
	Rooms     int    `json:"rooms,omitempty"`
}

// ListingView is the client-facing projection of a listing with its detail
// fields flattened in. Author is either the full UserProfile (owner view) or
// the author's username (public view).
type ListingView struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`
	Category    string  `json:"category"`
	Author      any     `json:"author"`
	ImageURL    string  `json:"image_url,omitempty"`

	// Book fields
	BookTitle    string `json:"book_title,omitempty"`
	AuthorName   string `json:"author_name,omitempty"`
	Genre        string `json:"genre,omitempty"`
	AcceptsTrade *bool  `json:"accepts_trade,omitempty"`

	// Apartment fields
	Address string `json:"address,omitempty"`
	Area    int    `json:"area,omitempty"`
	Rooms   int    `json:"rooms,omitempty"`
}

// View serializes the listing. The owner view embeds the author's profile;
// the public view reduces the author to its username.
func (l *Listing) View(owner bool) ListingView {
	v := ListingView{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Status:      l.Status,
		Category:    l.Category,
	}
	if owner {
		v.Author = l.Author.Profile()
	} else {
		v.Author = l.Author.Username
	}
	if l.ImageFile != "" {
		v.ImageURL = "/image/" + l.ImageFile
	}
	if l.Book != nil {
		v.BookTitle = l.Book.BookTitle
		v.AuthorName = l.Book.AuthorName
		v.Genre = l.Book.Genre
		accepts := l.Book.AcceptsTrade
		v.AcceptsTrade = &accepts
	}
	if l.Apartment != nil {
		v.Address = l.Apartment.Address
		v.Area = l.Apartment.Area
		v.Rooms = l.Apartment.Rooms
	}
	return v
}

// Views maps a result set to public projections, keeping input order.
func Views(listings []Listing) []ListingView {
	out := make([]ListingView, 0, len(listings))
	for i := range listings {
		out = append(out, listings[i].View(false))
	}
	return out
}
