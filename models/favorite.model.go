package models

import (
	"time"
)

// Favorite links a user to a listing. The composite unique index makes
// duplicate favorites impossible at the storage layer; handlers still check
// first so the client gets a clean conflict message. Insertion order is the
// order favorites are listed back in.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_listing" json:"user_id"`
	ListingID uint      `gorm:"not null;uniqueIndex:idx_favorites_user_listing" json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`

	Listing *Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
}
