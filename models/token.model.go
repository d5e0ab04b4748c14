package models

import (
	"time"
)

// RevokedToken marks a token's jti as permanently invalid. Rows are
// append-only: logout inserts, nothing ever updates or deletes. The table
// grows without bound since tokens are never pruned after expiry.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JTI       string    `gorm:"column:jti;size:36;uniqueIndex;not null" json:"jti"`
	CreatedAt time.Time `json:"created_at"`
}
