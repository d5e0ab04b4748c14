package models

import (
	"time"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Login information
	Username     string `gorm:"unique;not null;size:30" json:"username"`
	Email        string `gorm:"unique;not null;size:100" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Institutional profile. EnrollmentID is the 9-character matricula.
	EnrollmentID string `gorm:"column:enrollment_id;unique;not null;size:9" json:"enrollment_id"`
	Campus       string `gorm:"not null;size:50" json:"campus"`
	Course       string `gorm:"not null;size:50" json:"course"`

	// Rating grows by one for every completed sale or trade.
	Rating     int    `gorm:"default:0" json:"rating"`
	ProfileImg string `json:"profile_img,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Listings []Listing `gorm:"foreignKey:UserID" json:"-"`
}

// UserProfile is the author projection embedded in owner-facing listing
// payloads. It never carries the password hash or rating internals.
type UserProfile struct {
	Username     string `json:"username"`
	EnrollmentID string `json:"enrollment_id"`
	Email        string `json:"email"`
	Campus       string `json:"campus"`
	Course       string `json:"course"`
}

func (u *User) Profile() UserProfile {
	return UserProfile{
		Username:     u.Username,
		EnrollmentID: u.EnrollmentID,
		Email:        u.Email,
		Campus:       u.Campus,
		Course:       u.Course,
	}
}
