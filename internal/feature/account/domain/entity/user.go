// Package entity defines the domain entities for the account feature.
package entity

import "time"

// User represents a registered user in the system.
// It contains authentication credentials and the profile fields exposed
// through the account API.
type User struct {
	// ID is the unique identifier for the user (UUID v4 string).
	// It is assigned once at registration and never changes.
	ID string `gorm:"primaryKey;size:36"`

	// Fullname is the user's display name.
	Fullname string `gorm:"size:255;not null"`

	// Mobile is the user's phone number.
	Mobile string `gorm:"size:20"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the hashed password for the user.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// ProfilePicture is the stored path of the user's uploaded picture.
	// It is nil until a picture has been uploaded.
	ProfilePicture *string `gorm:"size:512"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
