package models

import "time"

// Admin is the single credential holder for the site. The login flow reads
// the first row only; extra rows are tolerated by the schema but ignored.
// Passwords are stored as bcrypt hashes only.
type Admin struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
