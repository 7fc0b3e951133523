// Package models contains data structures for the application's domain models.
package models

// User represents an account on the platform. Token holds the current
// bearer session token; it is rotated on every login, so a user has a
// single active session at a time.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Token    string `gorm:"index" json:"token,omitempty"`
}
