// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered member of the Prompthub community.
// Profile fields beyond username/email are optional free text supplied at signup.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `json:"name,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	Age       string    `json:"age,omitempty"`
	School    string    `json:"school,omitempty"`
	StudentID string    `gorm:"column:student_id" json:"student_id,omitempty"`
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	Prompts   []Prompt  `gorm:"foreignKey:UserID" json:"prompts,omitempty"`
}
