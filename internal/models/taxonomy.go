package models

import (
	"time"
)

// School is an admin-managed reference entry used to classify users and subjects.
type School struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Subject is an admin-managed reference entry used to classify prompts.
// A subject may optionally belong to a school.
type Subject struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	SchoolID  *uint     `gorm:"index" json:"school_id,omitempty"`
	School    *School   `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
