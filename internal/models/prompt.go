package models

import (
	"time"
)

// Prompt is a shared prompt text classified by subject.
// Likes and Dislikes are denormalized counters; they must always equal the
// number of PromptFeedback rows of the matching type for this prompt, and only
// service.FeedbackService is allowed to change them.
type Prompt struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Title     string `gorm:"not null" json:"title"`
	Content   string `gorm:"type:text;not null" json:"content"`
	Subject   string `gorm:"index" json:"subject"`
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	User      User   `gorm:"foreignKey:UserID" json:"user"`
	Views     int    `gorm:"not null;default:0" json:"views"`
	Likes     int    `gorm:"not null;default:0" json:"likes"`
	Dislikes  int    `gorm:"not null;default:0" json:"dislikes"`
	// MyFeedback is not persisted; computed at query time for the requesting
	// user ("like", "dislike", or empty when the caller is anonymous or has
	// no recorded reaction).
	MyFeedback string    `gorm:"->" json:"my_feedback,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
