package models

import (
	"time"
)

// FeedbackType is the direction of a user's reaction to a prompt.
type FeedbackType string

const (
	FeedbackLike    FeedbackType = "like"
	FeedbackDislike FeedbackType = "dislike"
)

// Valid reports whether t is one of the two recognized feedback types.
func (t FeedbackType) Valid() bool {
	return t == FeedbackLike || t == FeedbackDislike
}

// PromptFeedback records a user's reaction to a prompt.
// The (UserID, PromptID) pair is unique: a user holds at most one reaction per
// prompt at any time. Rows are hard-deleted on toggle-off.
type PromptFeedback struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       uint         `gorm:"not null;uniqueIndex:idx_user_prompt" json:"user_id"`
	PromptID     uint         `gorm:"not null;uniqueIndex:idx_user_prompt" json:"prompt_id"`
	FeedbackType FeedbackType `gorm:"not null" json:"feedback_type"`
	CreatedAt    time.Time    `json:"created_at"`

	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Prompt Prompt `gorm:"foreignKey:PromptID" json:"-"`
}
