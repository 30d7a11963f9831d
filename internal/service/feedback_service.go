// Package service contains the application's business logic.
package service

import (
	"context"
	"errors"

	"prompthub/internal/cache"
	"prompthub/internal/middleware"
	"prompthub/internal/models"
	"prompthub/internal/repository"

	"gorm.io/gorm"
)

// FeedbackService reconciles a user's single feedback record per prompt with
// the prompt's denormalized like/dislike counters. It is the only writer of
// those counters.
//
// State machine per (user, prompt) pair:
//
//	existing  requested  action
//	none      like       create feedback(like);    likes += 1
//	none      dislike    create feedback(dislike); dislikes += 1
//	like      like       delete feedback;          likes -= 1    (toggle off)
//	dislike   dislike    delete feedback;          dislikes -= 1 (toggle off)
//	like      dislike    mutate to dislike;        likes -= 1, dislikes += 1 (switch)
//	dislike   like       mutate to like;           dislikes -= 1, likes += 1 (switch)
type FeedbackService struct {
	db *gorm.DB
}

// NewFeedbackService returns a FeedbackService bound to the given DB.
func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

// Apply executes one feedback transition for (promptID, userID) inside a
// single transaction and returns the prompt with its post-transition counters
// read back from the store.
//
// Counter adjustments use atomic in-database increments rather than
// read-modify-write, so concurrent reactions from different users cannot lose
// updates. A single user's concurrent requests against the same prompt are
// each caught on the row write: the unique index on (user_id, prompt_id)
// rejects a duplicate create, and toggle-off/switch condition their delete or
// update on the state the lookup saw. All three surface as a retryable
// Conflict, never as a counter adjustment without a matching row change.
func (s *FeedbackService) Apply(ctx context.Context, promptID, userID uint, requested models.FeedbackType) (*models.Prompt, error) {
	if !requested.Valid() {
		return nil, models.NewValidationError("feedback_type must be \"like\" or \"dislike\"")
	}

	var prompt models.Prompt
	var transition string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The prompt must exist before any feedback is recorded against it.
		if err := tx.Select("id").First(&models.Prompt{}, promptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Prompt", promptID)
			}
			return models.NewInternalError(err)
		}

		var existing models.PromptFeedback
		err := tx.Where("user_id = ? AND prompt_id = ?", userID, promptID).First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// First reaction: create and count.
			feedback := models.PromptFeedback{
				UserID:       userID,
				PromptID:     promptID,
				FeedbackType: requested,
			}
			if createErr := tx.Create(&feedback).Error; createErr != nil {
				if repository.IsUniqueConstraintError(createErr) {
					middleware.FeedbackConflicts.Inc()
					return models.NewConflictError("Feedback was recorded concurrently; retry")
				}
				return models.NewInternalError(createErr)
			}
			if adjErr := adjustCounter(tx, promptID, requested, +1); adjErr != nil {
				return adjErr
			}
			transition = "create"

		case err != nil:
			return models.NewInternalError(err)

		case existing.FeedbackType == requested:
			// Toggle off: repeating the same reaction removes it. The delete
			// must hit the row the lookup saw; zero rows means a concurrently
			// committed transaction already removed it, and decrementing the
			// counter again would desync it from the remaining rows.
			res := tx.Delete(&models.PromptFeedback{}, existing.ID)
			if res.Error != nil {
				return models.NewInternalError(res.Error)
			}
			if res.RowsAffected == 0 {
				middleware.FeedbackConflicts.Inc()
				return models.NewConflictError("Feedback was changed concurrently; retry")
			}
			if adjErr := adjustCounter(tx, promptID, requested, -1); adjErr != nil {
				return adjErr
			}
			transition = "toggle_off"

		default:
			// Switch: mutate the row in place and move one count across. The
			// update is conditioned on the type the lookup saw, so a race with
			// another transition on the same row rolls back instead of
			// double-applying the counter moves.
			res := tx.Model(&models.PromptFeedback{}).
				Where("id = ? AND feedback_type = ?", existing.ID, existing.FeedbackType).
				Update("feedback_type", requested)
			if res.Error != nil {
				return models.NewInternalError(res.Error)
			}
			if res.RowsAffected == 0 {
				middleware.FeedbackConflicts.Inc()
				return models.NewConflictError("Feedback was changed concurrently; retry")
			}
			if adjErr := adjustCounter(tx, promptID, existing.FeedbackType, -1); adjErr != nil {
				return adjErr
			}
			if adjErr := adjustCounter(tx, promptID, requested, +1); adjErr != nil {
				return adjErr
			}
			transition = "switch"
		}

		// Return counters as committed, read back from the store rather than
		// computed in memory, with the caller's resulting feedback state.
		readErr := tx.
			Select(
				"prompts.*, (SELECT feedback_type FROM prompt_feedbacks WHERE prompt_feedbacks.prompt_id = prompts.id AND prompt_feedbacks.user_id = ?) as my_feedback",
				userID,
			).
			First(&prompt, promptID).Error
		if readErr != nil {
			if errors.Is(readErr, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Prompt", promptID)
			}
			return models.NewInternalError(readErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	middleware.FeedbackTransitions.WithLabelValues(transition).Inc()
	cache.InvalidatePrompt(ctx, promptID)
	cache.InvalidateStats(ctx)

	return &prompt, nil
}

// adjustCounter applies an atomic ±1 to the prompt's like or dislike counter.
// Zero rows affected means the prompt vanished mid-transaction (concurrent
// admin delete); the whole unit of work rolls back as NotFound.
func adjustCounter(tx *gorm.DB, promptID uint, feedbackType models.FeedbackType, delta int) error {
	column := "likes"
	if feedbackType == models.FeedbackDislike {
		column = "dislikes"
	}

	res := tx.Model(&models.Prompt{}).
		Where("id = ?", promptID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Prompt", promptID)
	}
	return nil
}
