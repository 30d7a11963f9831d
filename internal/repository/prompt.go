package repository

import (
	"context"
	"errors"

	"prompthub/internal/cache"
	"prompthub/internal/models"

	"gorm.io/gorm"
)

// ListPromptsOptions narrows and pages the prompt listing.
type ListPromptsOptions struct {
	Subject       string
	Limit         int
	Offset        int
	CurrentUserID uint
}

// PromptRepository defines persistence operations for prompts.
// Feedback counter mutations are owned by service.FeedbackService, not by this
// repository; only view counters are touched here.
type PromptRepository interface {
	Create(ctx context.Context, prompt *models.Prompt) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Prompt, error)
	List(ctx context.Context, opts ListPromptsOptions) ([]*models.Prompt, error)
	// Delete removes the prompt and its feedback rows in one transaction so no
	// orphaned feedback can reference a missing prompt.
	Delete(ctx context.Context, id uint) error
	// IncrementViews bumps the view counter by one with an atomic in-database
	// increment. Repeat views from the same user count every time.
	IncrementViews(ctx context.Context, id uint) (*models.Prompt, error)
	Count(ctx context.Context) (int64, error)
	TotalLikes(ctx context.Context) (int64, error)
}

type promptRepository struct {
	db *gorm.DB
}

// NewPromptRepository creates a new prompt repository
func NewPromptRepository(db *gorm.DB) PromptRepository {
	return &promptRepository{db: db}
}

func (r *promptRepository) Create(ctx context.Context, prompt *models.Prompt) error {
	if err := r.db.WithContext(ctx).Create(prompt).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateStats(ctx)
	return nil
}

// applyPromptDetails adds a subquery fetching the requesting user's own
// feedback state in the same query as the prompt row.
func (r *promptRepository) applyPromptDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	if currentUserID != 0 {
		return db.Select(
			"prompts.*, (SELECT feedback_type FROM prompt_feedbacks WHERE prompt_feedbacks.prompt_id = prompts.id AND prompt_feedbacks.user_id = ?) as my_feedback",
			currentUserID,
		)
	}
	return db.Select("prompts.*")
}

func (r *promptRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Prompt, error) {
	var prompt models.Prompt

	fetch := func() error {
		err := r.applyPromptDetails(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			First(&prompt, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Prompt", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	// Anonymous detail reads carry no per-caller annotation, so they are safe
	// to share through the cache.
	if currentUserID == 0 {
		if err := cache.Aside(ctx, cache.PromptKey(id), &prompt, cache.PromptTTL, fetch); err != nil {
			return nil, err
		}
		return &prompt, nil
	}

	if err := fetch(); err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (r *promptRepository) List(ctx context.Context, opts ListPromptsOptions) ([]*models.Prompt, error) {
	var prompts []*models.Prompt
	query := r.applyPromptDetails(r.db.WithContext(ctx), opts.CurrentUserID).
		Preload("User")
	if opts.Subject != "" {
		query = query.Where("subject = ?", opts.Subject)
	}
	err := query.
		Order("prompts.id").
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&prompts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return prompts, nil
}

func (r *promptRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prompt models.Prompt
		if err := tx.First(&prompt, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Prompt", id)
			}
			return models.NewInternalError(err)
		}

		// Feedback rows go first: the prompt must never disappear while rows
		// still reference it.
		if err := tx.Where("prompt_id = ?", id).Delete(&models.PromptFeedback{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&models.Prompt{}, id).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidatePrompt(ctx, id)
	cache.InvalidateStats(ctx)
	return nil
}

func (r *promptRepository) IncrementViews(ctx context.Context, id uint) (*models.Prompt, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Prompt{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Prompt", id)
	}

	cache.InvalidatePrompt(ctx, id)

	var prompt models.Prompt
	if err := r.db.WithContext(ctx).First(&prompt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Prompt", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &prompt, nil
}

func (r *promptRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Prompt{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *promptRepository) TotalLikes(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Prompt{}).
		Select("COALESCE(SUM(likes), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}
