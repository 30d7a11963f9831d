package service

import (
	"context"

	"prompthub/internal/models"
	"prompthub/internal/repository"
)

// PromptService validates and orchestrates prompt lifecycle operations.
type PromptService struct {
	promptRepo repository.PromptRepository
}

// CreatePromptInput carries the fields a user supplies when sharing a prompt.
type CreatePromptInput struct {
	UserID  uint
	Title   string
	Content string
	Subject string
}

// ListPromptsInput narrows and pages the listing.
type ListPromptsInput struct {
	Subject       string
	Limit         int
	Offset        int
	CurrentUserID uint
}

// NewPromptService returns a PromptService over the given repository.
func NewPromptService(promptRepo repository.PromptRepository) *PromptService {
	return &PromptService{promptRepo: promptRepo}
}

func (s *PromptService) CreatePrompt(ctx context.Context, in CreatePromptInput) (*models.Prompt, error) {
	const maxTitleLen = 300
	const maxContentLen = 50000

	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	prompt := &models.Prompt{
		Title:   in.Title,
		Content: in.Content,
		Subject: in.Subject,
		UserID:  in.UserID,
	}
	if err := s.promptRepo.Create(ctx, prompt); err != nil {
		return nil, err
	}

	return s.promptRepo.GetByID(ctx, prompt.ID, in.UserID)
}

func (s *PromptService) ListPrompts(ctx context.Context, in ListPromptsInput) ([]*models.Prompt, error) {
	return s.promptRepo.List(ctx, repository.ListPromptsOptions{
		Subject:       in.Subject,
		Limit:         in.Limit,
		Offset:        in.Offset,
		CurrentUserID: in.CurrentUserID,
	})
}

func (s *PromptService) GetPrompt(ctx context.Context, id, currentUserID uint) (*models.Prompt, error) {
	return s.promptRepo.GetByID(ctx, id, currentUserID)
}

// DeletePrompt removes a prompt and its feedback rows. Authorization (admin
// only) is enforced at the routing layer.
func (s *PromptService) DeletePrompt(ctx context.Context, id uint) error {
	return s.promptRepo.Delete(ctx, id)
}

func (s *PromptService) IncrementViews(ctx context.Context, id uint) (*models.Prompt, error) {
	return s.promptRepo.IncrementViews(ctx, id)
}
