package server

import (
	"prompthub/internal/models"
	"prompthub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPrompts handles GET /prompts/. Authentication is optional; when a valid
// bearer token is present each prompt carries the caller's own feedback state.
func (s *Server) GetPrompts(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	currentUserID, _ := s.optionalUserID(c)

	prompts, err := s.promptService.ListPrompts(c.Context(), service.ListPromptsInput{
		Subject:       c.Query("subject"),
		Limit:         limit,
		Offset:        offset,
		CurrentUserID: currentUserID,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(prompts)
}

// GetPrompt handles GET /prompts/:id
func (s *Server) GetPrompt(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	prompt, err := s.promptService.GetPrompt(c.Context(), id, currentUserID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(prompt)
}

// CreatePrompt handles POST /prompts/
func (s *Server) CreatePrompt(c *fiber.Ctx) error {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Subject string `json:"subject"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID := c.Locals("userID").(uint)
	prompt, err := s.promptService.CreatePrompt(c.Context(), service.CreatePromptInput{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
		Subject: req.Subject,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(prompt)
}

// DeletePrompt handles DELETE /prompts/:id (admin only). The prompt's
// feedback rows go with it so no orphaned feedback survives.
func (s *Server) DeletePrompt(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}
	if err := s.promptService.DeletePrompt(c.Context(), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Prompt deleted"})
}

// ApplyFeedback handles POST /prompts/:id/feedback. Submitting the type the
// caller already holds removes it; submitting the other type switches it.
func (s *Server) ApplyFeedback(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	var req struct {
		FeedbackType string `json:"feedback_type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID := c.Locals("userID").(uint)
	prompt, err := s.feedbackService.Apply(c.Context(), id, userID,
		models.FeedbackType(req.FeedbackType))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(prompt)
}

// IncrementView handles POST /prompts/:id/increment-view
func (s *Server) IncrementView(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}
	prompt, err := s.promptService.IncrementViews(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(prompt)
}
