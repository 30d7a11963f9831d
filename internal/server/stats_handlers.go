package server

import (
	"prompthub/internal/cache"
	"prompthub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetPromptCount handles GET /stats/prompts/count. The count is served
// through a short-TTL cache so a dashboard polling it does not hammer the
// database.
func (s *Server) GetPromptCount(c *fiber.Ctx) error {
	var count int64
	err := cache.Aside(c.Context(), cache.PromptCountKey, &count, cache.StatsTTL, func() error {
		var fetchErr error
		count, fetchErr = s.promptRepo.Count(c.Context())
		return fetchErr
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// GetTotalLikes handles GET /stats/prompts/total-likes
func (s *Server) GetTotalLikes(c *fiber.Ctx) error {
	var total int64
	err := cache.Aside(c.Context(), cache.TotalLikesKey, &total, cache.StatsTTL, func() error {
		var fetchErr error
		total, fetchErr = s.promptRepo.TotalLikes(c.Context())
		return fetchErr
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"total_likes": total})
}
