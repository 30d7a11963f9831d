package server

import (
	"context"
	"errors"
	"strconv"

	"prompthub/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPaginationLimit = 20
	maxPaginationLimit     = 100
)

// parsePagination reads limit/offset query parameters, clamping the limit
// to a sane window so a client cannot request unbounded pages.
func parsePagination(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", defaultPaginationLimit)
	offset = c.QueryInt("offset", 0)

	if limit <= 0 {
		limit = defaultPaginationLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// parseID parses a numeric path parameter, writing a validation error to the
// response when it is malformed. Callers should return nil when ok is false.
func parseID(c *fiber.Ctx, param string) (id uint, ok bool) {
	raw := c.Params(param)
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		models.RespondWithError(c, fiber.StatusBadRequest, //nolint:errcheck
			models.NewValidationError("Invalid "+param))
		return 0, false
	}
	return uint(parsed), true
}

// isAdminByUserID checks the admin flag fresh from storage rather than
// trusting anything embedded in the token, so revocation takes effect on the
// next request.
func (s *Server) isAdminByUserID(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin, nil
}
