package server

import (
	"prompthub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// GetAllUsers handles GET /users/ (admin only)
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	users, err := s.userRepo.List(c.Context(), limit, offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(users)
}

// PromoteUser handles POST /users/promote (admin only)
func (s *Server) PromoteUser(c *fiber.Ctx) error {
	return s.setUserAdmin(c, true)
}

// DemoteUser handles POST /users/demote (admin only). An admin may not
// demote themselves, which keeps the system from being locked out of its
// last admin by accident.
func (s *Server) DemoteUser(c *fiber.Ctx) error {
	return s.setUserAdmin(c, false)
}

func (s *Server) setUserAdmin(c *fiber.Ctx, admin bool) error {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil || req.Username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}

	target, err := s.userRepo.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if target == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", req.Username))
	}

	if !admin {
		callerID := c.Locals("userID").(uint)
		if target.ID == callerID {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admins cannot demote themselves"))
		}
	}

	if err := s.userRepo.SetAdmin(c.Context(), target.ID, admin); err != nil {
		return models.RespondWithAppError(c, err)
	}

	target.IsAdmin = admin
	return c.JSON(target)
}

// BootstrapAdmin handles POST /users/bootstrap-admin. It promotes the named
// user to admin only while no admin exists yet, so a fresh deployment can be
// initialized without out-of-band database access.
func (s *Server) BootstrapAdmin(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil || req.Username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}

	user, err := s.userRepo.BootstrapAdmin(c.Context(), req.Username)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}
