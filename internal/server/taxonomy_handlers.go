package server

import (
	"strconv"

	"prompthub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetSchools handles GET /schools
func (s *Server) GetSchools(c *fiber.Ctx) error {
	schools, err := s.taxonomyRepo.ListSchools(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(schools)
}

// CreateSchool handles POST /schools (admin only)
func (s *Server) CreateSchool(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name is required"))
	}

	school := &models.School{Name: req.Name}
	if err := s.taxonomyRepo.CreateSchool(c.Context(), school); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(school)
}

// GetSubjects handles GET /subjects, optionally filtered by school_id.
func (s *Server) GetSubjects(c *fiber.Ctx) error {
	var schoolID *uint
	if raw := c.Query("school_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid school_id"))
		}
		id := uint(parsed)
		schoolID = &id
	}

	subjects, err := s.taxonomyRepo.ListSubjects(c.Context(), schoolID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(subjects)
}

// CreateSubject handles POST /subjects (admin only)
func (s *Server) CreateSubject(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		SchoolID *uint  `json:"school_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name is required"))
	}

	subject := &models.Subject{Name: req.Name, SchoolID: req.SchoolID}
	if err := s.taxonomyRepo.CreateSubject(c.Context(), subject); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(subject)
}
