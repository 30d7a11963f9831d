package server

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"prompthub/internal/models"
	"prompthub/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Signup handles POST /signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Name      string `json:"name"`
		Gender    string `json:"gender"`
		Age       string `json:"age"`
		School    string `json:"school"`
		StudentID string `json:"student_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username, email, and password are required"))
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	// Single combined lookup over both unique columns, case-sensitive.
	existing, err := s.userRepo.FindRegistered(c.Context(), req.Username, req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		reason := "Email already registered"
		if existing.Username == req.Username {
			reason = "Username already registered"
		}
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError(reason))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Name:      req.Name,
		Gender:    req.Gender,
		Age:       req.Age,
		School:    req.School,
		StudentID: req.StudentID,
	}

	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return models.RespondWithAppError(c, createErr)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login handles POST /token. The identifier field accepts either a username
// or an email address.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByUsernameOrEmail(c.Context(), req.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Incorrect username or password"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Incorrect username or password"))
	}

	token, err := s.generateToken(user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// generateToken creates a signed bearer token whose subject is the username.
func (s *Server) generateToken(username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"iss": "prompthub-api",
		"aud": "prompthub-client",
		"exp": now.Add(s.config.TokenTTL()).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

// verifyToken validates a bearer token string and returns its subject
// (the username). It is the single verification primitive shared by the
// required and optional auth paths.
func (s *Server) verifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", models.NewUnauthorizedError("Invalid token claims")
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "prompthub-api" {
		return "", models.NewUnauthorizedError("Invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "prompthub-client" {
		return "", models.NewUnauthorizedError("Invalid token audience")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", models.NewUnauthorizedError("Invalid subject claim")
	}
	return sub, nil
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header required")
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New("invalid authorization header format")
	}
	return parts[1], nil
}

// currentUser resolves the request's bearer token to a user record.
func (s *Server) currentUser(c *fiber.Ctx) (*models.User, error) {
	tokenString, err := bearerToken(c)
	if err != nil {
		return nil, models.NewUnauthorizedError("Authorization required")
	}

	username, err := s.verifyToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(c.Context(), username)
	if err != nil {
		return nil, models.NewUnauthorizedError("Could not validate credentials")
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Could not validate credentials")
	}
	return user, nil
}

// optionalUserID attempts to resolve an identity from the Authorization header
// but does not enforce it. Read paths use it to annotate responses with the
// caller's own feedback state.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	user, err := s.currentUser(c)
	if err != nil {
		return 0, false
	}
	return user.ID, true
}
