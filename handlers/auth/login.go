package auth

import (
	"errors"

	"github.com/abceng/results-portal/model"
	"github.com/abceng/results-portal/utils/auth"
	"github.com/abceng/results-portal/utils/middleware"
	"github.com/abceng/results-portal/utils/response"
	"github.com/abceng/results-portal/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthHandler handles staff login.
type AuthHandler struct {
	db         *gorm.DB
	jwtManager *auth.JWTManager
	validator  *validation.Validator
	bruteForce *middleware.BruteForceProtection
}

// NewAuthHandler creates a new auth handler. bruteForce may be nil.
func NewAuthHandler(db *gorm.DB, jwtManager *auth.JWTManager, bruteForce *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		db:         db,
		jwtManager: jwtManager,
		validator:  validation.NewValidator(),
		bruteForce: bruteForce,
	}
}

// LoginRequest represents the request body for staff login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	var user model.User
	err := h.db.Where("email = ?", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if h.bruteForce != nil {
			h.bruteForce.RecordFailedAttempt(c, c.IP())
		}
		return response.Unauthorized(c, "Invalid email or password")
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to log in")
	}

	if !user.IsActive {
		return response.Forbidden(c, "Account is disabled")
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		if h.bruteForce != nil {
			h.bruteForce.RecordFailedAttempt(c, c.IP())
		}
		return response.Unauthorized(c, "Invalid email or password")
	}

	token, err := h.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return response.InternalServerError(c, "Failed to issue token")
	}

	if h.bruteForce != nil {
		h.bruteForce.ClearAttempts(c, c.IP())
	}

	return response.Success(c, LoginResponse{
		AccessToken: token,
		Role:        user.Role,
	})
}
