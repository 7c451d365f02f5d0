package result

import (
	"errors"
	"strings"

	"github.com/abceng/results-portal/services"
	"github.com/abceng/results-portal/utils/middleware"
	"github.com/abceng/results-portal/utils/response"
	"github.com/abceng/results-portal/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// ResultHandler serves the public result check.
type ResultHandler struct {
	resultService *services.ResultService
	validator     *validation.Validator
	bruteForce    *middleware.BruteForceProtection
}

// NewResultHandler creates a new result handler. bruteForce may be nil when
// Redis is unavailable.
func NewResultHandler(resultService *services.ResultService, bruteForce *middleware.BruteForceProtection) *ResultHandler {
	return &ResultHandler{
		resultService: resultService,
		validator:     validation.NewValidator(),
		bruteForce:    bruteForce,
	}
}

// CheckResultRequest represents the request body for checking a result.
// Date of birth is validated here so a malformed date never reaches the
// evaluation path.
type CheckResultRequest struct {
	RegistrationNumber string `json:"registration_number" validate:"required,min=3,max=50"`
	DateOfBirth        string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
}

// CheckResult handles POST /api/v1/results/check
func (h *ResultHandler) CheckResult(c *fiber.Ctx) error {
	var req CheckResultRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.RegistrationNumber = strings.TrimSpace(req.RegistrationNumber)
	req.DateOfBirth = strings.TrimSpace(req.DateOfBirth)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	result, err := h.resultService.LookupAndEvaluate(c.Context(), req.RegistrationNumber, req.DateOfBirth)
	if err != nil {
		if errors.Is(err, services.ErrStudentNotFound) {
			if h.bruteForce != nil {
				h.bruteForce.RecordFailedAttempt(c, c.IP())
			}
			return response.NotFound(c, "Student not found. Please check Registration Number and Date of Birth.")
		}
		return response.InternalServerError(c, "Failed to fetch result")
	}

	if h.bruteForce != nil {
		h.bruteForce.ClearAttempts(c, c.IP())
	}

	return response.Success(c, result)
}
