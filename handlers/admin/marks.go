package admin

import (
	"errors"
	"strings"

	"github.com/abceng/results-portal/services"
	"github.com/abceng/results-portal/utils/response"
	"github.com/abceng/results-portal/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// MarkHandler handles administrative mark entry.
type MarkHandler struct {
	markService *services.MarkService
	validator   *validation.Validator
}

// NewMarkHandler creates a new mark handler
func NewMarkHandler(markService *services.MarkService) *MarkHandler {
	return &MarkHandler{
		markService: markService,
		validator:   validation.NewValidator(),
	}
}

// UpsertMarkRequest represents the request body for entering marks.
// Mark values are stored as given; range checking is a policy the engine
// deliberately does not apply.
type UpsertMarkRequest struct {
	RegistrationNumber string `json:"registration_number" validate:"required,min=3,max=50"`
	SubjectCode        string `json:"subject_code" validate:"required,min=2,max=50"`
	Internal           int    `json:"internal_marks"`
	External           int    `json:"external_marks"`
	Grade              string `json:"grade" validate:"omitempty,max=5"`
}

// UpsertMark handles PUT /api/v1/admin/marks
func (h *MarkHandler) UpsertMark(c *fiber.Ctx) error {
	var req UpsertMarkRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.RegistrationNumber = strings.TrimSpace(req.RegistrationNumber)
	req.SubjectCode = strings.TrimSpace(req.SubjectCode)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	id, err := h.markService.RecordMark(c.Context(), req.RegistrationNumber, req.SubjectCode, req.Internal, req.External, req.Grade)
	if err != nil {
		if errors.Is(err, services.ErrStudentNotFound) {
			return response.NotFound(c, "Student not found.")
		}
		if errors.Is(err, services.ErrSubjectNotFound) {
			return response.NotFound(c, "Subject not found.")
		}
		return response.InternalServerError(c, "Failed to record marks")
	}

	return response.SuccessWithMessage(c, "Result updated.", fiber.Map{"result_id": id})
}
