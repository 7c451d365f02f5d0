package admin

import (
	"errors"
	"time"

	"github.com/abceng/results-portal/model"
	"github.com/abceng/results-portal/utils/response"
	"github.com/abceng/results-portal/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StudentHandler handles administrative student creation.
type StudentHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(db *gorm.DB) *StudentHandler {
	return &StudentHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateStudentRequest represents the request body for creating a student
type CreateStudentRequest struct {
	Name               string `json:"name" validate:"required,min=2,max=255"`
	RegistrationNumber string `json:"registration_number" validate:"required,min=3,max=50"`
	RollNumber         string `json:"roll_number" validate:"required,min=2,max=50"`
	CourseCode         string `json:"course_code" validate:"required,min=2,max=50"`
	Semester           int    `json:"semester" validate:"required,gte=1"`
	AcademicYear       string `json:"academic_year" validate:"required,max=20"`
	DateOfBirth        string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
}

// CreateStudent handles POST /api/v1/admin/students
func (h *StudentHandler) CreateStudent(c *fiber.Ctx) error {
	var req CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	var course model.Course
	err := h.db.Where("code = ?", req.CourseCode).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NotFound(c, "Course not found.")
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to create student")
	}

	var count int64
	if err := h.db.Model(&model.Student{}).
		Where("registration_number = ?", req.RegistrationNumber).
		Count(&count).Error; err != nil {
		return response.InternalServerError(c, "Failed to create student")
	}
	if count > 0 {
		return response.Error(c, fiber.StatusConflict, "Registration number already exists.", "CONFLICT")
	}

	// Already validated as 2006-01-02
	dob, _ := time.Parse("2006-01-02", req.DateOfBirth)

	student := model.Student{
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		RollNumber:         req.RollNumber,
		CourseID:           course.ID,
		Semester:           req.Semester,
		AcademicYear:       req.AcademicYear,
		DateOfBirth:        datatypes.Date(dob),
	}
	if err := h.db.Create(&student).Error; err != nil {
		return response.InternalServerError(c, "Failed to create student")
	}

	return response.Created(c, student)
}
