package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mcetin/courseflow/internal/app/models/dto"
	"github.com/mcetin/courseflow/internal/app/services"
	"github.com/mcetin/courseflow/internal/middleware"
	"github.com/rs/zerolog"
)

// EnrollmentController handles enrollment-related operations
type EnrollmentController struct {
	registryService *services.RegistryService
	logger          zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(registryService *services.RegistryService, logger zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{
		registryService: registryService,
		logger:          logger,
	}
}

// Enroll handles enrolling a student in a course
// @Summary Enroll a student in a course
// @Description Links a student to a course after checking both exist
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollmentRequest true "Enrollment information"
// @Success 201 {object} dto.EnrollmentResponse "Enrollment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	var req dto.EnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrollment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollment, err := c.registryService.Enroll(ctx.Request.Context(), req.StudentID, req.CourseID)
	if err != nil {
		c.logger.Warn().Err(err).
			Int64("studentID", req.StudentID).
			Int64("courseID", req.CourseID).
			Msg("Enrollment failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.EnrollmentResponse{
		ID:        enrollment.ID,
		StudentID: enrollment.StudentID,
		CourseID:  enrollment.CourseID,
	})
}
