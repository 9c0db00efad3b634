package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lfarias/gestor-academico/internal/app/models/dto"
	"github.com/lfarias/gestor-academico/internal/app/services"
	"github.com/lfarias/gestor-academico/internal/middleware"
)

// EnrollmentController handles enrollment and grading endpoints
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
	}
}

// Enroll runs the enrollment validation pipeline for a student and section
// @Summary Enroll a student into a section
// @Description Validates duplicates, prior approval, prerequisites, capacity and schedule conflicts before committing
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollRequest true "Enrollment request"
// @Success 201 {object} dto.APIResponse{data=models.Enrollment} "Enrollment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student, section or course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled or already approved"
// @Failure 422 {object} dto.ErrorResponse "Prerequisites not met, section full or schedule conflict"
// @Router /enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrollment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollment, err := c.enrollmentService.Enroll(ctx, req.StudentID, req.SectionCode)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(enrollment))
}

// RecordGrade records the final grade of an enrollment
// @Summary Record a grade
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RecordGradeRequest true "Grade to record"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Grade recorded"
// @Failure 400 {object} dto.ErrorResponse "Grade out of range"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /enrollments/grade [put]
func (c *EnrollmentController) RecordGrade(ctx *gin.Context) {
	var req dto.RecordGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid grade data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.enrollmentService.RecordGrade(ctx, req.StudentID, req.SectionCode, req.Grade); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.SuccessResponse{Message: "Grade recorded"}))
}

// RecordAttendance records the attendance percentage of an enrollment
// @Summary Record attendance
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RecordAttendanceRequest true "Attendance to record"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Attendance recorded"
// @Failure 400 {object} dto.ErrorResponse "Attendance out of range"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /enrollments/attendance [put]
func (c *EnrollmentController) RecordAttendance(ctx *gin.Context) {
	var req dto.RecordAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid attendance data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.enrollmentService.RecordAttendance(ctx, req.StudentID, req.SectionCode, req.Attendance); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.SuccessResponse{Message: "Attendance recorded"}))
}
