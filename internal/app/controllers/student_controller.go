package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lfarias/gestor-academico/internal/app/models"
	"github.com/lfarias/gestor-academico/internal/app/models/dto"
	"github.com/lfarias/gestor-academico/internal/app/services"
	"github.com/lfarias/gestor-academico/internal/middleware"
	"github.com/lfarias/gestor-academico/internal/pkg/helpers"
)

// StudentController handles student registry endpoints
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// CreateStudent handles student registration
// @Summary Register a new student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Student created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Student already exists"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student := &models.Student{
		ID:   req.ID,
		Name: req.Name,
	}

	if err := c.studentService.CreateStudent(ctx, student); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(student))
}

// GetStudentByID retrieves a student by registration number
// @Summary Get student by id
// @Tags students
// @Produce json
// @Param id path string true "Student id"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student retrieved"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	student, err := c.studentService.GetStudentByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(student))
}

// ListStudents retrieves a page of students
// @Summary List students
// @Tags students
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Students retrieved"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	page, size := helpers.ParsePageParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	students, total, err := c.studentService.ListStudents(ctx, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.PagedResponse{
		Items:      students,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// UpdateStudent renames a student
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student id"
// @Param request body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student updated"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, ctx.Param("id"), req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(student))
}

// DeleteStudent removes a student
// @Summary Delete a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student id"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Student deleted"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Student has enrollments"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	if err := c.studentService.DeleteStudent(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.SuccessResponse{Message: "Student deleted"}))
}
