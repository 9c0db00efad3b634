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

// CourseController handles course catalog endpoints
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// CreateCourse handles course creation
// @Summary Create a new course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Course already exists"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course := &models.Course{
		Code:          req.Code,
		Name:          req.Name,
		Prerequisites: req.Prerequisites,
	}

	if err := c.courseService.CreateCourse(ctx, course); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(course))
}

// GetCourseByCode retrieves a course by code
// @Summary Get course by code
// @Tags courses
// @Produce json
// @Param code path string true "Course code"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course retrieved"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{code} [get]
func (c *CourseController) GetCourseByCode(ctx *gin.Context) {
	course, err := c.courseService.GetCourseByCode(ctx, ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(course))
}

// ListCourses retrieves a page of courses
// @Summary List courses
// @Tags courses
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Courses retrieved"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, size := helpers.ParsePageParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	courses, total, err := c.courseService.ListCourses(ctx, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.PagedResponse{
		Items:      courses,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// UpdateCourse edits a course's name and/or prerequisites
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Course code"
// @Param request body dto.UpdateCourseRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course updated"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{code} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.courseService.UpdateCourse(ctx, ctx.Param("code"), req.Name, req.Prerequisites)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(course))
}

// DeleteCourse removes a course
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param code path string true "Course code"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Course deleted"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course has sections"
// @Router /courses/{code} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	if err := c.courseService.DeleteCourse(ctx, ctx.Param("code")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.SuccessResponse{Message: "Course deleted"}))
}
