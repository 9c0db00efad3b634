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

// SectionController handles section endpoints
type SectionController struct {
	sectionService *services.SectionService
}

// NewSectionController creates a new SectionController
func NewSectionController(sectionService *services.SectionService) *SectionController {
	return &SectionController{
		sectionService: sectionService,
	}
}

// CreateSection handles section creation
// @Summary Create a new section
// @Tags sections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSectionRequest true "Section information"
// @Success 201 {object} dto.APIResponse{data=models.Section} "Section created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Section already exists"
// @Router /sections [post]
func (c *SectionController) CreateSection(ctx *gin.Context) {
	var req dto.CreateSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid section data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	section := &models.Section{
		Code:       req.Code,
		CourseCode: req.CourseCode,
		Instructor: req.Instructor,
		Schedule:   req.Schedule,
		Capacity:   req.Capacity,
	}

	if err := c.sectionService.CreateSection(ctx, section); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(section))
}

// GetSectionByCode retrieves a section by code
// @Summary Get section by code
// @Tags sections
// @Produce json
// @Param code path string true "Section code"
// @Success 200 {object} dto.APIResponse{data=models.Section} "Section retrieved"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Router /sections/{code} [get]
func (c *SectionController) GetSectionByCode(ctx *gin.Context) {
	section, err := c.sectionService.GetSectionByCode(ctx, ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(section))
}

// ListSections retrieves a page of sections
// @Summary List sections
// @Tags sections
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Sections retrieved"
// @Router /sections [get]
func (c *SectionController) ListSections(ctx *gin.Context) {
	page, size := helpers.ParsePageParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	sections, total, err := c.sectionService.ListSections(ctx, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.PagedResponse{
		Items:      sections,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// UpdateSection edits a section's instructor, schedule and/or capacity
// @Summary Update a section
// @Tags sections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Section code"
// @Param request body dto.UpdateSectionRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Section} "Section updated"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Router /sections/{code} [put]
func (c *SectionController) UpdateSection(ctx *gin.Context) {
	var req dto.UpdateSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid section data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	section, err := c.sectionService.UpdateSection(ctx, ctx.Param("code"), req.Instructor, req.Schedule, req.Capacity)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(section))
}

// DeleteSection removes a section
// @Summary Delete a section
// @Tags sections
// @Produce json
// @Security BearerAuth
// @Param code path string true "Section code"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Section deleted"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Failure 409 {object} dto.ErrorResponse "Section has enrollments"
// @Router /sections/{code} [delete]
func (c *SectionController) DeleteSection(ctx *gin.Context) {
	if err := c.sectionService.DeleteSection(ctx, ctx.Param("code")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.SuccessResponse{Message: "Section deleted"}))
}

// GetRoster lists the students enrolled in a section
// @Summary Get section roster
// @Tags sections
// @Produce json
// @Param code path string true "Section code"
// @Success 200 {object} dto.APIResponse{data=[]models.RosterEntry} "Roster retrieved"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Router /sections/{code}/roster [get]
func (c *SectionController) GetRoster(ctx *gin.Context) {
	roster, err := c.sectionService.Roster(ctx, ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(roster))
}
