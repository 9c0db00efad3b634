package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lfarias/gestor-academico/internal/app/models/dto"
	"github.com/lfarias/gestor-academico/internal/app/services"
	"github.com/lfarias/gestor-academico/internal/middleware"
)

// RecordController exposes a student's academic record
type RecordController struct {
	recordService *services.RecordService
}

// NewRecordController creates a new RecordController
func NewRecordController(recordService *services.RecordService) *RecordController {
	return &RecordController{
		recordService: recordService,
	}
}

// GetTranscript lists a student's enrollments with grades and attendance
// @Summary Get student transcript
// @Tags students
// @Produce json
// @Param id path string true "Student id"
// @Success 200 {object} dto.APIResponse{data=[]models.TranscriptEntry} "Transcript retrieved"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/transcript [get]
func (c *RecordController) GetTranscript(ctx *gin.Context) {
	transcript, err := c.recordService.Transcript(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(transcript))
}

// GetAverage returns the student's cumulative average over graded enrollments
// @Summary Get student average
// @Description Average is null while the student has no graded enrollment
// @Tags students
// @Produce json
// @Param id path string true "Student id"
// @Success 200 {object} dto.APIResponse{data=dto.AverageResponse} "Average retrieved"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/average [get]
func (c *RecordController) GetAverage(ctx *gin.Context) {
	studentID := ctx.Param("id")

	average, err := c.recordService.AverageGrade(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.AverageResponse{
		StudentID: studentID,
		Average:   average,
	}))
}
