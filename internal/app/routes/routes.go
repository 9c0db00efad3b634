package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lfarias/gestor-academico/internal/app/controllers"
	"github.com/lfarias/gestor-academico/internal/middleware"
)

// SetupRouter configures all application routes. Reads are public;
// every mutating route sits behind the admin bearer token.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	sectionController *controllers.SectionController,
	studentController *controllers.StudentController,
	enrollmentController *controllers.EnrollmentController,
	recordController *controllers.RecordController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Public read routes ---
	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.ListCourses)
		courses.GET("/:code", courseController.GetCourseByCode)
	}

	sections := v1.Group("/sections")
	{
		sections.GET("", sectionController.ListSections)
		sections.GET("/:code", sectionController.GetSectionByCode)
		sections.GET("/:code/roster", sectionController.GetRoster)
	}

	students := v1.Group("/students")
	{
		students.GET("", studentController.ListStudents)
		students.GET("/:id", studentController.GetStudentByID)
		students.GET("/:id/transcript", recordController.GetTranscript)
		students.GET("/:id/average", recordController.GetAverage)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		coursesProtected := authenticated.Group("/courses")
		{
			coursesProtected.POST("", courseController.CreateCourse)
			coursesProtected.PUT("/:code", courseController.UpdateCourse)
			coursesProtected.DELETE("/:code", courseController.DeleteCourse)
		}

		sectionsProtected := authenticated.Group("/sections")
		{
			sectionsProtected.POST("", sectionController.CreateSection)
			sectionsProtected.PUT("/:code", sectionController.UpdateSection)
			sectionsProtected.DELETE("/:code", sectionController.DeleteSection)
		}

		studentsProtected := authenticated.Group("/students")
		{
			studentsProtected.POST("", studentController.CreateStudent)
			studentsProtected.PUT("/:id", studentController.UpdateStudent)
			studentsProtected.DELETE("/:id", studentController.DeleteStudent)
		}

		enrollments := authenticated.Group("/enrollments")
		{
			enrollments.POST("", enrollmentController.Enroll)
			enrollments.PUT("/grade", enrollmentController.RecordGrade)
			enrollments.PUT("/attendance", enrollmentController.RecordAttendance)
		}
	}
}
