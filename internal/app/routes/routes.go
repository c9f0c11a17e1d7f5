package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mcetin/courseflow/internal/app/controllers"
	"github.com/mcetin/courseflow/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	healthController *controllers.HealthController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// Liveness probe outside the versioned API
	router.GET("/health", healthController.Health)

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	v1.POST("/users", authController.Register)
	v1.POST("/auth/login", authController.Login)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.RequireAuth())
	{
		students := authenticated.Group("/students")
		{
			students.POST("", studentController.CreateStudent)
			students.GET("/:id", studentController.GetStudentByID)
			students.GET("/:id/courses", studentController.GetStudentCourses)
		}

		courses := authenticated.Group("/courses")
		{
			courses.POST("", courseController.CreateCourse)
			courses.GET("/:id", courseController.GetCourseByID)
			courses.GET("/:id/students", courseController.GetCourseStudents)
		}

		authenticated.POST("/enrollments", enrollmentController.Enroll)
	}
}
