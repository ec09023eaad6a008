package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emre/sisgo/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	teacherController *controllers.TeacherController,
	courseController *controllers.CourseController,
	registrarController *controllers.RegistrarController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Student routes
	students := v1.Group("/students")
	{
		students.POST("", studentController.CreateStudent)
		students.GET("", studentController.GetAllStudents)
		students.GET("/:id", studentController.GetStudentByID)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)

		students.GET("/:id/enrollments", registrarController.GetStudentEnrollments)
		students.GET("/:id/payments", registrarController.GetPaymentReport)
	}

	// Teacher routes
	teachers := v1.Group("/teachers")
	{
		teachers.POST("", teacherController.CreateTeacher)
		teachers.GET("", teacherController.GetAllTeachers)
		teachers.GET("/:id", teacherController.GetTeacherByID)
		teachers.PUT("/:id", teacherController.UpdateTeacher)
		teachers.DELETE("/:id", teacherController.DeleteTeacher)

		teachers.GET("/:id/courses", registrarController.GetTeacherCourses)
	}

	// Course routes
	courses := v1.Group("/courses")
	{
		courses.POST("", courseController.CreateCourse)
		courses.GET("", courseController.GetAllCourses)
		courses.GET("/:id", courseController.GetCourseByID)
		courses.PUT("/:id", courseController.UpdateCourse)
		courses.DELETE("/:id", courseController.DeleteCourse)

		courses.GET("/:id/roster", registrarController.GetEnrollmentReport)
		courses.GET("/:id/statistics", registrarController.GetCourseStatistics)
	}

	// Registrar operations spanning multiple aggregates
	enrollments := v1.Group("/enrollments")
	{
		enrollments.POST("", registrarController.EnrollStudent)
	}

	assignments := v1.Group("/assignments")
	{
		assignments.POST("", registrarController.AssignTeacher)
	}

	payments := v1.Group("/payments")
	{
		payments.POST("", registrarController.RecordPayment)
	}
}
