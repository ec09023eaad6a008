package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/sisgo/internal/app/models/dto"
	"github.com/emre/sisgo/internal/app/services"
	"github.com/emre/sisgo/internal/middleware"
)

// RegistrarController exposes the cross-aggregate operations: enrollments,
// teacher assignments, payments and the reporting endpoints built on them.
type RegistrarController struct {
	registrarService *services.RegistrarService
}

// NewRegistrarController creates a new RegistrarController
func NewRegistrarController(registrarService *services.RegistrarService) *RegistrarController {
	return &RegistrarController{
		registrarService: registrarService,
	}
}

// EnrollStudent enrolls a student in a course
func (c *RegistrarController) EnrollStudent(ctx *gin.Context) {
	var req dto.EnrollStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrollment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollment, err := c.registrarService.EnrollStudent(ctx, req.StudentID, req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(enrollment))
}

// AssignTeacher assigns a teacher to a course
func (c *RegistrarController) AssignTeacher(ctx *gin.Context) {
	var req dto.AssignTeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assignment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.registrarService.AssignTeacher(ctx, req.TeacherID, req.CourseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// RecordPayment records a tuition payment for a student
func (c *RegistrarController) RecordPayment(ctx *gin.Context) {
	var req dto.RecordPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid payment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	payment, err := c.registrarService.RecordPayment(ctx, req.StudentID, req.Amount, req.PaidAt)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(payment))
}

// GetStudentEnrollments lists the enrollments of a student
func (c *RegistrarController) GetStudentEnrollments(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	enrollments, err := c.registrarService.StudentEnrollments(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollments))
}

// GetTeacherCourses lists the courses taught by a teacher
func (c *RegistrarController) GetTeacherCourses(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	courses, err := c.registrarService.TeacherCourses(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// GetEnrollmentReport returns the roster of a course
func (c *RegistrarController) GetEnrollmentReport(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	report, err := c.registrarService.EnrollmentReport(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(report))
}

// GetPaymentReport returns the payment history of a student
func (c *RegistrarController) GetPaymentReport(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	report, err := c.registrarService.PaymentReport(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(report))
}

// GetCourseStatistics returns enrollment count and payment totals for a course
func (c *RegistrarController) GetCourseStatistics(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	stats, err := c.registrarService.CourseStatistics(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}
