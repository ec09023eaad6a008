package dto

import "time"

// CreateStudentRequest carries the fields needed to register a student.
type CreateStudentRequest struct {
	FirstName   string    `json:"firstName" binding:"required" validate:"required,min=2,max=100"`
	LastName    string    `json:"lastName" binding:"required" validate:"required,min=2,max=100"`
	DateOfBirth time.Time `json:"dateOfBirth" binding:"required" validate:"required"`
	Email       string    `json:"email" binding:"required,email" validate:"required,email"`
	Phone       string    `json:"phone" validate:"max=30"`
}

// UpdateStudentRequest mirrors CreateStudentRequest for full updates.
type UpdateStudentRequest struct {
	FirstName   string    `json:"firstName" binding:"required" validate:"required,min=2,max=100"`
	LastName    string    `json:"lastName" binding:"required" validate:"required,min=2,max=100"`
	DateOfBirth time.Time `json:"dateOfBirth" binding:"required" validate:"required"`
	Email       string    `json:"email" binding:"required,email" validate:"required,email"`
	Phone       string    `json:"phone" validate:"max=30"`
}

// CreateTeacherRequest carries the fields needed to register a teacher.
type CreateTeacherRequest struct {
	FirstName string `json:"firstName" binding:"required" validate:"required,min=2,max=100"`
	LastName  string `json:"lastName" binding:"required" validate:"required,min=2,max=100"`
	Email     string `json:"email" binding:"required,email" validate:"required,email"`
}

// CreateCourseRequest carries the fields needed to open a course.
type CreateCourseRequest struct {
	Name    string `json:"name" binding:"required" validate:"required,min=2,max=200"`
	Credits int    `json:"credits" binding:"min=0" validate:"min=0"`
}

// EnrollStudentRequest enrolls a student in a course.
type EnrollStudentRequest struct {
	StudentID int64 `json:"studentId" binding:"required" validate:"required,gt=0"`
	CourseID  int64 `json:"courseId" binding:"required" validate:"required,gt=0"`
}

// AssignTeacherRequest assigns a teacher to a course.
type AssignTeacherRequest struct {
	TeacherID int64 `json:"teacherId" binding:"required" validate:"required,gt=0"`
	CourseID  int64 `json:"courseId" binding:"required" validate:"required,gt=0"`
}

// RecordPaymentRequest records a tuition payment for a student.
type RecordPaymentRequest struct {
	StudentID int64     `json:"studentId" binding:"required" validate:"required,gt=0"`
	Amount    float64   `json:"amount" binding:"required"`
	PaidAt    time.Time `json:"paidAt" binding:"required" validate:"required"`
}
