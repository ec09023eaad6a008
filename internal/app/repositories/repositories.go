package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository    *StudentRepository
	TeacherRepository    *TeacherRepository
	CourseRepository     *CourseRepository
	EnrollmentRepository *EnrollmentRepository
	PaymentRepository    *PaymentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository:    NewStudentRepository(pool),
		TeacherRepository:    NewTeacherRepository(pool),
		CourseRepository:     NewCourseRepository(pool),
		EnrollmentRepository: NewEnrollmentRepository(pool),
		PaymentRepository:    NewPaymentRepository(pool),
	}
}
