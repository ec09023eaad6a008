// Package services holds the domain layer: the business rules that span
// entities and the per-entity CRUD operations. Services talk to persistence
// through the narrow repository interfaces below, so the same code runs
// against the pgx-backed repositories in production and against in-memory
// fakes in tests.
//
// Services defined in this package:
// - RegistrarService: cross-entity rules (enrollment, teacher assignment,
//   payments, reports, course statistics)
// - StudentService, TeacherService, CourseService: per-entity CRUD
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/emre/sisgo/internal/app/models"
)

// ErrMissingDependency is returned when a service is constructed without one
// of its required collaborators.
var ErrMissingDependency = errors.New("missing service dependency")

func missingDependency(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingDependency, name)
}

// StudentRepository is the persistence surface for students. GetByID loads
// the full aggregate: the student with enrollments and payments in store order.
type StudentRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	Create(ctx context.Context, student *models.Student) (int64, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// TeacherRepository is the persistence surface for teachers. GetByID loads
// the teacher with their assigned courses.
type TeacherRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	GetAll(ctx context.Context) ([]*models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) (int64, error)
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id int64) error
}

// CourseRepository is the persistence surface for courses. GetByID loads the
// course with its enrollments.
type CourseRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	Create(ctx context.Context, course *models.Course) (int64, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// EnrollmentRepository is the persistence surface for enrollments.
type EnrollmentRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	GetAll(ctx context.Context) ([]*models.Enrollment, error)
	Create(ctx context.Context, enrollment *models.Enrollment) (int64, error)
	Update(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, studentID, courseID int64) (bool, error)
}

// PaymentRepository is the persistence surface for payments.
type PaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Payment, error)
	GetAll(ctx context.Context) ([]*models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) (int64, error)
	Update(ctx context.Context, payment *models.Payment) error
	Delete(ctx context.Context, id int64) error
}

// TxManager runs a function inside a single store transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
