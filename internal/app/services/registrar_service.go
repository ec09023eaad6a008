package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/emre/sisgo/internal/app/models"
	"github.com/emre/sisgo/internal/app/repositories"
	"github.com/emre/sisgo/internal/pkg/apperrors"
	"github.com/emre/sisgo/internal/pkg/logger"
)

// RegistrarService enforces the rules that span students, teachers, courses,
// enrollments and payments. Multi-step writes run inside one transaction:
// a failure after the first write rolls everything back.
type RegistrarService struct {
	students    StudentRepository
	teachers    TeacherRepository
	courses     CourseRepository
	enrollments EnrollmentRepository
	payments    PaymentRepository
	tx          TxManager
}

// NewRegistrarService creates a registrar service. Every repository and the
// transaction manager are required; a nil dependency is a configuration error.
func NewRegistrarService(
	students StudentRepository,
	teachers TeacherRepository,
	courses CourseRepository,
	enrollments EnrollmentRepository,
	payments PaymentRepository,
	tx TxManager,
) (*RegistrarService, error) {
	switch {
	case students == nil:
		return nil, missingDependency("student repository")
	case teachers == nil:
		return nil, missingDependency("teacher repository")
	case courses == nil:
		return nil, missingDependency("course repository")
	case enrollments == nil:
		return nil, missingDependency("enrollment repository")
	case payments == nil:
		return nil, missingDependency("payment repository")
	case tx == nil:
		return nil, missingDependency("transaction manager")
	}

	return &RegistrarService{
		students:    students,
		teachers:    teachers,
		courses:     courses,
		enrollments: enrollments,
		payments:    payments,
		tx:          tx,
	}, nil
}

// getStudent resolves a student or maps the miss to apperrors.ErrStudentNotFound.
func (s *RegistrarService) getStudent(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error checking student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

// getCourse resolves a course or maps the miss to apperrors.ErrCourseNotFound.
func (s *RegistrarService) getCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error checking course: %w", err)
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

// getTeacher resolves a teacher or maps the miss to apperrors.ErrTeacherNotFound.
func (s *RegistrarService) getTeacher(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error checking teacher: %w", err)
	}
	if teacher == nil {
		return nil, apperrors.ErrTeacherNotFound
	}
	return teacher, nil
}

// EnrollStudent enrolls a student in a course dated now. The student is
// checked first, then the course, then the (student, course) pair; a pair
// that is already enrolled fails with ErrDuplicateEnrollment and leaves the
// existing enrollment untouched. On success the enrollment carries its
// store-generated id and appears in both the student's and the course's
// enrollment lists.
func (s *RegistrarService) EnrollStudent(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	student, err := s.getStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	exists, err := s.enrollments.Exists(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("error checking enrollment existence: %w", err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateEnrollment
	}

	enrollment := &models.Enrollment{
		StudentID:  studentID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
	}

	// Write order: enrollment insert, id assignment, student update, course
	// update. All inside a single transaction.
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		id, err := s.enrollments.Create(ctx, enrollment)
		if err != nil {
			if errors.Is(err, repositories.ErrEnrollmentExists) {
				return apperrors.ErrDuplicateEnrollment
			}
			return fmt.Errorf("error creating enrollment: %w", err)
		}
		enrollment.ID = id

		student.Enrollments = append(student.Enrollments, enrollment)
		if err := s.students.Update(ctx, student); err != nil {
			return fmt.Errorf("error updating student: %w", err)
		}

		course.Enrollments = append(course.Enrollments, enrollment)
		if err := s.courses.Update(ctx, course); err != nil {
			return fmt.Errorf("error updating course: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("studentID", studentID).
		Int64("courseID", courseID).
		Int64("enrollmentID", enrollment.ID).
		Msg("Student enrolled in course")

	return enrollment, nil
}

// AssignTeacher assigns a teacher to a course and records the course on the
// teacher's side. Missing teacher and missing course produce distinct errors.
func (s *RegistrarService) AssignTeacher(ctx context.Context, teacherID, courseID int64) error {
	teacher, err := s.getTeacher(ctx, teacherID)
	if err != nil {
		return err
	}

	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return err
	}

	course.TeacherID = &teacher.ID
	course.Teacher = teacher
	teacher.Courses = append(teacher.Courses, course)

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.courses.Update(ctx, course); err != nil {
			return fmt.Errorf("error updating course: %w", err)
		}
		if err := s.teachers.Update(ctx, teacher); err != nil {
			return fmt.Errorf("error updating teacher: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info().
		Int64("teacherID", teacherID).
		Int64("courseID", courseID).
		Msg("Teacher assigned to course")

	return nil
}

// RecordPayment records a tuition payment for a student. The amount and date
// are stored as given; validating them is a pending product decision.
func (s *RegistrarService) RecordPayment(ctx context.Context, studentID int64, amount float64, paidAt time.Time) (*models.Payment, error) {
	student, err := s.getStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		StudentID: studentID,
		Reference: uuid.NewString(),
		Amount:    amount,
		PaidAt:    paidAt,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		id, err := s.payments.Create(ctx, payment)
		if err != nil {
			return fmt.Errorf("error creating payment: %w", err)
		}
		payment.ID = id

		student.Payments = append(student.Payments, payment)
		if err := s.students.Update(ctx, student); err != nil {
			return fmt.Errorf("error updating student: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("studentID", studentID).
		Int64("paymentID", payment.ID).
		Float64("amount", amount).
		Msg("Payment recorded")

	return payment, nil
}

// StudentEnrollments returns the student's enrollments in store order.
func (s *RegistrarService) StudentEnrollments(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	student, err := s.getStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return student.Enrollments, nil
}

// TeacherCourses returns the courses currently assigned to a teacher.
func (s *RegistrarService) TeacherCourses(ctx context.Context, teacherID int64) ([]*models.Course, error) {
	teacher, err := s.getTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return teacher.Courses, nil
}
