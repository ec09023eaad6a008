package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emre/sisgo/internal/app/models"
	"github.com/emre/sisgo/internal/app/repositories"
	"github.com/emre/sisgo/internal/pkg/apperrors"
	"github.com/emre/sisgo/internal/pkg/validation"
)

// StudentService handles student-related operations
type StudentService struct {
	studentRepo StudentRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo StudentRepository) (*StudentService, error) {
	if studentRepo == nil {
		return nil, missingDependency("student repository")
	}
	return &StudentService{studentRepo: studentRepo}, nil
}

// validateStudent validates student data before database operations
func (s *StudentService) validateStudent(student *models.Student) error {
	if student == nil {
		return fmt.Errorf("%w: student is nil", apperrors.ErrInvalidStudentData)
	}

	if strings.TrimSpace(student.FirstName) == "" {
		return fmt.Errorf("%w: first name cannot be empty", apperrors.ErrInvalidStudentData)
	}

	if strings.TrimSpace(student.LastName) == "" {
		return fmt.Errorf("%w: last name cannot be empty", apperrors.ErrInvalidStudentData)
	}

	if !validation.IsValidEmail(student.Email) {
		return fmt.Errorf("%w: invalid email", apperrors.ErrInvalidStudentData)
	}

	if student.DateOfBirth.IsZero() {
		return fmt.Errorf("%w: date of birth is required", apperrors.ErrInvalidStudentData)
	}

	return nil
}

// CreateStudent creates a new student and returns the generated id.
func (s *StudentService) CreateStudent(ctx context.Context, student *models.Student) (int64, error) {
	if err := s.validateStudent(student); err != nil {
		return 0, err
	}

	id, err := s.studentRepo.Create(ctx, student)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentEmailExists) {
			return 0, apperrors.NewConflictError("student with this email already exists")
		}
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	student.ID = id
	return id, nil
}

// GetStudentByID retrieves a student aggregate by ID
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid student ID", apperrors.ErrInvalidStudentData)
	}

	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	return student, nil
}

// GetAllStudents retrieves all students
func (s *StudentService) GetAllStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

// UpdateStudent updates an existing student
func (s *StudentService) UpdateStudent(ctx context.Context, student *models.Student) error {
	if err := s.validateStudent(student); err != nil {
		return err
	}

	if student.ID <= 0 {
		return fmt.Errorf("%w: invalid student ID", apperrors.ErrInvalidStudentData)
	}

	err := s.studentRepo.Update(ctx, student)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrStudentNotFound
		}
		if errors.Is(err, repositories.ErrStudentEmailExists) {
			return apperrors.NewConflictError("student with this email already exists")
		}
		return fmt.Errorf("error updating student: %w", err)
	}
	return nil
}

// DeleteStudent deletes a student by ID
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid student ID", apperrors.ErrInvalidStudentData)
	}

	err := s.studentRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error deleting student: %w", err)
	}
	return nil
}
