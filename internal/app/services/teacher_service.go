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

// TeacherService handles teacher-related operations
type TeacherService struct {
	teacherRepo TeacherRepository
}

// NewTeacherService creates a new teacher service instance
func NewTeacherService(teacherRepo TeacherRepository) (*TeacherService, error) {
	if teacherRepo == nil {
		return nil, missingDependency("teacher repository")
	}
	return &TeacherService{teacherRepo: teacherRepo}, nil
}

// validateTeacher validates teacher data before database operations
func (s *TeacherService) validateTeacher(teacher *models.Teacher) error {
	if teacher == nil {
		return fmt.Errorf("%w: teacher is nil", apperrors.ErrInvalidTeacherData)
	}

	if strings.TrimSpace(teacher.FirstName) == "" {
		return fmt.Errorf("%w: first name cannot be empty", apperrors.ErrInvalidTeacherData)
	}

	if strings.TrimSpace(teacher.LastName) == "" {
		return fmt.Errorf("%w: last name cannot be empty", apperrors.ErrInvalidTeacherData)
	}

	if !validation.IsValidEmail(teacher.Email) {
		return fmt.Errorf("%w: invalid email", apperrors.ErrInvalidTeacherData)
	}

	return nil
}

// CreateTeacher creates a new teacher and returns the generated id.
func (s *TeacherService) CreateTeacher(ctx context.Context, teacher *models.Teacher) (int64, error) {
	if err := s.validateTeacher(teacher); err != nil {
		return 0, err
	}

	id, err := s.teacherRepo.Create(ctx, teacher)
	if err != nil {
		if errors.Is(err, repositories.ErrTeacherEmailExists) {
			return 0, apperrors.NewConflictError("teacher with this email already exists")
		}
		return 0, fmt.Errorf("error creating teacher: %w", err)
	}

	teacher.ID = id
	return id, nil
}

// GetTeacherByID retrieves a teacher with their assigned courses
func (s *TeacherService) GetTeacherByID(ctx context.Context, id int64) (*models.Teacher, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid teacher ID", apperrors.ErrInvalidTeacherData)
	}

	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	if teacher == nil {
		return nil, apperrors.ErrTeacherNotFound
	}

	return teacher, nil
}

// GetAllTeachers retrieves all teachers
func (s *TeacherService) GetAllTeachers(ctx context.Context) ([]*models.Teacher, error) {
	teachers, err := s.teacherRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving teachers: %w", err)
	}
	return teachers, nil
}

// UpdateTeacher updates an existing teacher
func (s *TeacherService) UpdateTeacher(ctx context.Context, teacher *models.Teacher) error {
	if err := s.validateTeacher(teacher); err != nil {
		return err
	}

	if teacher.ID <= 0 {
		return fmt.Errorf("%w: invalid teacher ID", apperrors.ErrInvalidTeacherData)
	}

	err := s.teacherRepo.Update(ctx, teacher)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrTeacherNotFound
		}
		if errors.Is(err, repositories.ErrTeacherEmailExists) {
			return apperrors.NewConflictError("teacher with this email already exists")
		}
		return fmt.Errorf("error updating teacher: %w", err)
	}
	return nil
}

// DeleteTeacher deletes a teacher by ID
func (s *TeacherService) DeleteTeacher(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid teacher ID", apperrors.ErrInvalidTeacherData)
	}

	err := s.teacherRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrTeacherNotFound
		}
		return fmt.Errorf("error deleting teacher: %w", err)
	}
	return nil
}
