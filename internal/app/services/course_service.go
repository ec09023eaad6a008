package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emre/sisgo/internal/app/models"
	"github.com/emre/sisgo/internal/app/repositories"
	"github.com/emre/sisgo/internal/pkg/apperrors"
)

// CourseService handles course-related operations
type CourseService struct {
	courseRepo CourseRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo CourseRepository) (*CourseService, error) {
	if courseRepo == nil {
		return nil, missingDependency("course repository")
	}
	return &CourseService{courseRepo: courseRepo}, nil
}

// validateCourse validates course data before database operations
func (s *CourseService) validateCourse(course *models.Course) error {
	if course == nil {
		return fmt.Errorf("%w: course is nil", apperrors.ErrInvalidCourseData)
	}

	if strings.TrimSpace(course.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrInvalidCourseData)
	}

	if course.Credits < 0 {
		return fmt.Errorf("%w: credits cannot be negative", apperrors.ErrInvalidCourseData)
	}

	return nil
}

// CreateCourse creates a new course and returns the generated id.
func (s *CourseService) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	if err := s.validateCourse(course); err != nil {
		return 0, err
	}

	id, err := s.courseRepo.Create(ctx, course)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNameExists) {
			return 0, apperrors.NewConflictError("course with this name already exists")
		}
		return 0, fmt.Errorf("error creating course: %w", err)
	}

	course.ID = id
	return id, nil
}

// GetCourseByID retrieves a course aggregate by ID
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid course ID", apperrors.ErrInvalidCourseData)
	}

	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	return course, nil
}

// GetAllCourses retrieves all courses
func (s *CourseService) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

// UpdateCourse updates an existing course
func (s *CourseService) UpdateCourse(ctx context.Context, course *models.Course) error {
	if err := s.validateCourse(course); err != nil {
		return err
	}

	if course.ID <= 0 {
		return fmt.Errorf("%w: invalid course ID", apperrors.ErrInvalidCourseData)
	}

	err := s.courseRepo.Update(ctx, course)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrCourseNotFound
		}
		if errors.Is(err, repositories.ErrCourseNameExists) {
			return apperrors.NewConflictError("course with this name already exists")
		}
		return fmt.Errorf("error updating course: %w", err)
	}
	return nil
}

// DeleteCourse deletes a course by ID
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid course ID", apperrors.ErrInvalidCourseData)
	}

	err := s.courseRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error deleting course: %w", err)
	}
	return nil
}
