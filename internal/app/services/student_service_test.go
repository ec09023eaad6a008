package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/emre/sisgo/internal/app/models"
	"github.com/emre/sisgo/internal/pkg/apperrors"
)

func validStudent() *models.Student {
	return &models.Student{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		DateOfBirth: time.Date(2000, 3, 14, 0, 0, 0, 0, time.UTC),
		Email:       "ada@example.edu",
		Phone:       "+90 555 111 2233",
	}
}

func TestStudentService_CreateStudent(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns generated id", func(t *testing.T) {
		repo := newFakeStudentRepo()
		svc, err := NewStudentService(repo)
		if err != nil {
			t.Fatalf("NewStudentService() error = %v", err)
		}

		student := validStudent()
		id, err := svc.CreateStudent(ctx, student)
		if err != nil {
			t.Fatalf("CreateStudent() error = %v", err)
		}
		if id == 0 || student.ID != id {
			t.Errorf("id = %d, student.ID = %d, want matching non-zero ids", id, student.ID)
		}
	})

	t.Run("rejects invalid data", func(t *testing.T) {
		repo := newFakeStudentRepo()
		svc, _ := NewStudentService(repo)

		tests := []struct {
			name   string
			mutate func(*models.Student)
		}{
			{"empty first name", func(s *models.Student) { s.FirstName = " " }},
			{"empty last name", func(s *models.Student) { s.LastName = "" }},
			{"malformed email", func(s *models.Student) { s.Email = "not-an-email" }},
			{"zero date of birth", func(s *models.Student) { s.DateOfBirth = time.Time{} }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				student := validStudent()
				tt.mutate(student)
				_, err := svc.CreateStudent(ctx, student)
				if !errors.Is(err, apperrors.ErrInvalidStudentData) {
					t.Errorf("error = %v, want ErrInvalidStudentData", err)
				}
			})
		}
	})

	t.Run("nil repository is a configuration error", func(t *testing.T) {
		_, err := NewStudentService(nil)
		if !errors.Is(err, ErrMissingDependency) {
			t.Errorf("error = %v, want ErrMissingDependency", err)
		}
	})
}

func TestStudentService_GetStudentByID(t *testing.T) {
	ctx := context.Background()
	repo := newFakeStudentRepo()
	svc, _ := NewStudentService(repo)

	seeded := repo.add(validStudent())

	got, err := svc.GetStudentByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("GetStudentByID() error = %v", err)
	}
	if got.ID != seeded.ID {
		t.Errorf("got ID = %d, want %d", got.ID, seeded.ID)
	}

	if _, err := svc.GetStudentByID(ctx, 999); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("missing student error = %v, want ErrStudentNotFound", err)
	}

	if _, err := svc.GetStudentByID(ctx, 0); !errors.Is(err, apperrors.ErrInvalidStudentData) {
		t.Errorf("zero id error = %v, want ErrInvalidStudentData", err)
	}
}

func TestStudentService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeStudentRepo()
	svc, _ := NewStudentService(repo)

	seeded := repo.add(validStudent())
	seeded.Phone = "+90 555 999 8877"
	if err := svc.UpdateStudent(ctx, seeded); err != nil {
		t.Fatalf("UpdateStudent() error = %v", err)
	}

	missing := validStudent()
	missing.ID = 999
	if err := svc.UpdateStudent(ctx, missing); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("update missing error = %v, want ErrStudentNotFound", err)
	}

	if err := svc.DeleteStudent(ctx, seeded.ID); err != nil {
		t.Fatalf("DeleteStudent() error = %v", err)
	}
	if err := svc.DeleteStudent(ctx, seeded.ID); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("delete twice error = %v, want ErrStudentNotFound", err)
	}
}
