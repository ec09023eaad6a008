package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/emre/sisgo/internal/app/models"
	appRepos "github.com/emre/sisgo/internal/app/repositories"
)

// CreateDefaultData seeds a handful of demo students, teachers and courses
// so a fresh database is immediately usable. The seed only inserts into
// tables that are still empty.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	studentRepo := appRepos.NewStudentRepository(dbPool)
	teacherRepo := appRepos.NewTeacherRepository(dbPool)
	courseRepo := appRepos.NewCourseRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	students, err := studentRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(students) == 0 {
		defaults := []*appModels.Student{
			{
				FirstName:   "Ada",
				LastName:    "Lovelace",
				DateOfBirth: time.Date(1999, time.December, 10, 0, 0, 0, 0, time.UTC),
				Email:       "ada.lovelace@example.edu",
				Phone:       "+90 555 000 0001",
			},
			{
				FirstName:   "Alan",
				LastName:    "Turing",
				DateOfBirth: time.Date(2000, time.June, 23, 0, 0, 0, 0, time.UTC),
				Email:       "alan.turing@example.edu",
				Phone:       "+90 555 000 0002",
			},
		}
		for _, s := range defaults {
			if _, err := studentRepo.Create(ctx, s); err != nil {
				lgr.Error().Err(err).Str("email", s.Email).Msg("Error creating default student")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	teachers, err := teacherRepo.GetAll(ctx)
	if err != nil {
		return errors.Join(finalErr, err)
	}
	if len(teachers) == 0 {
		defaults := []*appModels.Teacher{
			{FirstName: "Grace", LastName: "Hopper", Email: "grace.hopper@example.edu"},
			{FirstName: "Donald", LastName: "Knuth", Email: "donald.knuth@example.edu"},
		}
		for _, t := range defaults {
			if _, err := teacherRepo.Create(ctx, t); err != nil {
				lgr.Error().Err(err).Str("email", t.Email).Msg("Error creating default teacher")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	courses, err := courseRepo.GetAll(ctx)
	if err != nil {
		return errors.Join(finalErr, err)
	}
	if len(courses) == 0 {
		defaults := []*appModels.Course{
			{Name: "Introduction to Programming", Credits: 6},
			{Name: "Data Structures", Credits: 8},
			{Name: "Databases", Credits: 6},
		}
		for _, c := range defaults {
			if _, err := courseRepo.Create(ctx, c); err != nil {
				lgr.Error().Err(err).Str("name", c.Name).Msg("Error creating default course")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check complete.")
	}
	return finalErr
}
