package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/emre/sisgo/internal/app/models"
	"github.com/emre/sisgo/internal/pkg/apperrors"
)

func TestEnrollmentReport(t *testing.T) {
	ctx := context.Background()

	t.Run("empty course yields empty report", func(t *testing.T) {
		f := mustFixture(t)
		course := seedCourse(f, "Analysis I", 6)

		report, err := f.service.EnrollmentReport(ctx, course.ID)
		if err != nil {
			t.Fatalf("EnrollmentReport() error = %v", err)
		}
		if len(report.StudentNames) != 0 {
			t.Errorf("student names = %v, want empty", report.StudentNames)
		}
		if report.CourseName != "Analysis I" {
			t.Errorf("course name = %q, want %q", report.CourseName, "Analysis I")
		}
	})

	t.Run("lists students in enrollment order", func(t *testing.T) {
		f := mustFixture(t)
		course := seedCourse(f, "Analysis I", 6)
		ada := f.students.add(&models.Student{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.edu", DateOfBirth: time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)})
		alan := f.students.add(&models.Student{FirstName: "Alan", LastName: "Turing", Email: "alan@example.edu", DateOfBirth: time.Date(2002, 2, 2, 0, 0, 0, 0, time.UTC)})

		if _, err := f.service.EnrollStudent(ctx, ada.ID, course.ID); err != nil {
			t.Fatalf("EnrollStudent(ada) error = %v", err)
		}
		if _, err := f.service.EnrollStudent(ctx, alan.ID, course.ID); err != nil {
			t.Fatalf("EnrollStudent(alan) error = %v", err)
		}

		report, err := f.service.EnrollmentReport(ctx, course.ID)
		if err != nil {
			t.Fatalf("EnrollmentReport() error = %v", err)
		}

		want := []string{"Ada Lovelace", "Alan Turing"}
		if len(report.StudentNames) != len(want) {
			t.Fatalf("student names = %v, want %v", report.StudentNames, want)
		}
		for i := range want {
			if report.StudentNames[i] != want[i] {
				t.Errorf("student names[%d] = %q, want %q", i, report.StudentNames[i], want[i])
			}
		}
	})

	t.Run("missing course", func(t *testing.T) {
		f := mustFixture(t)

		_, err := f.service.EnrollmentReport(ctx, 888)
		if !errors.Is(err, apperrors.ErrCourseNotFound) {
			t.Errorf("error = %v, want ErrCourseNotFound", err)
		}
	})
}

func TestPaymentReport(t *testing.T) {
	ctx := context.Background()

	t.Run("lists payments in order", func(t *testing.T) {
		f := mustFixture(t)
		student := seedStudent(f, "Ada", "Lovelace")

		dates := []time.Time{
			time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		}
		amounts := []float64{150.00, 99.50}
		for i := range dates {
			if _, err := f.service.RecordPayment(ctx, student.ID, amounts[i], dates[i]); err != nil {
				t.Fatalf("RecordPayment(%d) error = %v", i, err)
			}
		}

		report, err := f.service.PaymentReport(ctx, student.ID)
		if err != nil {
			t.Fatalf("PaymentReport() error = %v", err)
		}
		if report.StudentName != "Ada Lovelace" {
			t.Errorf("student name = %q, want %q", report.StudentName, "Ada Lovelace")
		}
		if len(report.Lines) != 2 {
			t.Fatalf("lines = %d, want 2", len(report.Lines))
		}
		for i := range dates {
			if !report.Lines[i].Date.Equal(dates[i]) || report.Lines[i].Amount != amounts[i] {
				t.Errorf("line %d = (%v, %v), want (%v, %v)",
					i, report.Lines[i].Date, report.Lines[i].Amount, dates[i], amounts[i])
			}
		}
	})

	t.Run("missing student", func(t *testing.T) {
		f := mustFixture(t)

		_, err := f.service.PaymentReport(ctx, 999)
		if !errors.Is(err, apperrors.ErrStudentNotFound) {
			t.Errorf("error = %v, want ErrStudentNotFound", err)
		}
	})

	t.Run("student with no payments yields empty lines", func(t *testing.T) {
		f := mustFixture(t)
		student := seedStudent(f, "Ada", "Lovelace")

		report, err := f.service.PaymentReport(ctx, student.ID)
		if err != nil {
			t.Fatalf("PaymentReport() error = %v", err)
		}
		if len(report.Lines) != 0 {
			t.Errorf("lines = %v, want empty", report.Lines)
		}
	})
}

func TestCourseStatistics(t *testing.T) {
	ctx := context.Background()

	t.Run("sums full payment history of enrolled students", func(t *testing.T) {
		f := mustFixture(t)
		course := seedCourse(f, "Analysis I", 6)
		a := f.students.add(&models.Student{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.edu", DateOfBirth: time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)})
		b := f.students.add(&models.Student{FirstName: "Alan", LastName: "Turing", Email: "alan@example.edu", DateOfBirth: time.Date(2002, 2, 2, 0, 0, 0, 0, time.UTC)})

		if _, err := f.service.EnrollStudent(ctx, a.ID, course.ID); err != nil {
			t.Fatalf("EnrollStudent(a) error = %v", err)
		}
		if _, err := f.service.EnrollStudent(ctx, b.ID, course.ID); err != nil {
			t.Fatalf("EnrollStudent(b) error = %v", err)
		}

		now := time.Now()
		for _, p := range []struct {
			studentID int64
			amount    float64
		}{
			{a.ID, 100},
			{a.ID, 50},
			{b.ID, 200},
		} {
			if _, err := f.service.RecordPayment(ctx, p.studentID, p.amount, now); err != nil {
				t.Fatalf("RecordPayment() error = %v", err)
			}
		}

		stats, err := f.service.CourseStatistics(ctx, course.ID)
		if err != nil {
			t.Fatalf("CourseStatistics() error = %v", err)
		}
		if stats.EnrollmentCount != 2 {
			t.Errorf("enrollment count = %d, want 2", stats.EnrollmentCount)
		}
		if stats.TotalPayments != 350 {
			t.Errorf("total payments = %v, want 350", stats.TotalPayments)
		}
	})

	t.Run("empty course", func(t *testing.T) {
		f := mustFixture(t)
		course := seedCourse(f, "Analysis I", 6)

		stats, err := f.service.CourseStatistics(ctx, course.ID)
		if err != nil {
			t.Fatalf("CourseStatistics() error = %v", err)
		}
		if stats.EnrollmentCount != 0 || stats.TotalPayments != 0 {
			t.Errorf("stats = %+v, want zero counts", stats)
		}
	})

	t.Run("missing course", func(t *testing.T) {
		f := mustFixture(t)

		_, err := f.service.CourseStatistics(ctx, 888)
		if !errors.Is(err, apperrors.ErrCourseNotFound) {
			t.Errorf("error = %v, want ErrCourseNotFound", err)
		}
	})
}
