package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/emre/sisgo/internal/app/models"
	"github.com/emre/sisgo/internal/pkg/apperrors"
)

func mustFixture(t *testing.T) *registrarFixture {
	t.Helper()
	f, err := newRegistrarFixture()
	if err != nil {
		t.Fatalf("newRegistrarFixture() error = %v", err)
	}
	return f
}

func seedStudent(f *registrarFixture, first, last string) *models.Student {
	return f.students.add(&models.Student{
		FirstName:   first,
		LastName:    last,
		DateOfBirth: time.Date(2000, 3, 14, 0, 0, 0, 0, time.UTC),
		Email:       "student@example.edu",
		Phone:       "+90 555 111 2233",
	})
}

func seedCourse(f *registrarFixture, name string, credits int) *models.Course {
	return f.courses.add(&models.Course{Name: name, Credits: credits})
}

func TestNewRegistrarService_MissingDependency(t *testing.T) {
	f := mustFixture(t)

	tests := []struct {
		name string
		call func() (*RegistrarService, error)
	}{
		{"nil student repo", func() (*RegistrarService, error) {
			return NewRegistrarService(nil, f.teachers, f.courses, f.enrollments, f.payments, f.tx)
		}},
		{"nil teacher repo", func() (*RegistrarService, error) {
			return NewRegistrarService(f.students, nil, f.courses, f.enrollments, f.payments, f.tx)
		}},
		{"nil course repo", func() (*RegistrarService, error) {
			return NewRegistrarService(f.students, f.teachers, nil, f.enrollments, f.payments, f.tx)
		}},
		{"nil enrollment repo", func() (*RegistrarService, error) {
			return NewRegistrarService(f.students, f.teachers, f.courses, nil, f.payments, f.tx)
		}},
		{"nil payment repo", func() (*RegistrarService, error) {
			return NewRegistrarService(f.students, f.teachers, f.courses, f.enrollments, nil, f.tx)
		}},
		{"nil tx manager", func() (*RegistrarService, error) {
			return NewRegistrarService(f.students, f.teachers, f.courses, f.enrollments, f.payments, nil)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := tt.call()
			if !errors.Is(err, ErrMissingDependency) {
				t.Errorf("error = %v, want ErrMissingDependency", err)
			}
			if svc != nil {
				t.Errorf("service = %v, want nil", svc)
			}
		})
	}
}

func TestEnrollStudent(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := mustFixture(t)
		student := seedStudent(f, "Ada", "Lovelace")
		course := seedCourse(f, "Analysis I", 6)

		enrollment, err := f.service.EnrollStudent(ctx, student.ID, course.ID)
		if err != nil {
			t.Fatalf("EnrollStudent() error = %v", err)
		}
		if enrollment.ID == 0 {
			t.Error("enrollment ID was not assigned from the store")
		}
		if enrollment.StudentID != student.ID || enrollment.CourseID != course.ID {
			t.Errorf("enrollment references = (%d, %d), want (%d, %d)",
				enrollment.StudentID, enrollment.CourseID, student.ID, course.ID)
		}
		if enrollment.EnrolledAt.IsZero() {
			t.Error("enrollment date was not set")
		}

		// Both aggregates must show the enrollment on lookup.
		gotStudent, err := f.students.GetByID(ctx, student.ID)
		if err != nil {
			t.Fatalf("student lookup error = %v", err)
		}
		if len(gotStudent.Enrollments) != 1 || gotStudent.Enrollments[0].ID != enrollment.ID {
			t.Errorf("student enrollments = %+v, want the new enrollment", gotStudent.Enrollments)
		}

		gotCourse, err := f.courses.GetByID(ctx, course.ID)
		if err != nil {
			t.Fatalf("course lookup error = %v", err)
		}
		if len(gotCourse.Enrollments) != 1 || gotCourse.Enrollments[0].ID != enrollment.ID {
			t.Errorf("course enrollments = %+v, want the new enrollment", gotCourse.Enrollments)
		}

		if f.tx.calls != 1 {
			t.Errorf("transaction calls = %d, want 1", f.tx.calls)
		}
	})

	t.Run("duplicate enrollment fails and leaves the original", func(t *testing.T) {
		f := mustFixture(t)
		student := seedStudent(f, "Ada", "Lovelace")
		course := seedCourse(f, "Analysis I", 6)

		first, err := f.service.EnrollStudent(ctx, student.ID, course.ID)
		if err != nil {
			t.Fatalf("first EnrollStudent() error = %v", err)
		}

		_, err = f.service.EnrollStudent(ctx, student.ID, course.ID)
		if !errors.Is(err, apperrors.ErrDuplicateEnrollment) {
			t.Fatalf("second EnrollStudent() error = %v, want ErrDuplicateEnrollment", err)
		}

		if len(f.enrollments.enrollments) != 1 {
			t.Errorf("stored enrollments = %d, want 1", len(f.enrollments.enrollments))
		}
		stored, err := f.enrollments.GetByID(ctx, first.ID)
		if err != nil {
			t.Fatalf("enrollment lookup error = %v", err)
		}
		if !stored.EnrolledAt.Equal(first.EnrolledAt) {
			t.Errorf("original enrollment changed: got %v, want %v", stored.EnrolledAt, first.EnrolledAt)
		}
	})

	t.Run("missing student fails regardless of course", func(t *testing.T) {
		f := mustFixture(t)
		course := seedCourse(f, "Analysis I", 6)

		_, err := f.service.EnrollStudent(ctx, 999, course.ID)
		if !errors.Is(err, apperrors.ErrStudentNotFound) {
			t.Errorf("error = %v, want ErrStudentNotFound", err)
		}

		_, err = f.service.EnrollStudent(ctx, 999, 888)
		if !errors.Is(err, apperrors.ErrStudentNotFound) {
			t.Errorf("error with bad course too = %v, want ErrStudentNotFound", err)
		}
	})

	t.Run("missing course fails with course error", func(t *testing.T) {
		f := mustFixture(t)
		student := seedStudent(f, "Ada", "Lovelace")

		_, err := f.service.EnrollStudent(ctx, student.ID, 888)
		if !errors.Is(err, apperrors.ErrCourseNotFound) {
			t.Errorf("error = %v, want ErrCourseNotFound", err)
		}
	})

	t.Run("student update failure surfaces", func(t *testing.T) {
		f := mustFixture(t)
		student := seedStudent(f, "Ada", "Lovelace")
		course := seedCourse(f, "Analysis I", 6)
		f.students.updateErr = errors.New("connection reset")

		_, err := f.service.EnrollStudent(ctx, student.ID, course.ID)
		if err == nil {
			t.Fatal("EnrollStudent() succeeded despite student update failure")
		}
	})
}

func TestAssignTeacher(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := mustFixture(t)
		teacher := f.teachers.add(&models.Teacher{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.edu"})
		course := seedCourse(f, "Compilers", 8)

		if err := f.service.AssignTeacher(ctx, teacher.ID, course.ID); err != nil {
			t.Fatalf("AssignTeacher() error = %v", err)
		}

		gotCourse, _ := f.courses.GetByID(ctx, course.ID)
		if gotCourse.TeacherID == nil || *gotCourse.TeacherID != teacher.ID {
			t.Errorf("course teacher reference = %v, want %d", gotCourse.TeacherID, teacher.ID)
		}

		gotTeacher, _ := f.teachers.GetByID(ctx, teacher.ID)
		if len(gotTeacher.Courses) != 1 || gotTeacher.Courses[0].ID != course.ID {
			t.Errorf("teacher courses = %+v, want the assigned course", gotTeacher.Courses)
		}

		if f.courses.updates != 1 || f.teachers.updates != 1 {
			t.Errorf("updates = (course %d, teacher %d), want (1, 1)", f.courses.updates, f.teachers.updates)
		}
	})

	t.Run("missing teacher", func(t *testing.T) {
		f := mustFixture(t)
		course := seedCourse(f, "Compilers", 8)

		err := f.service.AssignTeacher(ctx, 999, course.ID)
		if !errors.Is(err, apperrors.ErrTeacherNotFound) {
			t.Errorf("error = %v, want ErrTeacherNotFound", err)
		}
	})

	t.Run("missing course", func(t *testing.T) {
		f := mustFixture(t)
		teacher := f.teachers.add(&models.Teacher{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.edu"})

		err := f.service.AssignTeacher(ctx, teacher.ID, 888)
		if !errors.Is(err, apperrors.ErrCourseNotFound) {
			t.Errorf("error = %v, want ErrCourseNotFound", err)
		}
	})
}

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := mustFixture(t)
		student := seedStudent(f, "Ada", "Lovelace")
		paidAt := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

		payment, err := f.service.RecordPayment(ctx, student.ID, 150.00, paidAt)
		if err != nil {
			t.Fatalf("RecordPayment() error = %v", err)
		}
		if payment.ID == 0 {
			t.Error("payment ID was not assigned from the store")
		}
		if payment.Amount != 150.00 {
			t.Errorf("amount = %v, want 150.00", payment.Amount)
		}
		if !payment.PaidAt.Equal(paidAt) {
			t.Errorf("paidAt = %v, want %v", payment.PaidAt, paidAt)
		}
		if payment.Reference == "" {
			t.Error("payment reference was not assigned")
		}

		gotStudent, _ := f.students.GetByID(ctx, student.ID)
		if len(gotStudent.Payments) != 1 {
			t.Fatalf("student payments = %d, want 1", len(gotStudent.Payments))
		}
		if gotStudent.Payments[0].ID != payment.ID {
			t.Errorf("persisted payment ID = %d, want %d", gotStudent.Payments[0].ID, payment.ID)
		}

		stored, err := f.payments.GetByID(ctx, payment.ID)
		if err != nil {
			t.Fatalf("payment lookup error = %v", err)
		}
		if stored.Amount != 150.00 {
			t.Errorf("stored amount = %v, want 150.00", stored.Amount)
		}
	})

	t.Run("missing student", func(t *testing.T) {
		f := mustFixture(t)

		_, err := f.service.RecordPayment(ctx, 999, 150.00, time.Now())
		if !errors.Is(err, apperrors.ErrStudentNotFound) {
			t.Errorf("error = %v, want ErrStudentNotFound", err)
		}
	})

	t.Run("payment create failure leaves student unchanged", func(t *testing.T) {
		f := mustFixture(t)
		student := seedStudent(f, "Ada", "Lovelace")
		f.payments.createErr = errors.New("disk full")

		_, err := f.service.RecordPayment(ctx, student.ID, 150.00, time.Now())
		if err == nil {
			t.Fatal("RecordPayment() succeeded despite create failure")
		}
		if f.students.updates != 0 {
			t.Errorf("student updates = %d, want 0", f.students.updates)
		}
	})
}

func TestStudentEnrollments(t *testing.T) {
	ctx := context.Background()
	f := mustFixture(t)
	student := seedStudent(f, "Ada", "Lovelace")
	course := seedCourse(f, "Analysis I", 6)

	if _, err := f.service.EnrollStudent(ctx, student.ID, course.ID); err != nil {
		t.Fatalf("EnrollStudent() error = %v", err)
	}

	enrollments, err := f.service.StudentEnrollments(ctx, student.ID)
	if err != nil {
		t.Fatalf("StudentEnrollments() error = %v", err)
	}
	if len(enrollments) != 1 || enrollments[0].CourseID != course.ID {
		t.Errorf("enrollments = %+v, want one for course %d", enrollments, course.ID)
	}

	if _, err := f.service.StudentEnrollments(ctx, 999); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("missing student error = %v, want ErrStudentNotFound", err)
	}
}

func TestTeacherCourses(t *testing.T) {
	ctx := context.Background()
	f := mustFixture(t)
	teacher := f.teachers.add(&models.Teacher{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.edu"})
	course := seedCourse(f, "Compilers", 8)

	if err := f.service.AssignTeacher(ctx, teacher.ID, course.ID); err != nil {
		t.Fatalf("AssignTeacher() error = %v", err)
	}

	courses, err := f.service.TeacherCourses(ctx, teacher.ID)
	if err != nil {
		t.Fatalf("TeacherCourses() error = %v", err)
	}
	if len(courses) != 1 || courses[0].ID != course.ID {
		t.Errorf("courses = %+v, want the assigned course", courses)
	}

	if _, err := f.service.TeacherCourses(ctx, 999); !errors.Is(err, apperrors.ErrTeacherNotFound) {
		t.Errorf("missing teacher error = %v, want ErrTeacherNotFound", err)
	}
}
