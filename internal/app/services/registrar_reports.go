package services

import (
	"context"
	"fmt"
	"time"

	"github.com/emre/sisgo/internal/app/models"
)

// EnrollmentReport lists the students enrolled in a course, one line per
// enrollment, in the order the course's enrollment collection holds them.
type EnrollmentReport struct {
	CourseID     int64    `json:"courseId"`
	CourseName   string   `json:"courseName"`
	StudentNames []string `json:"studentNames"`
}

// PaymentLine is one payment entry in a student's payment report.
type PaymentLine struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// PaymentReport lists a student's payments in store order.
type PaymentReport struct {
	StudentID   int64         `json:"studentId"`
	StudentName string        `json:"studentName"`
	Lines       []PaymentLine `json:"lines"`
}

// CourseStatistics aggregates a course's enrollment count and the total
// payments across its enrolled students.
type CourseStatistics struct {
	CourseID        int64   `json:"courseId"`
	CourseName      string  `json:"courseName"`
	EnrollmentCount int     `json:"enrollmentCount"`
	TotalPayments   float64 `json:"totalPayments"`
}

// EnrollmentReport builds the enrollment report for a course. A course with
// no enrollments produces an empty report, not an error.
func (s *RegistrarService) EnrollmentReport(ctx context.Context, courseID int64) (*EnrollmentReport, error) {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	report := &EnrollmentReport{
		CourseID:     course.ID,
		CourseName:   course.Name,
		StudentNames: []string{},
	}

	for _, enrollment := range course.Enrollments {
		student, err := s.resolveEnrolledStudent(ctx, enrollment)
		if err != nil {
			return nil, err
		}
		report.StudentNames = append(report.StudentNames, student.FullName())
	}

	return report, nil
}

// PaymentReport builds the payment report for a student, iterating the
// student's payment collection in order.
func (s *RegistrarService) PaymentReport(ctx context.Context, studentID int64) (*PaymentReport, error) {
	student, err := s.getStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	report := &PaymentReport{
		StudentID:   student.ID,
		StudentName: student.FullName(),
		Lines:       []PaymentLine{},
	}

	for _, payment := range student.Payments {
		report.Lines = append(report.Lines, PaymentLine{
			Date:   payment.PaidAt,
			Amount: payment.Amount,
		})
	}

	return report, nil
}

// CourseStatistics counts a course's enrollments and totals each enrolled
// student's entire payment history. The total deliberately covers all of a
// student's payments, not only payments attributable to this course.
func (s *RegistrarService) CourseStatistics(ctx context.Context, courseID int64) (*CourseStatistics, error) {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	stats := &CourseStatistics{
		CourseID:        course.ID,
		CourseName:      course.Name,
		EnrollmentCount: len(course.Enrollments),
	}

	for _, enrollment := range course.Enrollments {
		student, err := s.resolveEnrolledStudent(ctx, enrollment)
		if err != nil {
			return nil, err
		}
		for _, payment := range student.Payments {
			stats.TotalPayments += payment.Amount
		}
	}

	return stats, nil
}

// resolveEnrolledStudent returns the student referenced by an enrollment,
// fetching and caching it on the enrollment if not already populated.
func (s *RegistrarService) resolveEnrolledStudent(ctx context.Context, enrollment *models.Enrollment) (*models.Student, error) {
	if enrollment.Student != nil {
		return enrollment.Student, nil
	}

	student, err := s.getStudent(ctx, enrollment.StudentID)
	if err != nil {
		// An enrollment referencing a vanished student is a data integrity
		// problem, not a caller mistake.
		return nil, fmt.Errorf("enrollment %d references missing student %d: %w",
			enrollment.ID, enrollment.StudentID, err)
	}

	enrollment.Student = student
	return student, nil
}
