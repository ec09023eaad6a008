// Package console provides the interactive menu front end over the
// registrar and student services.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/emre/sisgo/internal/app/models"
	"github.com/emre/sisgo/internal/app/services"
	"github.com/emre/sisgo/internal/pkg/apperrors"
)

// Menu drives the interactive console loop.
type Menu struct {
	registrar *services.RegistrarService
	students  *services.StudentService
	in        *bufio.Scanner
	out       io.Writer
}

// NewMenu creates a menu reading commands from in and writing to out.
func NewMenu(registrar *services.RegistrarService, students *services.StudentService, in io.Reader, out io.Writer) (*Menu, error) {
	if registrar == nil {
		return nil, errors.New("console: registrar service is required")
	}
	if students == nil {
		return nil, errors.New("console: student service is required")
	}
	return &Menu{
		registrar: registrar,
		students:  students,
		in:        bufio.NewScanner(in),
		out:       out,
	}, nil
}

// Run shows the menu until the user exits or input is exhausted.
func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out, "\n--- Student Information System ---")
		fmt.Fprintln(m.out, "Select an option:")
		fmt.Fprintln(m.out, "1. Enroll a Student in a Course")
		fmt.Fprintln(m.out, "2. Assign Teacher to Course")
		fmt.Fprintln(m.out, "3. Record a Payment")
		fmt.Fprintln(m.out, "4. Generate Enrollment Report")
		fmt.Fprintln(m.out, "5. Generate Payment Report")
		fmt.Fprintln(m.out, "6. Calculate Course Statistics")
		fmt.Fprintln(m.out, "7. Add New Student")
		fmt.Fprintln(m.out, "8. Exit")
		fmt.Fprint(m.out, "Enter your choice: ")

		choice, ok := m.readLine()
		if !ok {
			return nil
		}

		switch strings.TrimSpace(choice) {
		case "1":
			m.enrollStudent(ctx)
		case "2":
			m.assignTeacher(ctx)
		case "3":
			m.recordPayment(ctx)
		case "4":
			m.enrollmentReport(ctx)
		case "5":
			m.paymentReport(ctx)
		case "6":
			m.courseStatistics(ctx)
		case "7":
			m.addStudent(ctx)
		case "8":
			fmt.Fprintln(m.out, "Exiting the system...")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice, please try again.")
		}
	}
}

func (m *Menu) readLine() (string, bool) {
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}

// promptID keeps asking until the user enters a valid integer id.
func (m *Menu) promptID(label string) (int64, bool) {
	for {
		fmt.Fprintf(m.out, "Enter %s: ", label)
		line, ok := m.readLine()
		if !ok {
			return 0, false
		}
		id, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			fmt.Fprintf(m.out, "Invalid input. Please enter a valid %s.\n", label)
			continue
		}
		return id, true
	}
}

func (m *Menu) promptString(label string) (string, bool) {
	fmt.Fprintf(m.out, "Enter %s: ", label)
	line, ok := m.readLine()
	if !ok {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (m *Menu) enrollStudent(ctx context.Context) {
	fmt.Fprintln(m.out, "\n--- Enroll a Student in a Course ---")

	studentID, ok := m.promptID("Student ID")
	if !ok {
		return
	}
	courseID, ok := m.promptID("Course ID")
	if !ok {
		return
	}

	if _, err := m.registrar.EnrollStudent(ctx, studentID, courseID); err != nil {
		m.printError(err)
		return
	}
	fmt.Fprintln(m.out, "Student enrolled successfully in the course.")
}

func (m *Menu) assignTeacher(ctx context.Context) {
	fmt.Fprintln(m.out, "\n--- Assign Teacher to Course ---")

	teacherID, ok := m.promptID("Teacher ID")
	if !ok {
		return
	}
	courseID, ok := m.promptID("Course ID")
	if !ok {
		return
	}

	if err := m.registrar.AssignTeacher(ctx, teacherID, courseID); err != nil {
		m.printError(err)
		return
	}
	fmt.Fprintln(m.out, "Teacher assigned to the course successfully.")
}

func (m *Menu) recordPayment(ctx context.Context) {
	fmt.Fprintln(m.out, "\n--- Record a Payment ---")

	studentID, ok := m.promptID("Student ID")
	if !ok {
		return
	}

	amountStr, ok := m.promptString("Payment Amount")
	if !ok {
		return
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid amount.")
		return
	}

	dateStr, ok := m.promptString("Payment Date (YYYY-MM-DD)")
	if !ok {
		return
	}
	paidAt, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid date.")
		return
	}

	payment, err := m.registrar.RecordPayment(ctx, studentID, amount, paidAt)
	if err != nil {
		m.printError(err)
		return
	}
	fmt.Fprintf(m.out, "Payment recorded successfully. Reference: %s\n", payment.Reference)
}

func (m *Menu) enrollmentReport(ctx context.Context) {
	fmt.Fprintln(m.out, "\n--- Generate Enrollment Report ---")

	courseID, ok := m.promptID("Course ID")
	if !ok {
		return
	}

	report, err := m.registrar.EnrollmentReport(ctx, courseID)
	if err != nil {
		m.printError(err)
		return
	}

	fmt.Fprintf(m.out, "Enrollment Report for %s:\n", report.CourseName)
	if len(report.StudentNames) == 0 {
		fmt.Fprintln(m.out, "No students enrolled.")
		return
	}
	for _, name := range report.StudentNames {
		fmt.Fprintf(m.out, "- %s\n", name)
	}
}

func (m *Menu) paymentReport(ctx context.Context) {
	fmt.Fprintln(m.out, "\n--- Generate Payment Report ---")

	studentID, ok := m.promptID("Student ID")
	if !ok {
		return
	}

	report, err := m.registrar.PaymentReport(ctx, studentID)
	if err != nil {
		m.printError(err)
		return
	}

	fmt.Fprintf(m.out, "Payment Report for %s:\n", report.StudentName)
	if len(report.Lines) == 0 {
		fmt.Fprintln(m.out, "No payments recorded.")
		return
	}
	for _, line := range report.Lines {
		fmt.Fprintf(m.out, "- %s: %.2f\n", line.Date.Format("2006-01-02"), line.Amount)
	}
}

func (m *Menu) courseStatistics(ctx context.Context) {
	fmt.Fprintln(m.out, "\n--- Calculate Course Statistics ---")

	courseID, ok := m.promptID("Course ID")
	if !ok {
		return
	}

	stats, err := m.registrar.CourseStatistics(ctx, courseID)
	if err != nil {
		m.printError(err)
		return
	}

	fmt.Fprintf(m.out, "Statistics for %s:\n", stats.CourseName)
	fmt.Fprintf(m.out, "Enrolled students: %d\n", stats.EnrollmentCount)
	fmt.Fprintf(m.out, "Total payments: %.2f\n", stats.TotalPayments)
}

func (m *Menu) addStudent(ctx context.Context) {
	fmt.Fprintln(m.out, "\n--- Add New Student ---")

	firstName, ok := m.promptString("First Name")
	if !ok {
		return
	}
	lastName, ok := m.promptString("Last Name")
	if !ok {
		return
	}
	dobStr, ok := m.promptString("Date of Birth (YYYY-MM-DD)")
	if !ok {
		return
	}
	dob, err := time.Parse("2006-01-02", dobStr)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid date.")
		return
	}
	email, ok := m.promptString("Email")
	if !ok {
		return
	}
	phone, ok := m.promptString("Phone")
	if !ok {
		return
	}

	student := &models.Student{
		FirstName:   firstName,
		LastName:    lastName,
		DateOfBirth: dob,
		Email:       email,
		Phone:       phone,
	}

	id, err := m.students.CreateStudent(ctx, student)
	if err != nil {
		m.printError(err)
		return
	}
	fmt.Fprintf(m.out, "New student added successfully. Student ID: %d\n", id)

	fmt.Fprintln(m.out, "Do you want to enroll this student in courses? (Y/N)")
	answer, ok := m.readLine()
	if !ok || strings.ToUpper(strings.TrimSpace(answer)) != "Y" {
		return
	}
	m.enrollInMultipleCourses(ctx, id)
}

func (m *Menu) enrollInMultipleCourses(ctx context.Context, studentID int64) {
	for {
		courseID, ok := m.promptID("Course ID to enroll (or 0 to finish)")
		if !ok || courseID == 0 {
			return
		}

		if _, err := m.registrar.EnrollStudent(ctx, studentID, courseID); err != nil {
			m.printError(err)
			continue
		}
		fmt.Fprintln(m.out, "Student enrolled successfully in the course.")
	}
}

// printError translates the service error taxonomy into user-facing messages.
func (m *Menu) printError(err error) {
	switch {
	case errors.Is(err, apperrors.ErrStudentNotFound):
		fmt.Fprintln(m.out, "Student not found.")
	case errors.Is(err, apperrors.ErrCourseNotFound):
		fmt.Fprintln(m.out, "Course not found.")
	case errors.Is(err, apperrors.ErrTeacherNotFound):
		fmt.Fprintln(m.out, "Teacher not found.")
	case errors.Is(err, apperrors.ErrDuplicateEnrollment):
		fmt.Fprintln(m.out, "Student is already enrolled in this course.")
	case apperrors.Is(err, apperrors.ErrBadRequest,
		apperrors.ErrInvalidStudentData,
		apperrors.ErrInvalidTeacherData,
		apperrors.ErrInvalidCourseData,
		apperrors.ErrInvalidEnrollmentData,
		apperrors.ErrInvalidPaymentData):
		fmt.Fprintf(m.out, "Invalid data: %v\n", err)
	default:
		fmt.Fprintf(m.out, "Error: %v\n", err)
	}
}
