package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	FirstName   string    `json:"firstName" db:"first_name" example:"Ada"`
	LastName    string    `json:"lastName" db:"last_name" example:"Lovelace"`
	DateOfBirth time.Time `json:"dateOfBirth" db:"date_of_birth"`
	Email       string    `json:"email" db:"email" example:"ada@example.edu"`
	Phone       string    `json:"phone" db:"phone" example:"+90 555 000 0000"`

	// Owned collections (populated on aggregate load, store order)
	Enrollments []*Enrollment `json:"enrollments,omitempty"`
	Payments    []*Payment    `json:"payments,omitempty"`
}

// FullName returns the student's display name.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
