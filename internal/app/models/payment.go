package models

import "time"

// Payment represents a tuition payment made by a student.
type Payment struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	Reference string    `json:"reference" db:"reference"` // receipt reference, uuid
	Amount    float64   `json:"amount" db:"amount"`
	PaidAt    time.Time `json:"paidAt" db:"paid_at"`
}
