package models

// Course represents a course students enroll in.
type Course struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Credits   int    `json:"credits" db:"credits"` // never negative
	TeacherID *int64 `json:"teacherId,omitempty" db:"teacher_id"` // Nullable

	// Relations (populated when needed)
	Teacher     *Teacher      `json:"teacher,omitempty"`
	Enrollments []*Enrollment `json:"enrollments,omitempty"`
}
