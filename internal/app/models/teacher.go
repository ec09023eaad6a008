package models

// Teacher defines the teacher model based on the 'teachers' table
type Teacher struct {
	ID        int64  `json:"id" db:"id" example:"1"`
	FirstName string `json:"firstName" db:"first_name" example:"Grace"`
	LastName  string `json:"lastName" db:"last_name" example:"Hopper"`
	Email     string `json:"email" db:"email" example:"grace@example.edu"`

	// Courses currently assigned to this teacher (populated on aggregate load)
	Courses []*Course `json:"courses,omitempty"`
}

// FullName returns the teacher's display name.
func (t *Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}
