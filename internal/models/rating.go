package models

import "time"

// Rating is a supervisor's standing evaluation of one student.
// At most one row exists per (student, supervisor) pair; re-rating
// updates the row in place.
type Rating struct {
	ID           int64     `json:"id"`
	StudentID    int64     `json:"student_id"`
	SupervisorID int64     `json:"supervisor_id"`
	Value        int       `json:"rating"` // 1..5
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
