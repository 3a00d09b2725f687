package models

import "time"

// Student is the internship profile of a user with the student role.
// SupervisorID points at the users row of the currently assigned
// supervisor; nil while the student is unassigned.
type Student struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	SupervisorID *int64     `json:"supervisor_id,omitempty"`
	Institution  string     `json:"institution,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
