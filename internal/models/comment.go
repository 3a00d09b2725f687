package models

import "time"

// Comment is an append-only feedback entry attached to a task.
// SupervisorID is nil for system-generated comments (e.g. the
// auto-logged rating summary written on approval).
type Comment struct {
	ID           int64     `json:"id"`
	TaskID       int64     `json:"task_id"`
	SupervisorID *int64    `json:"supervisor_id,omitempty"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}
