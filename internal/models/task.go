package models

import (
	"fmt"
	"time"
)

// TaskStatus defines the possible statuses for a task.
type TaskStatus string

const (
	StatusPending   TaskStatus = "PENDING"
	StatusSubmitted TaskStatus = "SUBMITTED"
	StatusApproved  TaskStatus = "APPROVED"
	StatusRejected  TaskStatus = "REJECTED"
	StatusCompleted TaskStatus = "COMPLETED"
)

// ParseTaskStatus validates a status value coming from the outside.
// Unknown strings are rejected instead of being stored verbatim.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case StatusPending, StatusSubmitted, StatusApproved, StatusRejected, StatusCompleted:
		return TaskStatus(s), nil
	}
	return "", fmt.Errorf("unknown task status %q", s)
}

// Task represents one unit of trackable work assigned to a student:
// a daily log, a weekly log or an assigned deliverable.
type Task struct {
	ID          int64  `json:"id"`
	StudentID   int64  `json:"student_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	// EstimatedHours is optional metadata, 0 means "not set".
	EstimatedHours int `json:"estimated_hours,omitempty"`

	Status TaskStatus `json:"status"`

	// Submission fields are set once the task has visited SUBMITTED
	// and are overwritten on resubmission.
	SubmissionContent *string    `json:"submission_content,omitempty"`
	SubmittedAt       *time.Time `json:"submitted_at,omitempty"`

	// Rating is 1..5 and only present once the task is APPROVED.
	Rating *int `json:"rating,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TaskFilter defines the available parameters for filtering task lists.
type TaskFilter struct {
	StudentID    *int64
	SupervisorID *int64 // user id of the supervisor; matches tasks of assigned students
	Statuses     []TaskStatus
	Limit        int
}

// TaskDetail is a task enriched with its comments (oldest first) for
// the review list endpoints.
type TaskDetail struct {
	Task
	Comments []Comment `json:"comments"`
}
