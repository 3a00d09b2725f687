package models

import "time"

// LogEntry is a free-form daily log line kept by a student,
// separate from the reviewed task workflow.
type LogEntry struct {
	ID        int64     `json:"id"`
	StudentID int64     `json:"student_id"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}
