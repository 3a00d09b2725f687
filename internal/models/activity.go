package models

import "time"

// Activity feed item kinds.
const (
	ActivityTaskSubmission = "TASK_SUBMISSION"
	ActivityRating         = "RATING"
)

// ActivityItem is a tagged variant over recent task submissions and
// ratings, merged and sorted by Date for the admin feed.
type ActivityItem struct {
	Type        string     `json:"type"`
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	User        string     `json:"user"`
	Target      string     `json:"target,omitempty"` // rated student, RATING items only
	Status      TaskStatus `json:"status,omitempty"` // TASK_SUBMISSION items only
	Date        time.Time  `json:"date"`
}
