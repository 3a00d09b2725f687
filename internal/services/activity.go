package services

import (
	"context"
	"time"

	"internhub/internal/models"
)

// TransitionEvent is the payload handed to activity sinks after every
// successful task transition. Sinks never see failed attempts.
type TransitionEvent struct {
	TaskID    int64
	TaskTitle string
	StudentID int64 // student profile owning the task
	ActorID   int64 // user id of whoever drove the transition
	From      models.TaskStatus
	To        models.TaskStatus
	At        time.Time
}

// ActivitySink receives transition events. Delivery is best-effort:
// the engine logs sink errors and never rolls back the committed
// transition because of them.
type ActivitySink interface {
	TaskTransitioned(ctx context.Context, ev TransitionEvent) error
}
