package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"internhub/internal/authz"
	"internhub/internal/models"
	"internhub/internal/repositories"
)

// TaskService is the task lifecycle engine: it authorizes the actor,
// validates the requested transition against the current persisted
// state and applies it as one conditional write.
type TaskService interface {
	Create(ctx context.Context, actor models.Actor, studentID int64, title, description, category string, estimatedHours int) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.TaskDetail, error)

	Submit(ctx context.Context, id int64, actor models.Actor, content string) (*models.Task, error)
	Review(ctx context.Context, id int64, actor models.Actor, decision models.TaskStatus, rating *int, comment string) (*models.Task, error)
	Complete(ctx context.Context, id int64, actor models.Actor) (*models.Task, error)
	AddComment(ctx context.Context, id int64, actor models.Actor, content string) (*models.Comment, error)
}

type taskService struct {
	tasks    repositories.TaskRepository
	comments repositories.CommentRepository
	students repositories.StudentRepository
	sinks    []ActivitySink
}

// NewTaskService creates the lifecycle engine. Sinks are optional;
// each one is invoked after every committed transition.
func NewTaskService(
	tasks repositories.TaskRepository,
	comments repositories.CommentRepository,
	students repositories.StudentRepository,
	sinks ...ActivitySink,
) TaskService {
	return &taskService{tasks: tasks, comments: comments, students: students, sinks: sinks}
}

func (s *taskService) Create(ctx context.Context, actor models.Actor, studentID int64, title, description, category string, estimatedHours int) (*models.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	student, err := s.students.FindByID(studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, fmt.Errorf("%w: student %d", ErrNotFound, studentID)
	}

	switch actor.RoleID {
	case authz.RoleStudent:
		if student.UserID != actor.UserID {
			return nil, fmt.Errorf("%w: students may only create their own tasks", ErrPermissionDenied)
		}
	case authz.RoleSupervisor:
		if student.SupervisorID == nil || *student.SupervisorID != actor.UserID {
			return nil, fmt.Errorf("%w: student %d is not assigned to you", ErrPermissionDenied, studentID)
		}
	case authz.RoleAdmin:
		// admins may seed tasks for any student
	default:
		return nil, fmt.Errorf("%w: unknown role %d", ErrPermissionDenied, actor.RoleID)
	}

	now := time.Now()
	task := &models.Task{
		StudentID:      studentID,
		Title:          title,
		Description:    description,
		Category:       category,
		EstimatedHours: estimatedHours,
		Status:         models.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.tasks.Store(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*models.TaskDetail, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("%w: task %d", ErrNotFound, id)
	}
	comments, err := s.comments.ListByTask(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.TaskDetail{Task: *task, Comments: comments}, nil
}

// Submit moves a PENDING or REJECTED task to SUBMITTED, attaching the
// student's content. Resubmission overwrites the previous content.
func (s *taskService) Submit(ctx context.Context, id int64, actor models.Actor, content string) (*models.Task, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: submission content is required", ErrValidation)
	}

	task, own, err := s.loadWithOwnership(ctx, id)
	if err != nil {
		return nil, err
	}

	actorStudentID, err := s.actorStudentID(actor)
	if err != nil {
		return nil, err
	}
	if !authz.CanTransition(actor.RoleID, actorStudentID, actor.UserID, own, task.Status, models.StatusSubmitted) {
		return nil, fmt.Errorf("%w: cannot submit task %d", ErrPermissionDenied, id)
	}
	if !canTransition(task.Status, models.StatusSubmitted) {
		return nil, fmt.Errorf("%w: task is %s", ErrStaleState, task.Status)
	}

	now := time.Now()
	ok, err := s.tasks.SubmitIf(ctx, id, task.Status, content, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// lost the race against a concurrent transition
		return nil, fmt.Errorf("%w: task is no longer %s", ErrStaleState, task.Status)
	}

	updated, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, TransitionEvent{
		TaskID: id, TaskTitle: task.Title, StudentID: task.StudentID,
		ActorID: actor.UserID, From: task.Status, To: models.StatusSubmitted, At: now,
	})
	return updated, nil
}

// Review applies a supervisor decision to a SUBMITTED task. An optional
// rating (1..5, APPROVED only) lands in the same conditional write as
// the status; an optional comment is appended afterwards.
func (s *taskService) Review(ctx context.Context, id int64, actor models.Actor, decision models.TaskStatus, rating *int, comment string) (*models.Task, error) {
	if decision != models.StatusApproved && decision != models.StatusRejected {
		return nil, fmt.Errorf("%w: decision must be %s or %s", ErrValidation, models.StatusApproved, models.StatusRejected)
	}
	if rating != nil {
		if decision != models.StatusApproved {
			return nil, fmt.Errorf("%w: rating is only allowed when approving", ErrValidation)
		}
		if *rating < 1 || *rating > 5 {
			return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
		}
	}

	task, own, err := s.loadWithOwnership(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanTransition(actor.RoleID, 0, actor.UserID, own, task.Status, decision) {
		return nil, fmt.Errorf("%w: cannot review task %d", ErrPermissionDenied, id)
	}
	if !canTransition(task.Status, decision) {
		return nil, fmt.Errorf("%w: task is %s, not %s", ErrStaleState, task.Status, models.StatusSubmitted)
	}

	now := time.Now()
	ok, err := s.tasks.ReviewIf(ctx, id, task.Status, decision, rating, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: task is no longer %s", ErrStaleState, models.StatusSubmitted)
	}

	// feedback rides alongside the committed transition; a failure here
	// must not make the transition look failed
	if rating != nil || strings.TrimSpace(comment) != "" {
		content := s.reviewCommentText(decision, rating, comment)
		supID := actor.UserID
		c := &models.Comment{TaskID: id, SupervisorID: &supID, Content: content, CreatedAt: now}
		if err := s.comments.Store(ctx, c); err != nil {
			log.Printf("[task][review] warning: failed to store review comment for task=%d: %v", id, err)
		}
	}

	updated, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, TransitionEvent{
		TaskID: id, TaskTitle: task.Title, StudentID: task.StudentID,
		ActorID: actor.UserID, From: task.Status, To: decision, At: now,
	})
	return updated, nil
}

// Complete closes a SUBMITTED or APPROVED task. Completing an already
// COMPLETED task is a no-op returning the task unchanged.
func (s *taskService) Complete(ctx context.Context, id int64, actor models.Actor) (*models.Task, error) {
	task, own, err := s.loadWithOwnership(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanTransition(actor.RoleID, 0, actor.UserID, own, task.Status, models.StatusCompleted) {
		return nil, fmt.Errorf("%w: cannot complete task %d", ErrPermissionDenied, id)
	}
	if task.Status == models.StatusCompleted {
		return task, nil
	}
	if !canTransition(task.Status, models.StatusCompleted) {
		return nil, fmt.Errorf("%w: task is %s", ErrStaleState, task.Status)
	}

	now := time.Now()
	ok, err := s.tasks.CompleteIf(ctx, id, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// either a concurrent completion won (fine) or the task moved
		current, ferr := s.tasks.FindByID(ctx, id)
		if ferr != nil {
			return nil, ferr
		}
		if current == nil {
			return nil, fmt.Errorf("%w: task %d", ErrNotFound, id)
		}
		if current.Status == models.StatusCompleted {
			return current, nil
		}
		return nil, fmt.Errorf("%w: task is %s", ErrStaleState, current.Status)
	}

	updated, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, TransitionEvent{
		TaskID: id, TaskTitle: task.Title, StudentID: task.StudentID,
		ActorID: actor.UserID, From: task.Status, To: models.StatusCompleted, At: now,
	})
	return updated, nil
}

// AddComment appends standalone supervisor feedback without touching
// the task status. Comments are never edited or deleted.
func (s *taskService) AddComment(ctx context.Context, id int64, actor models.Actor, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: comment content is required", ErrValidation)
	}

	_, own, err := s.loadWithOwnership(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.RoleID != authz.RoleSupervisor || own.SupervisorID == 0 || own.SupervisorID != actor.UserID {
		return nil, fmt.Errorf("%w: only the assigned supervisor may comment", ErrPermissionDenied)
	}

	supID := actor.UserID
	c := &models.Comment{TaskID: id, SupervisorID: &supID, Content: content, CreatedAt: time.Now()}
	if err := s.comments.Store(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *taskService) loadWithOwnership(ctx context.Context, id int64) (*models.Task, authz.TaskOwnership, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, authz.TaskOwnership{}, err
	}
	if task == nil {
		return nil, authz.TaskOwnership{}, fmt.Errorf("%w: task %d", ErrNotFound, id)
	}
	student, err := s.students.FindByID(task.StudentID)
	if err != nil {
		return nil, authz.TaskOwnership{}, err
	}
	own := authz.TaskOwnership{StudentID: task.StudentID}
	if student != nil && student.SupervisorID != nil {
		own.SupervisorID = *student.SupervisorID
	}
	return task, own, nil
}

func (s *taskService) actorStudentID(actor models.Actor) (int64, error) {
	if actor.RoleID != authz.RoleStudent {
		return 0, nil
	}
	student, err := s.students.FindByUserID(actor.UserID)
	if err != nil {
		return 0, err
	}
	if student == nil {
		return 0, nil
	}
	return student.ID, nil
}

func (s *taskService) reviewCommentText(decision models.TaskStatus, rating *int, comment string) string {
	var b strings.Builder
	if rating != nil {
		fmt.Fprintf(&b, "Rating: %d/5", *rating)
	}
	if strings.TrimSpace(comment) != "" {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		if decision == models.StatusApproved && rating != nil {
			b.WriteString("Feedback: ")
		}
		b.WriteString(comment)
	}
	return b.String()
}

// emit fans a committed transition out to the sinks. Sink failures are
// logged and swallowed: the transition is already durable.
func (s *taskService) emit(ctx context.Context, ev TransitionEvent) {
	for _, sink := range s.sinks {
		if err := sink.TaskTransitioned(ctx, ev); err != nil {
			log.Printf("[task][hook] warning: sink %T failed for task=%d %s->%s: %v",
				sink, ev.TaskID, ev.From, ev.To, err)
		}
	}
}
