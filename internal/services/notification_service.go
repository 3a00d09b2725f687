package services

import (
	"context"
	"fmt"

	"internhub/internal/models"
	"internhub/internal/repositories"
)

// NotificationService exposes the in-app notification list.
type NotificationService struct {
	repo repositories.NotificationRepository
}

func NewNotificationService(repo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) ListForUser(userID int64) ([]*models.Notification, error) {
	return s.repo.ListByUser(userID)
}

// MarkRead flips the read flag on one of the user's own notifications;
// false means the id does not exist or belongs to someone else.
func (s *NotificationService) MarkRead(id, userID int64, read bool) (bool, error) {
	return s.repo.MarkRead(id, userID, read)
}

func (s *NotificationService) MarkAllRead(userID int64) error {
	return s.repo.MarkAllRead(userID)
}

func (s *NotificationService) Delete(id, userID int64) (bool, error) {
	return s.repo.Delete(id, userID)
}

func (s *NotificationService) DeleteAllForUser(userID int64) error {
	return s.repo.DeleteAllForUser(userID)
}

// NotificationSink persists a notification row for the counterparty of
// every task transition: the supervisor hears about submissions, the
// student hears about review outcomes.
type NotificationSink struct {
	notifications repositories.NotificationRepository
	students      repositories.StudentRepository
}

func NewNotificationSink(notifications repositories.NotificationRepository, students repositories.StudentRepository) *NotificationSink {
	return &NotificationSink{notifications: notifications, students: students}
}

func (s *NotificationSink) TaskTransitioned(ctx context.Context, ev TransitionEvent) error {
	userID, err := transitionRecipient(s.students, ev)
	if err != nil {
		return err
	}
	if userID == 0 {
		return nil
	}
	n := &models.Notification{UserID: userID, Message: transitionMessage(ev)}
	return s.notifications.Create(n)
}

// transitionRecipient picks who should hear about the event: the
// assigned supervisor for submissions, the owning student's user for
// review and completion.
func transitionRecipient(students repositories.StudentRepository, ev TransitionEvent) (int64, error) {
	student, err := students.FindByID(ev.StudentID)
	if err != nil {
		return 0, err
	}
	if student == nil {
		return 0, nil
	}
	if ev.To == models.StatusSubmitted {
		if student.SupervisorID == nil {
			return 0, nil
		}
		return *student.SupervisorID, nil
	}
	return student.UserID, nil
}

func transitionMessage(ev TransitionEvent) string {
	switch ev.To {
	case models.StatusSubmitted:
		return fmt.Sprintf("Task %q was submitted for review", ev.TaskTitle)
	case models.StatusApproved:
		return fmt.Sprintf("Task %q was approved", ev.TaskTitle)
	case models.StatusRejected:
		return fmt.Sprintf("Task %q was sent back for rework", ev.TaskTitle)
	case models.StatusCompleted:
		return fmt.Sprintf("Task %q was marked completed", ev.TaskTitle)
	}
	return fmt.Sprintf("Task %q moved from %s to %s", ev.TaskTitle, ev.From, ev.To)
}
