package services

import (
	"context"

	"internhub/internal/models"
	"internhub/internal/repositories"
)

// ReviewService is the read side of the workflow: task lists for a
// student or a supervisor, each task enriched with its comments
// (oldest first), filterable by status and ordered by most recent
// activity.
type ReviewService interface {
	ListForStudent(ctx context.Context, studentID int64, statuses []models.TaskStatus, limit int) ([]models.TaskDetail, error)
	ListForSupervisor(ctx context.Context, supervisorID int64, statuses []models.TaskStatus, limit int) ([]models.TaskDetail, error)
}

type reviewService struct {
	tasks    repositories.TaskRepository
	comments repositories.CommentRepository
}

func NewReviewService(tasks repositories.TaskRepository, comments repositories.CommentRepository) ReviewService {
	return &reviewService{tasks: tasks, comments: comments}
}

func (s *reviewService) ListForStudent(ctx context.Context, studentID int64, statuses []models.TaskStatus, limit int) ([]models.TaskDetail, error) {
	return s.list(ctx, models.TaskFilter{StudentID: &studentID, Statuses: statuses, Limit: limit})
}

// ListForSupervisor returns the union of tasks across the supervisor's
// currently assigned students. Students assigned to someone else never
// show up here: the filter joins on the live assignment.
func (s *reviewService) ListForSupervisor(ctx context.Context, supervisorID int64, statuses []models.TaskStatus, limit int) ([]models.TaskDetail, error) {
	return s.list(ctx, models.TaskFilter{SupervisorID: &supervisorID, Statuses: statuses, Limit: limit})
}

func (s *reviewService) list(ctx context.Context, filter models.TaskFilter) ([]models.TaskDetail, error) {
	tasks, err := s.tasks.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return []models.TaskDetail{}, nil
	}

	ids := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	comments, err := s.comments.ListByTasks(ctx, ids)
	if err != nil {
		return nil, err
	}
	byTask := make(map[int64][]models.Comment, len(tasks))
	for _, c := range comments {
		byTask[c.TaskID] = append(byTask[c.TaskID], c)
	}

	details := make([]models.TaskDetail, 0, len(tasks))
	for _, t := range tasks {
		details = append(details, models.TaskDetail{Task: t, Comments: byTask[t.ID]})
	}
	return details, nil
}
