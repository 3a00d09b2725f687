package services

import (
	"context"
	"fmt"
	"sort"

	"internhub/internal/models"
	"internhub/internal/repositories"
)

// ActivityService builds the admin activity feed: recent task
// submissions and standing ratings merged into one tagged stream
// ordered by date descending.
type ActivityService struct {
	tasks    repositories.TaskRepository
	ratings  repositories.RatingRepository
	students repositories.StudentRepository
	users    repositories.UserRepository
}

func NewActivityService(
	tasks repositories.TaskRepository,
	ratings repositories.RatingRepository,
	students repositories.StudentRepository,
	users repositories.UserRepository,
) *ActivityService {
	return &ActivityService{tasks: tasks, ratings: ratings, students: students, users: users}
}

func (s *ActivityService) Recent(ctx context.Context, limit int) ([]models.ActivityItem, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	tasks, err := s.tasks.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratings.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	names := map[int64]string{}
	studentUsers := map[int64]int64{} // student id -> user id, 0 when unknown
	items := make([]models.ActivityItem, 0, len(tasks)+len(ratings))

	for _, t := range tasks {
		items = append(items, models.ActivityItem{
			Type:        models.ActivityTaskSubmission,
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			User:        s.studentName(names, studentUsers, t.StudentID),
			Status:      t.Status,
			Date:        t.CreatedAt,
		})
	}
	for _, r := range ratings {
		items = append(items, models.ActivityItem{
			Type:   models.ActivityRating,
			ID:     r.ID,
			Title:  fmt.Sprintf("Rated %d/5", r.Value),
			User:   s.userName(names, r.SupervisorID),
			Target: s.studentName(names, studentUsers, r.StudentID),
			Date:   r.CreatedAt,
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *ActivityService) studentName(cache map[int64]string, studentUsers map[int64]int64, studentID int64) string {
	userID, ok := studentUsers[studentID]
	if !ok {
		student, err := s.students.FindByID(studentID)
		if err != nil || student == nil {
			studentUsers[studentID] = 0
			return ""
		}
		userID = student.UserID
		studentUsers[studentID] = userID
	}
	if userID == 0 {
		return ""
	}
	return s.userName(cache, userID)
}

func (s *ActivityService) userName(cache map[int64]string, userID int64) string {
	if name, ok := cache[userID]; ok {
		return name
	}
	user, err := s.users.GetByID(userID)
	if err != nil || user == nil {
		return ""
	}
	cache[userID] = user.FullName
	return user.FullName
}
