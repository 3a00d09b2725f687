package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"internhub/internal/models"
)

// In-memory repositories mimicking the Postgres conditional-update
// semantics, guarded by a mutex so concurrent transition races behave
// like single atomic UPDATEs.

type fakeStudentRepo struct {
	mu       sync.Mutex
	nextID   int64
	students map[int64]models.Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{nextID: 1, students: map[int64]models.Student{}}
}

func (r *fakeStudentRepo) Create(s *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.nextID
	r.nextID++
	s.CreatedAt = time.Now()
	r.students[s.ID] = *s
	return nil
}

func (r *fakeStudentRepo) FindByID(id int64) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return nil, nil
	}
	cp := s
	return &cp, nil
}

func (r *fakeStudentRepo) FindByUserID(userID int64) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.UserID == userID {
			cp := s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeStudentRepo) ListBySupervisor(supervisorID int64) ([]*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Student
	for _, s := range r.students {
		if s.SupervisorID != nil && *s.SupervisorID == supervisorID {
			cp := s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeStudentRepo) List(limit, offset int) ([]*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Student
	for _, s := range r.students {
		cp := s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeStudentRepo) UpdateSupervisor(studentID int64, supervisorID *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[studentID]
	if !ok {
		return errors.New("student not found")
	}
	s.SupervisorID = supervisorID
	r.students[studentID] = s
	return nil
}

type fakeTaskRepo struct {
	mu       sync.Mutex
	nextID   int64
	tasks    map[int64]models.Task
	students *fakeStudentRepo
}

func newFakeTaskRepo(students *fakeStudentRepo) *fakeTaskRepo {
	return &fakeTaskRepo{nextID: 1, tasks: map[int64]models.Task{}, students: students}
}

func (r *fakeTaskRepo) Store(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task.ID = r.nextID
	r.nextID++
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := t
	return &cp, nil
}

func (r *fakeTaskRepo) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Task
	for _, t := range r.tasks {
		if filter.StudentID != nil && t.StudentID != *filter.StudentID {
			continue
		}
		if filter.SupervisorID != nil {
			s, ok := r.students.students[t.StudentID]
			if !ok || s.SupervisorID == nil || *s.SupervisorID != *filter.SupervisorID {
				continue
			}
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, st := range filter.Statuses {
				if t.Status == st {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeTaskRepo) FindRecent(ctx context.Context, limit int) ([]models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Task
	for _, t := range r.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeTaskRepo) SubmitIf(ctx context.Context, id int64, from models.TaskStatus, content string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok || t.Status != from {
		return false, nil
	}
	t.Status = models.StatusSubmitted
	t.SubmissionContent = &content
	t.SubmittedAt = &at
	t.UpdatedAt = at
	r.tasks[id] = t
	return true, nil
}

func (r *fakeTaskRepo) ReviewIf(ctx context.Context, id int64, from, to models.TaskStatus, rating *int, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok || t.Status != from {
		return false, nil
	}
	t.Status = to
	if rating != nil {
		v := *rating
		t.Rating = &v
	}
	t.UpdatedAt = at
	r.tasks[id] = t
	return true, nil
}

func (r *fakeTaskRepo) CompleteIf(ctx context.Context, id int64, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok || (t.Status != models.StatusSubmitted && t.Status != models.StatusApproved) {
		return false, nil
	}
	t.Status = models.StatusCompleted
	t.CompletedAt = &at
	t.UpdatedAt = at
	r.tasks[id] = t
	return true, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	nextID   int64
	comments []models.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{nextID: 1}
}

func (r *fakeCommentRepo) Store(ctx context.Context, c *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.nextID
	r.nextID++
	r.comments = append(r.comments, *c)
	return nil
}

func (r *fakeCommentRepo) ListByTask(ctx context.Context, taskID int64) ([]models.Comment, error) {
	return r.ListByTasks(ctx, []int64{taskID})
}

func (r *fakeCommentRepo) ListByTasks(ctx context.Context, taskIDs []int64) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := map[int64]bool{}
	for _, id := range taskIDs {
		want[id] = true
	}
	var out []models.Comment
	for _, c := range r.comments {
		if want[c.TaskID] {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

type fakeRatingRepo struct {
	mu      sync.Mutex
	nextID  int64
	ratings map[[2]int64]models.Rating // keyed by (student, supervisor)
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{nextID: 1, ratings: map[[2]int64]models.Rating{}}
}

func (r *fakeRatingRepo) Upsert(ctx context.Context, rating *models.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]int64{rating.StudentID, rating.SupervisorID}
	now := time.Now()
	if existing, ok := r.ratings[key]; ok {
		existing.Value = rating.Value
		existing.Comment = rating.Comment
		existing.UpdatedAt = now
		r.ratings[key] = existing
		*rating = existing
		return nil
	}
	rating.ID = r.nextID
	r.nextID++
	rating.CreatedAt = now
	rating.UpdatedAt = now
	r.ratings[key] = *rating
	return nil
}

func (r *fakeRatingRepo) FindByStudent(ctx context.Context, studentID int64) ([]models.Rating, error) {
	return r.filter(func(rt models.Rating) bool { return rt.StudentID == studentID }), nil
}

func (r *fakeRatingRepo) FindBySupervisor(ctx context.Context, supervisorID int64) ([]models.Rating, error) {
	return r.filter(func(rt models.Rating) bool { return rt.SupervisorID == supervisorID }), nil
}

func (r *fakeRatingRepo) FindRecent(ctx context.Context, limit int) ([]models.Rating, error) {
	out := r.filter(func(models.Rating) bool { return true })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRatingRepo) filter(keep func(models.Rating) bool) []models.Rating {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Rating
	for _, rt := range r.ratings {
		if keep(rt) {
			out = append(out, rt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int64]models.User{}}
}

func (r *fakeUserRepo) Create(u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == 0 {
		u.ID = r.nextID
		r.nextID++
	} else if u.ID >= r.nextID {
		r.nextID = u.ID + 1
	}
	u.CreatedAt = time.Now()
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByInviteToken(token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.InviteToken != nil && *u.InviteToken == token {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, u := range r.users {
		cp := u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) CompleteProfile(userID int64, passwordHash, fullName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	u.PasswordHash = passwordHash
	if fullName != "" {
		u.FullName = fullName
	}
	u.InviteToken = nil
	r.users[userID] = u
	return nil
}

func (r *fakeUserRepo) UpdateTelegramChatID(userID int64, chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	u.TelegramChatID = chatID
	r.users[userID] = u
	return nil
}

// recordingSink captures every event the engine emits.
type recordingSink struct {
	mu     sync.Mutex
	events []TransitionEvent
}

func (s *recordingSink) TaskTransitioned(ctx context.Context, ev TransitionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *recordingSink) all() []TransitionEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]TransitionEvent(nil), s.events...)
}

// failingSink always errors, to prove sink failures never surface.
type failingSink struct{}

func (failingSink) TaskTransitioned(ctx context.Context, ev TransitionEvent) error {
	return errors.New("downstream notifier unavailable")
}
