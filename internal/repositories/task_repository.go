package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"internhub/internal/models"

	"github.com/lib/pq"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	FindRecent(ctx context.Context, limit int) ([]models.Task, error)

	// Conditional transition writes. Each is a single UPDATE guarded by
	// the expected current status; false means zero rows were affected
	// (row gone or status moved underneath the caller).
	SubmitIf(ctx context.Context, id int64, from models.TaskStatus, content string, at time.Time) (bool, error)
	ReviewIf(ctx context.Context, id int64, from, to models.TaskStatus, rating *int, at time.Time) (bool, error)
	CompleteIf(ctx context.Context, id int64, at time.Time) (bool, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, student_id, title, description, category, estimated_hours,
       status, submission_content, submitted_at, rating, created_at, updated_at, completed_at`

func scanTask(row interface{ Scan(...interface{}) error }, t *models.Task) error {
	return row.Scan(
		&t.ID, &t.StudentID, &t.Title, &t.Description, &t.Category, &t.EstimatedHours,
		&t.Status, &t.SubmissionContent, &t.SubmittedAt, &t.Rating,
		&t.CreatedAt, &t.UpdatedAt, &t.CompletedAt,
	)
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (
			student_id, title, description, category, estimated_hours,
			status, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		task.StudentID, task.Title, task.Description, task.Category, task.EstimatedHours,
		task.Status, task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task := &models.Task{}
	err := scanTask(r.db.QueryRowContext(ctx, query, id), task)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT t.id, t.student_id, t.title, t.description, t.category, t.estimated_hours,
       t.status, t.submission_content, t.submitted_at, t.rating, t.created_at, t.updated_at, t.completed_at
       FROM tasks t`

	conditions := []string{}
	args := []interface{}{}
	argID := 1

	if filter.SupervisorID != nil {
		baseQuery += ` JOIN students s ON s.id = t.student_id`
		conditions = append(conditions, fmt.Sprintf("s.supervisor_id = $%d", argID))
		args = append(args, *filter.SupervisorID)
		argID++
	}
	if filter.StudentID != nil {
		conditions = append(conditions, fmt.Sprintf("t.student_id = $%d", argID))
		args = append(args, *filter.StudentID)
		argID++
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, st := range filter.Statuses {
			statuses = append(statuses, string(st))
		}
		conditions = append(conditions, fmt.Sprintf("t.status = ANY($%d)", argID))
		args = append(args, pq.Array(statuses))
		argID++
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY t.updated_at DESC"

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 200 // bounded page, supervisors can have many students
	}
	baseQuery += fmt.Sprintf(" LIMIT $%d", argID)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) FindRecent(ctx context.Context, limit int) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) SubmitIf(ctx context.Context, id int64, from models.TaskStatus, content string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET status=$1, submission_content=$2, submitted_at=$3, updated_at=$3
		WHERE id=$4 AND status=$5`,
		models.StatusSubmitted, content, at, id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *taskRepository) ReviewIf(ctx context.Context, id int64, from, to models.TaskStatus, rating *int, at time.Time) (bool, error) {
	// status and rating land in the same statement: either both persist or neither
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET status=$1, rating=COALESCE($2, rating), updated_at=$3
		WHERE id=$4 AND status=$5`,
		to, rating, at, id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *taskRepository) CompleteIf(ctx context.Context, id int64, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET status=$1, completed_at=$2, updated_at=$2
		WHERE id=$3 AND status IN ($4, $5)`,
		models.StatusCompleted, at, id, models.StatusSubmitted, models.StatusApproved)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
