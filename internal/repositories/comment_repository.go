package repositories

import (
	"context"
	"database/sql"

	"internhub/internal/models"

	"github.com/lib/pq"
)

type CommentRepository interface {
	Store(ctx context.Context, comment *models.Comment) error
	ListByTask(ctx context.Context, taskID int64) ([]models.Comment, error)
	ListByTasks(ctx context.Context, taskIDs []int64) ([]models.Comment, error)
}

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Store(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (task_id, supervisor_id, content, created_at)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		comment.TaskID, comment.SupervisorID, comment.Content, comment.CreatedAt,
	).Scan(&comment.ID, &comment.CreatedAt)
}

func (r *commentRepository) ListByTask(ctx context.Context, taskID int64) ([]models.Comment, error) {
	return r.list(ctx, `SELECT id, task_id, supervisor_id, content, created_at
		FROM comments WHERE task_id = $1 ORDER BY created_at ASC, id ASC`, taskID)
}

func (r *commentRepository) ListByTasks(ctx context.Context, taskIDs []int64) ([]models.Comment, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, `SELECT id, task_id, supervisor_id, content, created_at
		FROM comments WHERE task_id = ANY($1) ORDER BY created_at ASC, id ASC`, pq.Array(taskIDs))
}

func (r *commentRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.SupervisorID, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
