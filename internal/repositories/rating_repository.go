package repositories

import (
	"context"
	"database/sql"

	"internhub/internal/models"
)

type RatingRepository interface {
	// Upsert keys on the (student_id, supervisor_id) unique constraint:
	// first call inserts, later calls overwrite value and comment.
	Upsert(ctx context.Context, rating *models.Rating) error
	FindByStudent(ctx context.Context, studentID int64) ([]models.Rating, error)
	FindBySupervisor(ctx context.Context, supervisorID int64) ([]models.Rating, error)
	FindRecent(ctx context.Context, limit int) ([]models.Rating, error)
}

type ratingRepository struct {
	db *sql.DB
}

func NewRatingRepository(db *sql.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	query := `
		INSERT INTO ratings (student_id, supervisor_id, rating, comment, created_at, updated_at)
		VALUES ($1,$2,$3,$4,NOW(),NOW())
		ON CONFLICT (student_id, supervisor_id)
		DO UPDATE SET rating = EXCLUDED.rating, comment = EXCLUDED.comment, updated_at = NOW()
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		rating.StudentID, rating.SupervisorID, rating.Value, rating.Comment,
	).Scan(&rating.ID, &rating.CreatedAt, &rating.UpdatedAt)
}

func (r *ratingRepository) FindByStudent(ctx context.Context, studentID int64) ([]models.Rating, error) {
	return r.list(ctx, `SELECT id, student_id, supervisor_id, rating, comment, created_at, updated_at
		FROM ratings WHERE student_id = $1 ORDER BY created_at DESC`, studentID)
}

func (r *ratingRepository) FindBySupervisor(ctx context.Context, supervisorID int64) ([]models.Rating, error) {
	return r.list(ctx, `SELECT id, student_id, supervisor_id, rating, comment, created_at, updated_at
		FROM ratings WHERE supervisor_id = $1 ORDER BY created_at DESC`, supervisorID)
}

func (r *ratingRepository) FindRecent(ctx context.Context, limit int) ([]models.Rating, error) {
	return r.list(ctx, `SELECT id, student_id, supervisor_id, rating, comment, created_at, updated_at
		FROM ratings ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *ratingRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Rating, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []models.Rating
	for rows.Next() {
		var rt models.Rating
		if err := rows.Scan(&rt.ID, &rt.StudentID, &rt.SupervisorID, &rt.Value, &rt.Comment, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
			return nil, err
		}
		ratings = append(ratings, rt)
	}
	return ratings, rows.Err()
}
