package repositories

import (
	"database/sql"

	"internhub/internal/models"
)

type LogRepository interface {
	Create(entry *models.LogEntry) error
	ListByStudent(studentID int64) ([]*models.LogEntry, error)
}

type logRepository struct {
	DB *sql.DB
}

func NewLogRepository(db *sql.DB) LogRepository {
	return &logRepository{DB: db}
}

func (r *logRepository) Create(entry *models.LogEntry) error {
	const q = `
		INSERT INTO log_entries (student_id, content, date, created_at)
		VALUES ($1,$2,$3,NOW())
		RETURNING id, created_at`
	return r.DB.QueryRow(q, entry.StudentID, entry.Content, entry.Date).
		Scan(&entry.ID, &entry.CreatedAt)
}

func (r *logRepository) ListByStudent(studentID int64) ([]*models.LogEntry, error) {
	rows, err := r.DB.Query(`
		SELECT id, student_id, content, date, created_at
		FROM log_entries WHERE student_id = $1 ORDER BY date DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.LogEntry
	for rows.Next() {
		e := &models.LogEntry{}
		if err := rows.Scan(&e.ID, &e.StudentID, &e.Content, &e.Date, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
