package repositories

import (
	"database/sql"

	"internhub/internal/models"
)

type NotificationRepository interface {
	Create(n *models.Notification) error
	ListByUser(userID int64) ([]*models.Notification, error)

	// Single-row writes are scoped to the owning user; false means no
	// row matched (wrong id or someone else's notification).
	MarkRead(id, userID int64, read bool) (bool, error)
	Delete(id, userID int64) (bool, error)

	MarkAllRead(userID int64) error
	DeleteAllForUser(userID int64) error
}

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{DB: db}
}

func (r *notificationRepository) Create(n *models.Notification) error {
	const q = `
		INSERT INTO notifications (user_id, message, read, created_at)
		VALUES ($1,$2,FALSE,NOW())
		RETURNING id, created_at`
	return r.DB.QueryRow(q, n.UserID, n.Message).Scan(&n.ID, &n.CreatedAt)
}

func (r *notificationRepository) ListByUser(userID int64) ([]*models.Notification, error) {
	rows, err := r.DB.Query(`
		SELECT id, user_id, message, read, created_at
		FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notificationRepository) MarkRead(id, userID int64, read bool) (bool, error) {
	res, err := r.DB.Exec(`UPDATE notifications SET read = $1 WHERE id = $2 AND user_id = $3`, read, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *notificationRepository) MarkAllRead(userID int64) error {
	_, err := r.DB.Exec(`UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`, userID)
	return err
}

func (r *notificationRepository) Delete(id, userID int64) (bool, error) {
	res, err := r.DB.Exec(`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *notificationRepository) DeleteAllForUser(userID int64) error {
	_, err := r.DB.Exec(`DELETE FROM notifications WHERE user_id = $1`, userID)
	return err
}
