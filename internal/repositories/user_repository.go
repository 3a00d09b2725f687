package repositories

import (
	"database/sql"

	"internhub/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int64) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByInviteToken(token string) (*models.User, error)
	List(limit, offset int) ([]*models.User, error)
	Delete(id int64) error

	// invite flow
	CompleteProfile(userID int64, passwordHash, fullName string) error

	// Telegram helpers
	UpdateTelegramChatID(userID int64, chatID int64) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `id, full_name, email, password_hash, role_id, invite_token,
	COALESCE(telegram_chat_id, 0), created_at`

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (full_name, email, password_hash, role_id, invite_token, telegram_chat_id, created_at)
		VALUES ($1,$2,$3,$4,$5,NULLIF($6,0),NOW())
		RETURNING id, created_at`
	return r.DB.QueryRow(q,
		user.FullName, user.Email, user.PasswordHash, user.RoleID,
		user.InviteToken, user.TelegramChatID,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) GetByID(id int64) (*models.User, error) {
	return r.one(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	return r.one(`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *userRepository) GetByInviteToken(token string) (*models.User, error) {
	return r.one(`SELECT `+userColumns+` FROM users WHERE invite_token = $1`, token)
}

func (r *userRepository) one(query string, arg interface{}) (*models.User, error) {
	u := &models.User{}
	err := r.DB.QueryRow(query, arg).Scan(
		&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.RoleID,
		&u.InviteToken, &u.TelegramChatID, &u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) List(limit, offset int) ([]*models.User, error) {
	rows, err := r.DB.Query(`SELECT `+userColumns+` FROM users ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(
			&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.RoleID,
			&u.InviteToken, &u.TelegramChatID, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM users WHERE id = $1`, id)
	return err
}

func (r *userRepository) CompleteProfile(userID int64, passwordHash, fullName string) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET password_hash = $1, full_name = COALESCE(NULLIF($2,''), full_name), invite_token = NULL
		WHERE id = $3`, passwordHash, fullName, userID)
	return err
}

func (r *userRepository) UpdateTelegramChatID(userID int64, chatID int64) error {
	_, err := r.DB.Exec(`UPDATE users SET telegram_chat_id = NULLIF($1,0) WHERE id = $2`, chatID, userID)
	return err
}
