package models

import "time"

type User struct {
	ID           int64  `json:"id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	RoleID       int    `json:"role_id"`

	// invite flow: token is set on creation and cleared once the
	// user completes their profile
	InviteToken *string `json:"-"`

	// Telegram push settings
	TelegramChatID int64 `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
