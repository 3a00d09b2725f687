package models

// Actor is the authenticated identity driving an operation, resolved
// server-side from the verified token by the auth middleware.
type Actor struct {
	UserID int64
	RoleID int
}
