package services

import "errors"

// Workflow error taxonomy. Handlers map these to HTTP codes; callers
// decide retryability: validation and permission failures need a
// corrected request or a different actor, a stale state means the task
// moved underneath the caller and should be re-fetched.
var (
	ErrValidation       = errors.New("validation failed")
	ErrPermissionDenied = errors.New("permission denied")
	ErrStaleState       = errors.New("task state changed, re-fetch and retry")
	ErrNotFound         = errors.New("not found")
)
