package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"internhub/internal/authz"
	"internhub/internal/models"
	"internhub/internal/services"
)

// tolerant of value types the middleware or tests may have stored
func getInt64FromCtx(c *gin.Context, key string) (int64, bool) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case float64:
		return int64(t), true
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func getActor(c *gin.Context) models.Actor {
	var actor models.Actor
	if id, ok := getInt64FromCtx(c, "user_id"); ok {
		actor.UserID = id
	}
	if id, ok := getInt64FromCtx(c, "role_id"); ok {
		actor.RoleID = int(id)
	}
	return actor
}

// canViewStudent reports whether the actor may read data belonging to
// the given student: the student themselves, their currently assigned
// supervisor, or an admin.
func canViewStudent(users services.UserService, actor models.Actor, studentID int64) bool {
	switch actor.RoleID {
	case authz.RoleAdmin:
		return true
	case authz.RoleStudent:
		student, err := users.GetStudentByUserID(actor.UserID)
		return err == nil && student != nil && student.ID == studentID
	case authz.RoleSupervisor:
		student, err := users.GetStudentByID(studentID)
		return err == nil && student != nil &&
			student.SupervisorID != nil && *student.SupervisorID == actor.UserID
	}
	return false
}

// respondServiceError maps the workflow error taxonomy onto HTTP codes.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrStaleState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
