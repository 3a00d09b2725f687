package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"internhub/internal/authz"
	"internhub/internal/services"
)

type LogHandler struct {
	logs  *services.LogService
	users services.UserService
}

func NewLogHandler(logs *services.LogService, users services.UserService) *LogHandler {
	return &LogHandler{logs: logs, users: users}
}

// @Summary      Add a daily log entry
// @Tags         Logs
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.LogEntry
// @Failure      400  {object}  map[string]string
// @Router       /logs [post]
func (h *LogHandler) Create(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
		Date    string `json:"date"` // RFC3339, defaults to now
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := getActor(c)
	if actor.RoleID != authz.RoleStudent {
		c.JSON(http.StatusForbidden, gin.H{"error": "only students keep a daily log"})
		return
	}
	student, err := h.users.GetStudentByUserID(actor.UserID)
	if err != nil || student == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "no student profile"})
		return
	}

	var date time.Time
	if req.Date != "" {
		d, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date (RFC3339)"})
			return
		}
		date = d
	}

	entry, err := h.logs.Add(student.ID, req.Content, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// @Summary      List a student's daily log
// @Description  Visible to the student, their assigned supervisor and admins
// @Tags         Logs
// @Produce      json
// @Param        student_id  query  int  true  "Student ID"
// @Success      200  {array}  models.LogEntry
// @Failure      403  {object}  map[string]string
// @Router       /logs [get]
func (h *LogHandler) List(c *gin.Context) {
	v, ok := c.GetQuery("student_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "student_id is required"})
		return
	}
	studentID, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student_id"})
		return
	}
	if !canViewStudent(h.users, getActor(c), studentID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	entries, err := h.logs.ListForStudent(studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list log entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}
