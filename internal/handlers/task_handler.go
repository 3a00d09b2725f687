package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"internhub/internal/authz"
	"internhub/internal/models"
	"internhub/internal/services"
)

type TaskHandler struct {
	tasks   services.TaskService
	reviews services.ReviewService
	users   services.UserService
}

func NewTaskHandler(tasks services.TaskService, reviews services.ReviewService, users services.UserService) *TaskHandler {
	return &TaskHandler{tasks: tasks, reviews: reviews, users: users}
}

// @Summary      Create a task
// @Description  Creates a PENDING task for a student
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.Task
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req struct {
		StudentID      int64  `json:"student_id"`
		Title          string `json:"title" binding:"required"`
		Description    string `json:"description"`
		Category       string `json:"category"`
		EstimatedHours int    `json:"estimated_hours"`
	}

	actor := getActor(c)
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// students omit student_id and always create for themselves
	if req.StudentID == 0 && actor.RoleID == authz.RoleStudent {
		student, err := h.users.GetStudentByUserID(actor.UserID)
		if err != nil || student == nil {
			log.Printf("[task][create][err] no student profile for userID=%d: %v", actor.UserID, err)
			c.JSON(http.StatusForbidden, gin.H{"error": "no student profile"})
			return
		}
		req.StudentID = student.ID
	}

	task, err := h.tasks.Create(c.Request.Context(), actor, req.StudentID, req.Title, req.Description, req.Category, req.EstimatedHours)
	if err != nil {
		log.Printf("[task][create][err] %v", err)
		respondServiceError(c, err)
		return
	}
	log.Printf("[task][create][ok] id=%d student_id=%d title=%q", task.ID, task.StudentID, task.Title)
	c.JSON(http.StatusCreated, task)
}

// @Summary      Get a task
// @Description  Visible to the owning student, their assigned supervisor and admins
// @Tags         Tasks
// @Produce      json
// @Param        id  path  int  true  "Task ID"
// @Success      200  {object}  models.TaskDetail
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	detail, err := h.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !canViewStudent(h.users, getActor(c), detail.StudentID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// @Summary      List tasks
// @Description  Students see their own tasks, supervisors the tasks of their assigned students
// @Tags         Tasks
// @Produce      json
// @Param        status  query  string  false  "Comma-separated status filter"
// @Success      200  {array}  models.TaskDetail
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	actor := getActor(c)

	statuses, err := parseStatusFilter(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	switch actor.RoleID {
	case authz.RoleStudent:
		student, err := h.users.GetStudentByUserID(actor.UserID)
		if err != nil || student == nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "no student profile"})
			return
		}
		tasks, err := h.reviews.ListForStudent(c.Request.Context(), student.ID, statuses, limit)
		if err != nil {
			log.Printf("[task][list][err] student=%d: %v", student.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tasks"})
			return
		}
		c.JSON(http.StatusOK, tasks)
	case authz.RoleSupervisor:
		tasks, err := h.reviews.ListForSupervisor(c.Request.Context(), actor.UserID, statuses, limit)
		if err != nil {
			log.Printf("[task][list][err] supervisor=%d: %v", actor.UserID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tasks"})
			return
		}
		c.JSON(http.StatusOK, tasks)
	default:
		// admins read through the per-student endpoint
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

// @Summary      List a student's tasks
// @Description  Visible to the student, their assigned supervisor and admins
// @Tags         Tasks
// @Produce      json
// @Param        id  path  int  true  "Student ID"
// @Success      200  {array}  models.TaskDetail
// @Failure      403  {object}  map[string]string
// @Router       /students/{id}/tasks [get]
func (h *TaskHandler) ListForStudent(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if !canViewStudent(h.users, getActor(c), studentID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	statuses, err := parseStatusFilter(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tasks, err := h.reviews.ListForStudent(c.Request.Context(), studentID, statuses, 0)
	if err != nil {
		log.Printf("[task][listForStudent][err] student=%d: %v", studentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// @Summary      Submit a task
// @Description  Moves a PENDING or REJECTED task to SUBMITTED with the student's content
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "Task ID"
// @Success      200  {object}  models.Task
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /tasks/{id}/submit [post]
func (h *TaskHandler) Submit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := getActor(c)
	task, err := h.tasks.Submit(c.Request.Context(), id, actor, req.Content)
	if err != nil {
		log.Printf("[task][submit][err] id=%d user=%d: %v", id, actor.UserID, err)
		respondServiceError(c, err)
		return
	}
	log.Printf("[task][submit][ok] id=%d user=%d", id, actor.UserID)
	c.JSON(http.StatusOK, task)
}

// @Summary      Review a task
// @Description  Approves or rejects a SUBMITTED task, optionally with a rating (approve only) and a comment
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "Task ID"
// @Success      200  {object}  models.Task
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /tasks/{id}/review [post]
func (h *TaskHandler) Review(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		Decision string `json:"decision" binding:"required"`
		Rating   *int   `json:"rating"`
		Comment  string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	decision, err := models.ParseTaskStatus(strings.ToUpper(strings.TrimSpace(req.Decision)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := getActor(c)
	task, err := h.tasks.Review(c.Request.Context(), id, actor, decision, req.Rating, req.Comment)
	if err != nil {
		log.Printf("[task][review][err] id=%d user=%d decision=%s: %v", id, actor.UserID, decision, err)
		respondServiceError(c, err)
		return
	}
	log.Printf("[task][review][ok] id=%d user=%d decision=%s", id, actor.UserID, decision)
	c.JSON(http.StatusOK, task)
}

// @Summary      Complete a task
// @Description  Closes a SUBMITTED or APPROVED task; completing twice is a no-op
// @Tags         Tasks
// @Produce      json
// @Param        id  path  int  true  "Task ID"
// @Success      200  {object}  models.Task
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /tasks/{id}/complete [post]
func (h *TaskHandler) Complete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	actor := getActor(c)
	task, err := h.tasks.Complete(c.Request.Context(), id, actor)
	if err != nil {
		log.Printf("[task][complete][err] id=%d user=%d: %v", id, actor.UserID, err)
		respondServiceError(c, err)
		return
	}
	log.Printf("[task][complete][ok] id=%d user=%d", id, actor.UserID)
	c.JSON(http.StatusOK, task)
}

// @Summary      Add a comment
// @Description  Appends supervisor feedback to a task without changing its status
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "Task ID"
// @Success      201  {object}  models.Comment
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /tasks/{id}/comments [post]
func (h *TaskHandler) AddComment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := getActor(c)
	comment, err := h.tasks.AddComment(c.Request.Context(), id, actor, req.Content)
	if err != nil {
		log.Printf("[task][comment][err] id=%d user=%d: %v", id, actor.UserID, err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func parseStatusFilter(raw string) ([]models.TaskStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var statuses []models.TaskStatus
	for _, part := range strings.Split(raw, ",") {
		st, err := models.ParseTaskStatus(strings.ToUpper(strings.TrimSpace(part)))
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}
