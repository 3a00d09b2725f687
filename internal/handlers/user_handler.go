package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"internhub/internal/authz"
	"internhub/internal/services"
)

type UserHandler struct {
	service services.UserService
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// @Summary      Invite a user
// @Description  Admin creates an account and emails an activation link
// @Tags         Users
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.User
// @Failure      400  {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Invite(c *gin.Context) {
	var req struct {
		FullName    string `json:"full_name" binding:"required"`
		Email       string `json:"email" binding:"required"`
		RoleID      int    `json:"role_id" binding:"required"`
		Institution string `json:"institution"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.InviteUser(req.FullName, req.Email, req.RoleID, req.Institution)
	if err != nil {
		log.Printf("[user][invite][err] email=%q: %v", req.Email, err)
		respondServiceError(c, err)
		return
	}
	log.Printf("[user][invite][ok] id=%d email=%q role=%d", user.ID, user.Email, user.RoleID)
	c.JSON(http.StatusCreated, user)
}

// @Summary      List users
// @Tags         Users
// @Produce      json
// @Success      200  {array}  models.User
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	users, err := h.service.ListUsers(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary      Get a user
// @Tags         Users
// @Produce      json
// @Param        id  path  int  true  "User ID"
// @Success      200  {object}  models.User
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	user, err := h.service.GetUserByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary      Delete a user
// @Tags         Users
// @Param        id  path  int  true  "User ID"
// @Success      204
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.DeleteUser(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      List students
// @Description  Supervisors see their assigned students, admins see everyone
// @Tags         Students
// @Produce      json
// @Success      200  {array}  models.Student
// @Router       /students [get]
func (h *UserHandler) ListStudents(c *gin.Context) {
	actor := getActor(c)
	if actor.RoleID == authz.RoleSupervisor {
		students, err := h.service.ListStudentsBySupervisor(actor.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list students"})
			return
		}
		c.JSON(http.StatusOK, students)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	students, err := h.service.ListStudents(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list students"})
		return
	}
	c.JSON(http.StatusOK, students)
}

// @Summary      Assign a supervisor
// @Description  Admin points a student at a supervisor (or clears the assignment)
// @Tags         Students
// @Accept       json
// @Param        id  path  int  true  "Student ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /students/{id}/supervisor [put]
func (h *UserHandler) AssignSupervisor(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		SupervisorID *int64 `json:"supervisor_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.AssignSupervisor(studentID, req.SupervisorID); err != nil {
		log.Printf("[student][assign][err] student=%d: %v", studentID, err)
		respondServiceError(c, err)
		return
	}
	log.Printf("[student][assign][ok] student=%d supervisor=%v", studentID, req.SupervisorID)
	c.JSON(http.StatusOK, gin.H{"message": "supervisor updated"})
}
