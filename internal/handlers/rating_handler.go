package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"internhub/internal/authz"
	"internhub/internal/services"
)

type RatingHandler struct {
	service services.RatingService
	users   services.UserService
}

func NewRatingHandler(service services.RatingService, users services.UserService) *RatingHandler {
	return &RatingHandler{service: service, users: users}
}

// @Summary      Rate a student
// @Description  Creates or overwrites the supervisor's standing rating for a student
// @Tags         Ratings
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.Rating
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /ratings [post]
func (h *RatingHandler) Upsert(c *gin.Context) {
	var req struct {
		StudentID int64  `json:"student_id" binding:"required"`
		Rating    int    `json:"rating" binding:"required"`
		Comment   string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := getActor(c)
	rating, err := h.service.Upsert(c.Request.Context(), actor, req.StudentID, req.Rating, req.Comment)
	if err != nil {
		log.Printf("[rating][upsert][err] student=%d supervisor=%d: %v", req.StudentID, actor.UserID, err)
		respondServiceError(c, err)
		return
	}
	log.Printf("[rating][upsert][ok] student=%d supervisor=%d value=%d", req.StudentID, actor.UserID, req.Rating)
	c.JSON(http.StatusCreated, rating)
}

// @Summary      List ratings
// @Description  Filters by student_id (the student, their supervisor or admins) or supervisor_id (that supervisor or admins)
// @Tags         Ratings
// @Produce      json
// @Success      200  {array}  models.Rating
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /ratings [get]
func (h *RatingHandler) List(c *gin.Context) {
	actor := getActor(c)
	if v, ok := c.GetQuery("student_id"); ok {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student_id"})
			return
		}
		if !canViewStudent(h.users, actor, id) {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		ratings, err := h.service.ListByStudent(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list ratings"})
			return
		}
		c.JSON(http.StatusOK, ratings)
		return
	}
	if v, ok := c.GetQuery("supervisor_id"); ok {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supervisor_id"})
			return
		}
		// a supervisor's rating history is theirs and the admins'
		if !authz.IsAdmin(actor.RoleID) && !(authz.IsSupervisor(actor.RoleID) && actor.UserID == id) {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		ratings, err := h.service.ListBySupervisor(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list ratings"})
			return
		}
		c.JSON(http.StatusOK, ratings)
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "student_id or supervisor_id is required"})
}
