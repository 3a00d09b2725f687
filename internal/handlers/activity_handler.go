package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"internhub/internal/services"
)

type ActivityHandler struct {
	service *services.ActivityService
}

func NewActivityHandler(service *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// @Summary      Recent activity
// @Description  Admin feed merging recent task submissions and ratings
// @Tags         Admin
// @Produce      json
// @Success      200  {array}  models.ActivityItem
// @Router       /admin/activity [get]
func (h *ActivityHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	items, err := h.service.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load activity"})
		return
	}
	c.JSON(http.StatusOK, items)
}
