package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"internhub/internal/services"
)

type NotificationHandler struct {
	service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// @Summary      List my notifications
// @Tags         Notifications
// @Produce      json
// @Success      200  {array}  models.Notification
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	actor := getActor(c)
	notifications, err := h.service.ListForUser(actor.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// @Summary      Mark notifications read
// @Description  Marks one of the caller's notifications (id in body) or all of them
// @Tags         Notifications
// @Accept       json
// @Success      200  {object}  map[string]bool
// @Router       /notifications [patch]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req struct {
		ID   *int64 `json:"id"`
		Read *bool  `json:"read"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := getActor(c)
	if req.ID != nil {
		read := true
		if req.Read != nil {
			read = *req.Read
		}
		ok, err := h.service.MarkRead(*req.ID, actor.UserID, read)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notification"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
	} else {
		if err := h.service.MarkAllRead(actor.UserID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notifications"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary      Delete notifications
// @Description  Deletes one of the caller's notifications by id, or all of them when id is omitted
// @Tags         Notifications
// @Success      200  {object}  map[string]bool
// @Router       /notifications [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	actor := getActor(c)
	if v, ok := c.GetQuery("id"); ok {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		ok, err := h.service.Delete(id, actor.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete notification"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
	} else {
		if err := h.service.DeleteAllForUser(actor.UserID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete notifications"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
