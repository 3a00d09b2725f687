package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"internhub/internal/pdf"
	"internhub/internal/services"
)

type ReportHandler struct {
	reviews   services.ReviewService
	users     services.UserService
	generator pdf.Generator
}

func NewReportHandler(reviews services.ReviewService, users services.UserService, generator pdf.Generator) *ReportHandler {
	return &ReportHandler{reviews: reviews, users: users, generator: generator}
}

// @Summary      Download a student's logbook
// @Description  Renders the student's full task history as a PDF; visible to the student, their assigned supervisor and admins
// @Tags         Reports
// @Produce      application/pdf
// @Param        id  path  int  true  "Student ID"
// @Success      200
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /students/{id}/logbook.pdf [get]
func (h *ReportHandler) Logbook(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if !canViewStudent(h.users, getActor(c), studentID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	student, err := h.users.GetStudentByID(studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load student"})
		return
	}
	if student == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}

	data := pdf.LogbookData{
		Institution: student.Institution,
		GeneratedAt: time.Now(),
	}
	if user, err := h.users.GetUserByID(student.UserID); err == nil && user != nil {
		data.StudentName = user.FullName
	}
	if student.SupervisorID != nil {
		if sup, err := h.users.GetUserByID(*student.SupervisorID); err == nil && sup != nil {
			data.Supervisor = sup.FullName
		}
	}

	details, err := h.reviews.ListForStudent(c.Request.Context(), studentID, nil, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tasks"})
		return
	}
	for _, d := range details {
		data.Tasks = append(data.Tasks, d.Task)
	}

	path, err := h.generator.GenerateLogbook(data)
	if err != nil {
		log.Printf("[report][logbook][err] student=%d: %v", studentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate logbook"})
		return
	}
	log.Printf("[report][logbook][ok] student=%d file=%s", studentID, path)
	c.FileAttachment(path, "logbook.pdf")
}
