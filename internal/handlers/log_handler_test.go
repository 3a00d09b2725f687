package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"internhub/internal/authz"
	"internhub/internal/middleware"
	"internhub/internal/models"
	"internhub/internal/services"
)

type fakeLogRepo struct {
	nextID  int64
	entries []*models.LogEntry
}

func (r *fakeLogRepo) Create(entry *models.LogEntry) error {
	r.nextID++
	entry.ID = r.nextID
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeLogRepo) ListByStudent(studentID int64) ([]*models.LogEntry, error) {
	var out []*models.LogEntry
	for _, e := range r.entries {
		if e.StudentID == studentID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func newLogRouter(users *stubUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware(testJWTKey))
	repo := &fakeLogRepo{}
	repo.Create(&models.LogEntry{StudentID: 7, Content: "wrote the weekly report"})
	h := NewLogHandler(services.NewLogService(repo), users)
	r.GET("/logs", h.List)
	return r
}

func TestLogListVisibility(t *testing.T) {
	r := newLogRouter(visibilityUsers())

	cases := []struct {
		name   string
		userID int64
		roleID int
		want   int
	}{
		{"owning student", 101, authz.RoleStudent, http.StatusOK},
		{"other student", 102, authz.RoleStudent, http.StatusForbidden},
		{"assigned supervisor", 201, authz.RoleSupervisor, http.StatusOK},
		{"other supervisor", 999, authz.RoleSupervisor, http.StatusForbidden},
		{"admin", 1, authz.RoleAdmin, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, "/logs?student_id=7", bearerFor(t, tc.userID, tc.roleID), "")
			if w.Code != tc.want {
				t.Fatalf("status %d, want %d (body %s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}
