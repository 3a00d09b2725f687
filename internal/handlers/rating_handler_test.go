package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"internhub/internal/authz"
	"internhub/internal/middleware"
	"internhub/internal/models"
)

type stubRatingService struct{}

func (stubRatingService) Upsert(ctx context.Context, actor models.Actor, studentID int64, value int, comment string) (*models.Rating, error) {
	return &models.Rating{StudentID: studentID, SupervisorID: actor.UserID, Value: value, Comment: comment}, nil
}

func (stubRatingService) ListByStudent(ctx context.Context, studentID int64) ([]models.Rating, error) {
	return []models.Rating{{StudentID: studentID}}, nil
}

func (stubRatingService) ListBySupervisor(ctx context.Context, supervisorID int64) ([]models.Rating, error) {
	return []models.Rating{{SupervisorID: supervisorID}}, nil
}

func newRatingRouter(users *stubUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware(testJWTKey))
	h := NewRatingHandler(stubRatingService{}, users)
	r.GET("/ratings", h.List)
	return r
}

func TestRatingListByStudentVisibility(t *testing.T) {
	r := newRatingRouter(visibilityUsers())

	cases := []struct {
		name   string
		userID int64
		roleID int
		want   int
	}{
		{"rated student", 101, authz.RoleStudent, http.StatusOK},
		{"other student", 102, authz.RoleStudent, http.StatusForbidden},
		{"assigned supervisor", 201, authz.RoleSupervisor, http.StatusOK},
		{"other supervisor", 999, authz.RoleSupervisor, http.StatusForbidden},
		{"admin", 1, authz.RoleAdmin, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, "/ratings?student_id=7", bearerFor(t, tc.userID, tc.roleID), "")
			if w.Code != tc.want {
				t.Fatalf("status %d, want %d (body %s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestRatingListBySupervisorVisibility(t *testing.T) {
	r := newRatingRouter(visibilityUsers())

	cases := []struct {
		name   string
		userID int64
		roleID int
		want   int
	}{
		{"the supervisor", 201, authz.RoleSupervisor, http.StatusOK},
		{"another supervisor", 999, authz.RoleSupervisor, http.StatusForbidden},
		{"a student", 101, authz.RoleStudent, http.StatusForbidden},
		{"admin", 1, authz.RoleAdmin, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, "/ratings?supervisor_id=201", bearerFor(t, tc.userID, tc.roleID), "")
			if w.Code != tc.want {
				t.Fatalf("status %d, want %d (body %s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}
