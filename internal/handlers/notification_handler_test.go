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

type fakeNotificationRepo struct {
	nextID int64
	rows   map[int64]*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1, rows: map[int64]*models.Notification{}}
}

func (r *fakeNotificationRepo) Create(n *models.Notification) error {
	n.ID = r.nextID
	r.nextID++
	cp := *n
	r.rows[n.ID] = &cp
	return nil
}

func (r *fakeNotificationRepo) ListByUser(userID int64) ([]*models.Notification, error) {
	var out []*models.Notification
	for _, n := range r.rows {
		if n.UserID == userID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(id, userID int64, read bool) (bool, error) {
	n, ok := r.rows[id]
	if !ok || n.UserID != userID {
		return false, nil
	}
	n.Read = read
	return true, nil
}

func (r *fakeNotificationRepo) MarkAllRead(userID int64) error {
	for _, n := range r.rows {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) Delete(id, userID int64) (bool, error) {
	n, ok := r.rows[id]
	if !ok || n.UserID != userID {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

func (r *fakeNotificationRepo) DeleteAllForUser(userID int64) error {
	for id, n := range r.rows {
		if n.UserID == userID {
			delete(r.rows, id)
		}
	}
	return nil
}

func newNotificationRouter(repo *fakeNotificationRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware(testJWTKey))
	h := NewNotificationHandler(services.NewNotificationService(repo))
	notifications := r.Group("/notifications")
	{
		notifications.GET("/", h.List)
		notifications.PATCH("/", h.MarkRead)
		notifications.DELETE("/", h.Delete)
	}
	return r
}

func TestNotificationDeleteScopedToOwner(t *testing.T) {
	repo := newFakeNotificationRepo()
	if err := repo.Create(&models.Notification{UserID: 101, Message: "task reviewed"}); err != nil {
		t.Fatal(err)
	}
	r := newNotificationRouter(repo)

	w := doRequest(r, http.MethodDelete, "/notifications/?id=1", bearerFor(t, 102, authz.RoleStudent), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign delete: status %d, want 404", w.Code)
	}
	if _, ok := repo.rows[1]; !ok {
		t.Fatal("foreign delete removed the row")
	}

	w = doRequest(r, http.MethodDelete, "/notifications/?id=1", bearerFor(t, 101, authz.RoleStudent), "")
	if w.Code != http.StatusOK {
		t.Fatalf("owner delete: status %d, want 200", w.Code)
	}
	if _, ok := repo.rows[1]; ok {
		t.Fatal("owner delete left the row in place")
	}
}

func TestNotificationMarkReadScopedToOwner(t *testing.T) {
	repo := newFakeNotificationRepo()
	if err := repo.Create(&models.Notification{UserID: 101, Message: "task reviewed"}); err != nil {
		t.Fatal(err)
	}
	r := newNotificationRouter(repo)

	w := doRequest(r, http.MethodPatch, "/notifications/", bearerFor(t, 102, authz.RoleStudent), `{"id":1}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign mark-read: status %d, want 404", w.Code)
	}
	if repo.rows[1].Read {
		t.Fatal("foreign mark-read flipped the flag")
	}

	w = doRequest(r, http.MethodPatch, "/notifications/", bearerFor(t, 101, authz.RoleStudent), `{"id":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("owner mark-read: status %d, want 200", w.Code)
	}
	if !repo.rows[1].Read {
		t.Fatal("owner mark-read did not flip the flag")
	}
}

func TestNotificationMarkAllReadOnlyTouchesCaller(t *testing.T) {
	repo := newFakeNotificationRepo()
	if err := repo.Create(&models.Notification{UserID: 101, Message: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(&models.Notification{UserID: 102, Message: "b"}); err != nil {
		t.Fatal(err)
	}
	r := newNotificationRouter(repo)

	w := doRequest(r, http.MethodPatch, "/notifications/", bearerFor(t, 101, authz.RoleStudent), `{}`)
	if w.Code != http.StatusOK {
		t.Fatalf("mark all: status %d, want 200", w.Code)
	}
	if !repo.rows[1].Read {
		t.Fatal("caller's notification still unread")
	}
	if repo.rows[2].Read {
		t.Fatal("other user's notification was marked read")
	}
}
