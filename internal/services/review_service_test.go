package services

import (
	"context"
	"testing"

	"internhub/internal/models"
)

func TestListForStudentFiltersByStatus(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()
	reviews := NewReviewService(env.tasks, env.comments)

	pending := env.mustCreate(t, "Pending task")
	submitted := env.mustCreate(t, "Submitted task")
	env.mustSubmit(t, submitted.ID, "content")
	rejected := env.mustCreate(t, "Rejected task")
	env.mustSubmit(t, rejected.ID, "content")
	if _, err := env.svc.Review(ctx, rejected.ID, env.supervisor, models.StatusRejected, nil, "rework"); err != nil {
		t.Fatal(err)
	}

	all, err := reviews.ListForStudent(ctx, env.studentID, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("unfiltered list has %d tasks, want 3", len(all))
	}

	got, err := reviews.ListForStudent(ctx, env.studentID, []models.TaskStatus{models.StatusSubmitted, models.StatusRejected}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("filtered list has %d tasks, want 2", len(got))
	}
	for _, d := range got {
		if d.ID == pending.ID {
			t.Fatal("PENDING task leaked through the status filter")
		}
	}
}

func TestListOrderedByRecentActivity(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()
	reviews := NewReviewService(env.tasks, env.comments)

	first := env.mustCreate(t, "First")
	env.mustCreate(t, "Second")
	env.mustSubmit(t, first.ID, "content")

	got, err := reviews.ListForStudent(ctx, env.studentID, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("list has %d tasks, want 2", len(got))
	}
	if got[0].ID != first.ID {
		t.Fatalf("most recently updated task is %d, want %d", got[0].ID, first.ID)
	}
}

func TestListForSupervisorExcludesUnassignedStudents(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()
	reviews := NewReviewService(env.tasks, env.comments)

	otherSup := int64(202)
	foreign := &models.Student{UserID: 102, SupervisorID: &otherSup}
	if err := env.students.Create(foreign); err != nil {
		t.Fatal(err)
	}
	foreignActor := models.Actor{UserID: 102, RoleID: env.student.RoleID}

	mine := env.mustCreate(t, "Mine")
	if _, err := env.svc.Create(ctx, foreignActor, foreign.ID, "Theirs", "", "", 0); err != nil {
		t.Fatal(err)
	}

	got, err := reviews.ListForSupervisor(ctx, env.supervisor.UserID, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != mine.ID {
		t.Fatalf("supervisor list = %d tasks, want only task %d", len(got), mine.ID)
	}
}

func TestListAttachesCommentsOldestFirst(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()
	reviews := NewReviewService(env.tasks, env.comments)

	task := env.mustCreate(t, "Week 1 Log")
	env.mustSubmit(t, task.ID, "Did X")
	if _, err := env.svc.Review(ctx, task.ID, env.supervisor, models.StatusRejected, nil, "add detail"); err != nil {
		t.Fatal(err)
	}
	if _, err := env.svc.AddComment(ctx, task.ID, env.supervisor, "ping"); err != nil {
		t.Fatal(err)
	}

	got, err := reviews.ListForStudent(ctx, env.studentID, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("list has %d tasks, want 1", len(got))
	}
	comments := got[0].Comments
	if len(comments) != 2 {
		t.Fatalf("task carries %d comments, want 2", len(comments))
	}
	if comments[0].Content != "add detail" || comments[1].Content != "ping" {
		t.Fatalf("comments out of order: %q, %q", comments[0].Content, comments[1].Content)
	}
}
