package authz

import (
	"testing"

	"internhub/internal/models"
)

func TestCanTransition(t *testing.T) {
	own := TaskOwnership{StudentID: 7, SupervisorID: 201}

	tests := []struct {
		name           string
		roleID         int
		actorStudentID int64
		actorUserID    int64
		own            TaskOwnership
		to             models.TaskStatus
		want           bool
	}{
		{"owner submits", RoleStudent, 7, 101, own, models.StatusSubmitted, true},
		{"other student submits", RoleStudent, 8, 102, own, models.StatusSubmitted, false},
		{"student without profile submits", RoleStudent, 0, 101, own, models.StatusSubmitted, false},
		{"supervisor submits", RoleSupervisor, 0, 201, own, models.StatusSubmitted, false},
		{"admin submits", RoleAdmin, 0, 1, own, models.StatusSubmitted, false},

		{"assigned supervisor approves", RoleSupervisor, 0, 201, own, models.StatusApproved, true},
		{"assigned supervisor rejects", RoleSupervisor, 0, 201, own, models.StatusRejected, true},
		{"assigned supervisor completes", RoleSupervisor, 0, 201, own, models.StatusCompleted, true},
		{"other supervisor approves", RoleSupervisor, 0, 999, own, models.StatusApproved, false},
		{"unassigned student's task approved", RoleSupervisor, 0, 201, TaskOwnership{StudentID: 7}, models.StatusApproved, false},
		{"owner approves own task", RoleStudent, 7, 101, own, models.StatusApproved, false},
		{"admin rejects", RoleAdmin, 0, 1, own, models.StatusRejected, false},

		{"nobody targets pending", RoleSupervisor, 0, 201, own, models.StatusPending, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CanTransition(tc.roleID, tc.actorStudentID, tc.actorUserID, tc.own, models.StatusPending, tc.to)
			if got != tc.want {
				t.Fatalf("CanTransition(...%s) = %v, want %v", tc.to, got, tc.want)
			}
		})
	}
}

func TestRoleHelpers(t *testing.T) {
	if !IsStudent(RoleStudent) || IsStudent(RoleSupervisor) {
		t.Fatal("IsStudent misclassifies")
	}
	if !IsSupervisor(RoleSupervisor) || IsSupervisor(RoleAdmin) {
		t.Fatal("IsSupervisor misclassifies")
	}
	if !IsAdmin(RoleAdmin) || IsAdmin(RoleStudent) {
		t.Fatal("IsAdmin misclassifies")
	}
}
