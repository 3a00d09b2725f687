package authz

import "internhub/internal/models"

// TaskOwnership is the slice of a task's relationships the policy
// needs: who owns it and which supervisor the owner is assigned to.
// SupervisorID is 0 while the student is unassigned.
type TaskOwnership struct {
	StudentID    int64
	SupervisorID int64
}

// CanTransition reports whether the actor may move a task between the
// given states. It is a pure function over role + relationship:
//
//   - students may only move tasks they own to SUBMITTED;
//   - supervisors may only approve/reject/complete tasks of students
//     currently assigned to them;
//   - admins have no direct transition rights.
//
// Legality of the (from, to) pair itself is the lifecycle engine's
// concern, not the policy's.
func CanTransition(roleID int, actorStudentID, actorUserID int64, own TaskOwnership, from, to models.TaskStatus) bool {
	switch to {
	case models.StatusSubmitted:
		return roleID == RoleStudent && actorStudentID != 0 && actorStudentID == own.StudentID
	case models.StatusApproved, models.StatusRejected, models.StatusCompleted:
		return roleID == RoleSupervisor && own.SupervisorID != 0 && actorUserID == own.SupervisorID
	}
	return false
}
