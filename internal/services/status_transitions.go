package services

import "internhub/internal/models"

// Allowed task status transitions.
// NB: COMPLETED is reachable both straight from SUBMITTED (review-time
// close) and from APPROVED (explicit closing step); REJECTED loops back
// through SUBMITTED on resubmission.
var taskTransitions = map[models.TaskStatus]map[models.TaskStatus]bool{
	models.StatusPending:   {models.StatusSubmitted: true},
	models.StatusRejected:  {models.StatusSubmitted: true},
	models.StatusSubmitted: {models.StatusApproved: true, models.StatusRejected: true, models.StatusCompleted: true},
	models.StatusApproved:  {models.StatusCompleted: true},
	models.StatusCompleted: {},
}

func canTransition(current, to models.TaskStatus) bool {
	nexts, ok := taskTransitions[current]
	if !ok {
		return false
	}
	return nexts[to]
}
