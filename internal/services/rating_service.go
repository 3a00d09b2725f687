package services

import (
	"context"
	"fmt"

	"internhub/internal/authz"
	"internhub/internal/models"
	"internhub/internal/repositories"
)

// RatingService manages standing ratings: one overall evaluation per
// (student, supervisor) pair, updated in place on re-rating.
type RatingService interface {
	Upsert(ctx context.Context, actor models.Actor, studentID int64, value int, comment string) (*models.Rating, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.Rating, error)
	ListBySupervisor(ctx context.Context, supervisorID int64) ([]models.Rating, error)
}

type ratingService struct {
	ratings  repositories.RatingRepository
	students repositories.StudentRepository
}

func NewRatingService(ratings repositories.RatingRepository, students repositories.StudentRepository) RatingService {
	return &ratingService{ratings: ratings, students: students}
}

func (s *ratingService) Upsert(ctx context.Context, actor models.Actor, studentID int64, value int, comment string) (*models.Rating, error) {
	if value < 1 || value > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if actor.RoleID != authz.RoleSupervisor {
		return nil, fmt.Errorf("%w: only supervisors rate students", ErrPermissionDenied)
	}

	student, err := s.students.FindByID(studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, fmt.Errorf("%w: student %d", ErrNotFound, studentID)
	}
	if student.SupervisorID == nil || *student.SupervisorID != actor.UserID {
		return nil, fmt.Errorf("%w: student %d is not assigned to you", ErrPermissionDenied, studentID)
	}

	rating := &models.Rating{
		StudentID:    studentID,
		SupervisorID: actor.UserID,
		Value:        value,
		Comment:      comment,
	}
	if err := s.ratings.Upsert(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

func (s *ratingService) ListByStudent(ctx context.Context, studentID int64) ([]models.Rating, error) {
	return s.ratings.FindByStudent(ctx, studentID)
}

func (s *ratingService) ListBySupervisor(ctx context.Context, supervisorID int64) ([]models.Rating, error) {
	return s.ratings.FindBySupervisor(ctx, supervisorID)
}
