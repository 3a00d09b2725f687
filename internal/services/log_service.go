package services

import (
	"fmt"
	"strings"
	"time"

	"internhub/internal/models"
	"internhub/internal/repositories"
)

// LogService handles the free-form daily log, which lives outside the
// reviewed task workflow.
type LogService struct {
	repo repositories.LogRepository
}

func NewLogService(repo repositories.LogRepository) *LogService {
	return &LogService{repo: repo}
}

func (s *LogService) Add(studentID int64, content string, date time.Time) (*models.LogEntry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if date.IsZero() {
		date = time.Now()
	}
	entry := &models.LogEntry{StudentID: studentID, Content: content, Date: date}
	if err := s.repo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *LogService) ListForStudent(studentID int64) ([]*models.LogEntry, error) {
	return s.repo.ListByStudent(studentID)
}
