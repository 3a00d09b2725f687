package services

import (
	"fmt"
	"log"
	"strings"

	"internhub/internal/authz"
	"internhub/internal/models"
	"internhub/internal/repositories"
	"internhub/internal/utils"
)

type UserService interface {
	// InviteUser creates the account with an invite token and emails the
	// activation link; students also get their internship profile row.
	InviteUser(fullName, email string, roleID int, institution string) (*models.User, error)
	CompleteProfile(token, password, fullName string) (*models.User, error)

	GetUserByID(id int64) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	ListUsers(limit, offset int) ([]*models.User, error)
	DeleteUser(id int64) error

	ListStudents(limit, offset int) ([]*models.Student, error)
	ListStudentsBySupervisor(supervisorID int64) ([]*models.Student, error)
	GetStudentByUserID(userID int64) (*models.Student, error)
	GetStudentByID(id int64) (*models.Student, error)
	AssignSupervisor(studentID int64, supervisorID *int64) error
}

type userService struct {
	users        repositories.UserRepository
	students     repositories.StudentRepository
	emailService EmailService
	authService  AuthService
}

func NewUserService(users repositories.UserRepository, students repositories.StudentRepository, emailService EmailService, authService AuthService) UserService {
	return &userService{
		users:        users,
		students:     students,
		emailService: emailService,
		authService:  authService,
	}
}

func (s *userService) InviteUser(fullName, email string, roleID int, institution string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	switch roleID {
	case authz.RoleStudent, authz.RoleSupervisor, authz.RoleAdmin:
	default:
		return nil, fmt.Errorf("%w: unknown role %d", ErrValidation, roleID)
	}

	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email %s is already registered", ErrValidation, email)
	}

	token, err := utils.NewInviteToken(32)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName:    fullName,
		Email:       email,
		RoleID:      roleID,
		InviteToken: &token,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	if roleID == authz.RoleStudent {
		student := &models.Student{UserID: user.ID, Institution: institution}
		if err := s.students.Create(student); err != nil {
			return nil, err
		}
	}

	if s.emailService != nil {
		if err := s.emailService.SendInviteEmail(user.Email, user.FullName, token); err != nil {
			// warn but do not fail creation
			log.Printf("InviteUser: warning: failed to send invite email to %s: %v", user.Email, err)
		}
	}

	return user, nil
}

func (s *userService) CompleteProfile(token, password, fullName string) (*models.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: invite token is required", ErrValidation)
	}
	if len(strings.TrimSpace(password)) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	user, err := s.users.GetByInviteToken(token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: invite token", ErrNotFound)
	}

	hash, err := s.authService.HashPassword(password)
	if err != nil {
		return nil, err
	}
	if err := s.users.CompleteProfile(user.ID, hash, fullName); err != nil {
		return nil, err
	}
	return s.users.GetByID(user.ID)
}

func (s *userService) GetUserByID(id int64) (*models.User, error) {
	return s.users.GetByID(id)
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	return s.users.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
}

func (s *userService) ListUsers(limit, offset int) ([]*models.User, error) {
	return s.users.List(limit, offset)
}

func (s *userService) DeleteUser(id int64) error {
	return s.users.Delete(id)
}

func (s *userService) ListStudents(limit, offset int) ([]*models.Student, error) {
	return s.students.List(limit, offset)
}

func (s *userService) ListStudentsBySupervisor(supervisorID int64) ([]*models.Student, error) {
	return s.students.ListBySupervisor(supervisorID)
}

func (s *userService) GetStudentByUserID(userID int64) (*models.Student, error) {
	return s.students.FindByUserID(userID)
}

func (s *userService) GetStudentByID(id int64) (*models.Student, error) {
	return s.students.FindByID(id)
}

func (s *userService) AssignSupervisor(studentID int64, supervisorID *int64) error {
	student, err := s.students.FindByID(studentID)
	if err != nil {
		return err
	}
	if student == nil {
		return fmt.Errorf("%w: student %d", ErrNotFound, studentID)
	}
	if supervisorID != nil {
		sup, err := s.users.GetByID(*supervisorID)
		if err != nil {
			return err
		}
		if sup == nil || sup.RoleID != authz.RoleSupervisor {
			return fmt.Errorf("%w: user %d is not a supervisor", ErrValidation, *supervisorID)
		}
	}
	return s.students.UpdateSupervisor(studentID, supervisorID)
}
