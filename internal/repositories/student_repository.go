package repositories

import (
	"database/sql"

	"internhub/internal/models"
)

type StudentRepository interface {
	Create(student *models.Student) error
	FindByID(id int64) (*models.Student, error)
	FindByUserID(userID int64) (*models.Student, error)
	ListBySupervisor(supervisorID int64) ([]*models.Student, error)
	List(limit, offset int) ([]*models.Student, error)
	UpdateSupervisor(studentID int64, supervisorID *int64) error
}

type studentRepository struct {
	DB *sql.DB
}

func NewStudentRepository(db *sql.DB) StudentRepository {
	return &studentRepository{DB: db}
}

const studentColumns = `id, user_id, supervisor_id, institution, start_date, end_date, created_at`

func (r *studentRepository) Create(student *models.Student) error {
	const q = `
		INSERT INTO students (user_id, supervisor_id, institution, start_date, end_date, created_at)
		VALUES ($1,$2,$3,$4,$5,NOW())
		RETURNING id, created_at`
	return r.DB.QueryRow(q,
		student.UserID, student.SupervisorID, student.Institution,
		student.StartDate, student.EndDate,
	).Scan(&student.ID, &student.CreatedAt)
}

func (r *studentRepository) FindByID(id int64) (*models.Student, error) {
	return r.one(`SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
}

func (r *studentRepository) FindByUserID(userID int64) (*models.Student, error) {
	return r.one(`SELECT `+studentColumns+` FROM students WHERE user_id = $1`, userID)
}

func (r *studentRepository) one(query string, arg interface{}) (*models.Student, error) {
	s := &models.Student{}
	err := r.DB.QueryRow(query, arg).Scan(
		&s.ID, &s.UserID, &s.SupervisorID, &s.Institution, &s.StartDate, &s.EndDate, &s.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func (r *studentRepository) ListBySupervisor(supervisorID int64) ([]*models.Student, error) {
	return r.list(`SELECT `+studentColumns+` FROM students WHERE supervisor_id = $1 ORDER BY id`, supervisorID)
}

func (r *studentRepository) List(limit, offset int) ([]*models.Student, error) {
	return r.list(`SELECT `+studentColumns+` FROM students ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *studentRepository) list(query string, args ...interface{}) ([]*models.Student, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s := &models.Student{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.SupervisorID, &s.Institution, &s.StartDate, &s.EndDate, &s.CreatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func (r *studentRepository) UpdateSupervisor(studentID int64, supervisorID *int64) error {
	_, err := r.DB.Exec(`UPDATE students SET supervisor_id = $1 WHERE id = $2`, supervisorID, studentID)
	return err
}
