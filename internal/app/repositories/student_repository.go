package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcetin/courseflow/internal/app/models"
	"github.com/mcetin/courseflow/internal/pkg/apperrors"
	"github.com/mcetin/courseflow/internal/pkg/dberrors"
)

// IStudentRepository defines the interface for student-related database operations
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create persists a new student and returns its id
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO students (name, age, email)
		VALUES ($1, $2, $3)
		RETURNING id`,
		student.Name, student.Age, student.Email).Scan(&id)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	return id, nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student := &models.Student{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, age, email
		FROM students
		WHERE id = $1`,
		id).Scan(&student.ID, &student.Name, &student.Age, &student.Email)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error fetching student: %w", err)
	}

	return student, nil
}

// Exists checks whether a student with the given id exists
func (r *StudentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE id = $1)`,
		id).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking student: %w", err)
	}

	return exists, nil
}
