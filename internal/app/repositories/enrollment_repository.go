package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcetin/courseflow/internal/app/models"
)

// IEnrollmentRepository defines the interface for enrollment-related database operations
type IEnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) (int64, error)
	CourseIDsForStudent(ctx context.Context, studentID int64) ([]int64, error)
	StudentIDsForCourse(ctx context.Context, courseID int64) ([]int64, error)
}

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

// Create persists a new enrollment row and returns its id. There is no
// uniqueness constraint on the (student_id, course_id) pair, so concurrent
// or repeated calls for the same pair each insert their own row.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO enrollments (student_id, course_id)
		VALUES ($1, $2)
		RETURNING id`,
		enrollment.StudentID, enrollment.CourseID).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating enrollment: %w", err)
	}

	return id, nil
}

// CourseIDsForStudent returns the course ids the student is enrolled in
func (r *EnrollmentRepository) CourseIDsForStudent(ctx context.Context, studentID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT course_id
		FROM enrollments
		WHERE student_id = $1`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing courses for student: %w", err)
	}
	defer rows.Close()

	courseIDs := make([]int64, 0)
	for rows.Next() {
		var courseID int64
		if err := rows.Scan(&courseID); err != nil {
			return nil, fmt.Errorf("error scanning course id: %w", err)
		}
		courseIDs = append(courseIDs, courseID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollments: %w", err)
	}

	return courseIDs, nil
}

// StudentIDsForCourse returns the student ids enrolled in the course
func (r *EnrollmentRepository) StudentIDsForCourse(ctx context.Context, courseID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT student_id
		FROM enrollments
		WHERE course_id = $1`,
		courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing students for course: %w", err)
	}
	defer rows.Close()

	studentIDs := make([]int64, 0)
	for rows.Next() {
		var studentID int64
		if err := rows.Scan(&studentID); err != nil {
			return nil, fmt.Errorf("error scanning student id: %w", err)
		}
		studentIDs = append(studentIDs, studentID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollments: %w", err)
	}

	return studentIDs, nil
}
