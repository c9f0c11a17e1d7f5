package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories collects every repository backed by the shared pool
type Repositories struct {
	User       *UserRepository
	Student    *StudentRepository
	Course     *CourseRepository
	Enrollment *EnrollmentRepository
}

// NewRepositories creates all repositories over a single connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Student:    NewStudentRepository(db),
		Course:     NewCourseRepository(db),
		Enrollment: NewEnrollmentRepository(db),
	}
}
