package services

import (
	"context"

	"github.com/mcetin/courseflow/internal/app/models"
	"github.com/mcetin/courseflow/internal/app/repositories"
	"github.com/mcetin/courseflow/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// RegistryService maintains students, courses and the enrollment relation
// between them. It is independent of authentication; the HTTP boundary
// gates access before calls reach it.
type RegistryService struct {
	studentRepo    repositories.IStudentRepository
	courseRepo     repositories.ICourseRepository
	enrollmentRepo repositories.IEnrollmentRepository
	logger         zerolog.Logger
}

// NewRegistryService creates a new RegistryService
func NewRegistryService(
	studentRepo repositories.IStudentRepository,
	courseRepo repositories.ICourseRepository,
	enrollmentRepo repositories.IEnrollmentRepository,
	logger zerolog.Logger,
) *RegistryService {
	return &RegistryService{
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

// CreateStudent persists a new student record
func (s *RegistryService) CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	id, err := s.studentRepo.Create(ctx, student)
	if err != nil {
		return nil, err
	}

	student.ID = id
	s.logger.Info().Int64("studentID", id).Str("email", student.Email).Msg("Student created")

	return student, nil
}

// GetStudent retrieves a student by id
func (s *RegistryService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// CreateCourse persists a new course record
func (s *RegistryService) CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	id, err := s.courseRepo.Create(ctx, course)
	if err != nil {
		return nil, err
	}

	course.ID = id
	s.logger.Info().Int64("courseID", id).Str("title", course.Title).Msg("Course created")

	return course, nil
}

// GetCourse retrieves a course by id
func (s *RegistryService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// Enroll links a student to a course. The student reference is checked
// first, then the course, each with its own error, so failure messages are
// unambiguous. The row is only written after both checks pass. Repeated
// calls with the same pair insert separate rows.
func (s *RegistryService) Enroll(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	studentExists, err := s.studentRepo.Exists(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !studentExists {
		return nil, apperrors.ErrStudentNotFound
	}

	courseExists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !courseExists {
		return nil, apperrors.ErrCourseNotFound
	}

	enrollment := &models.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
	}

	id, err := s.enrollmentRepo.Create(ctx, enrollment)
	if err != nil {
		return nil, err
	}

	enrollment.ID = id
	s.logger.Info().Int64("studentID", studentID).Int64("courseID", courseID).Msg("Student enrolled")

	return enrollment, nil
}

// CoursesForStudent returns the course ids the student is enrolled in.
// Order follows insertion order but is not guaranteed.
func (s *RegistryService) CoursesForStudent(ctx context.Context, studentID int64) ([]int64, error) {
	return s.enrollmentRepo.CourseIDsForStudent(ctx, studentID)
}

// StudentsForCourse returns the student ids enrolled in the course
func (s *RegistryService) StudentsForCourse(ctx context.Context, courseID int64) ([]int64, error) {
	return s.enrollmentRepo.StudentIDsForCourse(ctx, courseID)
}
