package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcetin/courseflow/internal/app/models"
	"github.com/mcetin/courseflow/internal/app/services"
	"github.com/mcetin/courseflow/internal/pkg/apperrors"
)

type fakeStudentRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{byID: make(map[int64]*models.Student)}
}

func (f *fakeStudentRepo) Create(ctx context.Context, student *models.Student) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.byID {
		if existing.Email == student.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}

	f.nextID++
	stored := *student
	stored.ID = f.nextID
	f.byID[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeStudentRepo) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	student, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *student
	return &copied, nil
}

func (f *fakeStudentRepo) Exists(ctx context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byID[id]
	return ok, nil
}

type fakeCourseRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{byID: make(map[int64]*models.Course)}
}

func (f *fakeCourseRepo) Create(ctx context.Context, course *models.Course) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	stored := *course
	stored.ID = f.nextID
	f.byID[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeCourseRepo) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	course, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	copied := *course
	return &copied, nil
}

func (f *fakeCourseRepo) Exists(ctx context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byID[id]
	return ok, nil
}

type fakeEnrollmentRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []models.Enrollment
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{}
}

func (f *fakeEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	stored := *enrollment
	stored.ID = f.nextID
	f.rows = append(f.rows, stored)
	return stored.ID, nil
}

func (f *fakeEnrollmentRepo) CourseIDsForStudent(ctx context.Context, studentID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]int64, 0)
	for _, row := range f.rows {
		if row.StudentID == studentID {
			ids = append(ids, row.CourseID)
		}
	}
	return ids, nil
}

func (f *fakeEnrollmentRepo) StudentIDsForCourse(ctx context.Context, courseID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]int64, 0)
	for _, row := range f.rows {
		if row.CourseID == courseID {
			ids = append(ids, row.StudentID)
		}
	}
	return ids, nil
}

func newTestRegistryService() (*services.RegistryService, *fakeEnrollmentRepo) {
	enrollments := newFakeEnrollmentRepo()
	svc := services.NewRegistryService(newFakeStudentRepo(), newFakeCourseRepo(), enrollments, zerolog.Nop())
	return svc, enrollments
}

func TestRegistryService_CreateAndGetStudent(t *testing.T) {
	svc, _ := newTestRegistryService()
	ctx := context.Background()

	created, err := svc.CreateStudent(ctx, &models.Student{Name: "Bob", Age: 20, Email: "bob@x.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	fetched, err := svc.GetStudent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Bob", fetched.Name)
	assert.Equal(t, 20, fetched.Age)

	_, err = svc.GetStudent(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestRegistryService_CreateStudent_DuplicateEmail(t *testing.T) {
	svc, _ := newTestRegistryService()
	ctx := context.Background()

	_, err := svc.CreateStudent(ctx, &models.Student{Name: "Bob", Age: 20, Email: "bob@x.com"})
	require.NoError(t, err)

	_, err = svc.CreateStudent(ctx, &models.Student{Name: "Robert", Age: 22, Email: "bob@x.com"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegistryService_CreateAndGetCourse(t *testing.T) {
	svc, _ := newTestRegistryService()
	ctx := context.Background()

	created, err := svc.CreateCourse(ctx, &models.Course{Title: "Math", Description: "Algebra"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	fetched, err := svc.GetCourse(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Math", fetched.Title)

	_, err = svc.GetCourse(ctx, 42)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestRegistryService_Enroll(t *testing.T) {
	svc, _ := newTestRegistryService()
	ctx := context.Background()

	_, err := svc.CreateStudent(ctx, &models.Student{Name: "Bob", Age: 20, Email: "bob@x.com"})
	require.NoError(t, err)
	_, err = svc.CreateCourse(ctx, &models.Course{Title: "Math"})
	require.NoError(t, err)

	enrollment, err := svc.Enroll(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), enrollment.StudentID)
	assert.Equal(t, int64(1), enrollment.CourseID)

	courses, err := svc.CoursesForStudent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, courses)

	students, err := svc.StudentsForCourse(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, students)
}

func TestRegistryService_Enroll_StudentCheckedFirst(t *testing.T) {
	svc, _ := newTestRegistryService()
	ctx := context.Background()

	_, err := svc.CreateCourse(ctx, &models.Course{Title: "Math"})
	require.NoError(t, err)

	// Missing student wins regardless of the course id's validity
	_, err = svc.Enroll(ctx, 999, 1)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	_, err = svc.Enroll(ctx, 999, 888)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestRegistryService_Enroll_CourseNotFound(t *testing.T) {
	svc, _ := newTestRegistryService()
	ctx := context.Background()

	_, err := svc.CreateStudent(ctx, &models.Student{Name: "Bob", Age: 20, Email: "bob@x.com"})
	require.NoError(t, err)

	_, err = svc.Enroll(ctx, 1, 888)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestRegistryService_Enroll_DuplicatePairAllowed(t *testing.T) {
	svc, enrollments := newTestRegistryService()
	ctx := context.Background()

	_, err := svc.CreateStudent(ctx, &models.Student{Name: "Bob", Age: 20, Email: "bob@x.com"})
	require.NoError(t, err)
	_, err = svc.CreateCourse(ctx, &models.Course{Title: "Math"})
	require.NoError(t, err)

	_, err = svc.Enroll(ctx, 1, 1)
	require.NoError(t, err)
	_, err = svc.Enroll(ctx, 1, 1)
	require.NoError(t, err)

	// No pair dedupe: both rows persist
	assert.Len(t, enrollments.rows, 2)

	courses, err := svc.CoursesForStudent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 1}, courses)
}

func TestRegistryService_Enroll_ConcurrentSamePair(t *testing.T) {
	svc, enrollments := newTestRegistryService()
	ctx := context.Background()

	_, err := svc.CreateStudent(ctx, &models.Student{Name: "Bob", Age: 20, Email: "bob@x.com"})
	require.NoError(t, err)
	_, err = svc.CreateCourse(ctx, &models.Course{Title: "Math"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Enroll(ctx, 1, 1)
		}(i)
	}
	wg.Wait()

	// Racing enrollments for the same pair each succeed independently
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Len(t, enrollments.rows, 2)
}
