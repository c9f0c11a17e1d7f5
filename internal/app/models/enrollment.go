package models

// Enrollment links one student to one course. Both referenced rows must
// exist when the enrollment is written; there is no uniqueness constraint
// on the (student, course) pair, so repeated enrollments produce separate
// rows.
type Enrollment struct {
	ID        int64 `json:"id" db:"id"`
	StudentID int64 `json:"studentId" db:"student_id"`
	CourseID  int64 `json:"courseId" db:"course_id"`
}
