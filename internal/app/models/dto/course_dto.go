package dto

// CreateCourseRequest represents the payload to create a course
type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// CourseResponse represents a course record
type CourseResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CourseStudentsResponse lists the student ids enrolled in a course
type CourseStudentsResponse struct {
	EnrolledStudents []int64 `json:"enrolledStudents"`
}
