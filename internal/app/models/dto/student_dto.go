package dto

// CreateStudentRequest represents the payload to create a student
type CreateStudentRequest struct {
	Name  string `json:"name" binding:"required"`
	Age   int    `json:"age" binding:"required,min=1"`
	Email string `json:"email" binding:"required,email"`
}

// StudentResponse represents a student record
type StudentResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Email string `json:"email"`
}

// StudentCoursesResponse lists the course ids a student is enrolled in
type StudentCoursesResponse struct {
	EnrolledCourses []int64 `json:"enrolledCourses"`
}
