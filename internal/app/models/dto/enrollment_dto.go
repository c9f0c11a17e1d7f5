package dto

// EnrollmentRequest represents the payload to enroll a student in a course
type EnrollmentRequest struct {
	StudentID int64 `json:"studentId" binding:"required,min=1"`
	CourseID  int64 `json:"courseId" binding:"required,min=1"`
}

// EnrollmentResponse represents a created enrollment row
type EnrollmentResponse struct {
	ID        int64 `json:"id"`
	StudentID int64 `json:"studentId"`
	CourseID  int64 `json:"courseId"`
}
