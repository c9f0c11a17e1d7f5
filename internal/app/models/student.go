package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Age   int    `json:"age" db:"age"`
	Email string `json:"email" db:"email"` // Unique
}
