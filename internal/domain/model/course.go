package model

import "time"

// Course groups assignments and memberships under a globally unique id.
type Course struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// Membership assigns a user exactly one role within one course. The creator
// of a course is its first instructor.
type Membership struct {
	CourseID string `json:"course_id"`
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
}
