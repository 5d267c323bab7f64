package model

import "time"

// Submission is an immutable snapshot of a student's work for one assignment.
// Any number of submissions may exist per (assignment, student); none is ever
// updated or deleted. The timestamp is assigned by the server at creation.
type Submission struct {
	ID           string
	CourseID     string
	AssignmentID string
	StudentID    string
	Timestamp    time.Time // microsecond resolution, strictly monotonic per (assignment, student)
	Files        FileCollection
	Feedback     FileCollection
	HasFeedback  bool // distinguishes "no feedback yet" from an empty feedback collection
}
