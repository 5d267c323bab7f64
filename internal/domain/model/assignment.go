package model

import "time"

// Assignment is an instructor-published file collection, unique within its
// course. It is created exactly once and never updated afterwards.
type Assignment struct {
	ID        string
	CourseID  string
	Files     FileCollection
	CreatedAt time.Time
}
