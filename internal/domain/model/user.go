package model

import "time"

const (
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)

// User is a caller of the exchange. The id is externally supplied and trusted
// verbatim; no credentials are attached to it.
type User struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// Memberships groups the course ids where a user teaches or studies.
type Memberships struct {
	Taught []string
	Taken  []string
}
