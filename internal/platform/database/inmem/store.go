// Package inmem implements the domain repositories on top of a single
// mutex-guarded store. It backs the test suite and the DSN-less development
// mode of the server.
package inmem

import (
	"sync"
	"time"

	"course_exchange/internal/domain/model"
)

// Store holds all exchange state. One lock covers every table; operations are
// short, bounded critical sections, mirroring the single-transactional-store
// assumption of the domain model.
type Store struct {
	mu          sync.RWMutex
	users       map[string]*model.User
	courses     map[string]*model.Course
	memberships map[string]map[string]string // courseID -> userID -> role
	assignments map[string][]*model.Assignment
	ledger      map[string][]*model.Submission // courseID+assignmentID -> append order
	byID        map[string]*model.Submission
}

func NewStore() *Store {
	return &Store{
		users:       make(map[string]*model.User),
		courses:     make(map[string]*model.Course),
		memberships: make(map[string]map[string]string),
		assignments: make(map[string][]*model.Assignment),
		ledger:      make(map[string][]*model.Submission),
		byID:        make(map[string]*model.Submission),
	}
}

func ledgerKey(courseID, assignmentID string) string {
	return courseID + "\x00" + assignmentID
}

// nextTimestamp returns a microsecond-truncated timestamp strictly greater
// than prev. Callers must hold the write lock.
func nextTimestamp(prev time.Time) time.Time {
	ts := time.Now().UTC().Truncate(time.Microsecond)
	if !ts.After(prev) {
		ts = prev.Add(time.Microsecond)
	}
	return ts
}
