package inmem

import (
	"context"
	"fmt"
	"time"

	"course_exchange/internal/common"
	"course_exchange/internal/domain/model"
	"course_exchange/internal/domain/repository"
)

type assignmentRepository struct {
	store *Store
}

func NewAssignmentRepository(store *Store) repository.AssignmentRepository {
	return &assignmentRepository{store: store}
}

func (r *assignmentRepository) Create(ctx context.Context, a *model.Assignment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.assignments[a.CourseID] {
		if existing.ID == a.ID {
			return fmt.Errorf("assignment %q already exists in %q: %w", a.ID, a.CourseID, common.ErrConflict)
		}
	}
	stored := &model.Assignment{
		ID:        a.ID,
		CourseID:  a.CourseID,
		Files:     a.Files.Clone(),
		CreatedAt: time.Now().UTC(),
	}
	r.store.assignments[a.CourseID] = append(r.store.assignments[a.CourseID], stored)
	return nil
}

func (r *assignmentRepository) FindByID(ctx context.Context, courseID, assignmentID string) (*model.Assignment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, a := range r.store.assignments[courseID] {
		if a.ID == assignmentID {
			clone := *a
			clone.Files = a.Files.Clone()
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *assignmentRepository) ListByCourse(ctx context.Context, courseID string) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := make([]string, 0, len(r.store.assignments[courseID]))
	for _, a := range r.store.assignments[courseID] {
		ids = append(ids, a.ID)
	}
	return ids, nil
}
