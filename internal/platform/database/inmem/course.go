package inmem

import (
	"context"
	"fmt"
	"time"

	"course_exchange/internal/common"
	"course_exchange/internal/domain/model"
	"course_exchange/internal/domain/repository"
)

type courseRepository struct {
	store *Store
}

func NewCourseRepository(store *Store) repository.CourseRepository {
	return &courseRepository{store: store}
}

func (r *courseRepository) Create(ctx context.Context, courseID, instructorID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.courses[courseID]; ok {
		return fmt.Errorf("course %q already exists: %w", courseID, common.ErrConflict)
	}
	r.store.courses[courseID] = &model.Course{ID: courseID, CreatedAt: time.Now().UTC()}
	r.store.memberships[courseID] = map[string]string{instructorID: model.RoleInstructor}
	return nil
}

func (r *courseRepository) FindByID(ctx context.Context, courseID string) (*model.Course, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.courses[courseID]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *courseRepository) AddMember(ctx context.Context, courseID, userID, role string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	members, ok := r.store.memberships[courseID]
	if !ok {
		return common.ErrNotFound
	}
	if _, ok := members[userID]; ok {
		return fmt.Errorf("user %q is already a member of %q: %w", userID, courseID, common.ErrConflict)
	}
	members[userID] = role
	return nil
}

func (r *courseRepository) MembershipsOf(ctx context.Context, userID string) (*model.Memberships, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ms := &model.Memberships{}
	for courseID, members := range r.store.memberships {
		switch members[userID] {
		case model.RoleInstructor:
			ms.Taught = append(ms.Taught, courseID)
		case model.RoleStudent:
			ms.Taken = append(ms.Taken, courseID)
		}
	}
	return ms, nil
}

func (r *courseRepository) RoleOf(ctx context.Context, courseID, userID string) (string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.memberships[courseID][userID], nil
}
