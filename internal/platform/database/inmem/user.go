package inmem

import (
	"context"
	"time"

	"course_exchange/internal/domain/model"
	"course_exchange/internal/domain/repository"
)

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) GetOrCreate(ctx context.Context, id string) (*model.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if u, ok := r.store.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	u := &model.User{ID: id, CreatedAt: time.Now().UTC()}
	r.store.users[id] = u
	clone := *u
	return &clone, nil
}
