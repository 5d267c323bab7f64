package repository

import (
	"context"
	"database/sql"
	"fmt"

	"course_exchange/internal/domain/model"
)

// UserRepository resolves caller ids to users. A previously unseen id becomes
// a new user; resolution is idempotent.
type UserRepository interface {
	GetOrCreate(ctx context.Context, id string) (*model.User, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) GetOrCreate(ctx context.Context, id string) (*model.User, error) {
	// The no-op update makes RETURNING yield the row on conflict as well.
	query := `INSERT INTO users (id) VALUES ($1)
	          ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
	          RETURNING id, created_at`
	user := &model.User{}
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.CreatedAt); err != nil {
		return nil, fmt.Errorf("pgUserRepository.GetOrCreate: %w", err)
	}
	return user, nil
}
