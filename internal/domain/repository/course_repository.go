package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"course_exchange/internal/common"
	"course_exchange/internal/domain/model"
)

// CourseRepository stores courses and their memberships.
type CourseRepository interface {
	// Create inserts the course and grants instructorID the instructor role,
	// atomically with the existence check. Returns ErrConflict when the id is
	// taken.
	Create(ctx context.Context, courseID, instructorID string) error
	FindByID(ctx context.Context, courseID string) (*model.Course, error)
	// AddMember enrolls a user into an existing course.
	AddMember(ctx context.Context, courseID, userID, role string) error
	// MembershipsOf aggregates the courses userID teaches and takes.
	MembershipsOf(ctx context.Context, userID string) (*model.Memberships, error)
	// RoleOf reports userID's role in the course, or "" without error when
	// there is no membership.
	RoleOf(ctx context.Context, courseID, userID string) (string, error)
}

type pgCourseRepository struct {
	db *sql.DB
}

func NewPgCourseRepository(db *sql.DB) CourseRepository {
	return &pgCourseRepository{db: db}
}

func (r *pgCourseRepository) Create(ctx context.Context, courseID, instructorID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pgCourseRepository.Create: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT INTO courses (id) VALUES ($1)`, courseID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("course %q already exists: %w", courseID, common.ErrConflict)
		}
		return fmt.Errorf("pgCourseRepository.Create: %w", err)
	}

	query := `INSERT INTO memberships (course_id, user_id, role) VALUES ($1, $2, $3)`
	if _, err := tx.ExecContext(ctx, query, courseID, instructorID, model.RoleInstructor); err != nil {
		return fmt.Errorf("pgCourseRepository.Create: membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("pgCourseRepository.Create: commit: %w", err)
	}
	return nil
}

func (r *pgCourseRepository) FindByID(ctx context.Context, courseID string) (*model.Course, error) {
	query := `SELECT id, created_at FROM courses WHERE id = $1`
	course := &model.Course{}
	err := r.db.QueryRowContext(ctx, query, courseID).Scan(&course.ID, &course.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCourseRepository.FindByID: %w", err)
	}
	return course, nil
}

func (r *pgCourseRepository) AddMember(ctx context.Context, courseID, userID, role string) error {
	query := `INSERT INTO memberships (course_id, user_id, role) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, courseID, userID, role); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("user %q is already a member of %q: %w", userID, courseID, common.ErrConflict)
		}
		return fmt.Errorf("pgCourseRepository.AddMember: %w", err)
	}
	return nil
}

func (r *pgCourseRepository) MembershipsOf(ctx context.Context, userID string) (*model.Memberships, error) {
	query := `SELECT course_id, role FROM memberships WHERE user_id = $1`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgCourseRepository.MembershipsOf: %w", err)
	}
	defer rows.Close()

	ms := &model.Memberships{}
	for rows.Next() {
		var courseID, role string
		if err := rows.Scan(&courseID, &role); err != nil {
			return nil, fmt.Errorf("pgCourseRepository.MembershipsOf: scan: %w", err)
		}
		if role == model.RoleInstructor {
			ms.Taught = append(ms.Taught, courseID)
		} else {
			ms.Taken = append(ms.Taken, courseID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCourseRepository.MembershipsOf: rows: %w", err)
	}
	return ms, nil
}

func (r *pgCourseRepository) RoleOf(ctx context.Context, courseID, userID string) (string, error) {
	query := `SELECT role FROM memberships WHERE course_id = $1 AND user_id = $2`
	var role string
	err := r.db.QueryRowContext(ctx, query, courseID, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("pgCourseRepository.RoleOf: %w", err)
	}
	return role, nil
}
