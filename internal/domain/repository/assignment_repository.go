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

// AssignmentRepository stores released assignments and their immutable file
// collections.
type AssignmentRepository interface {
	// Create inserts the assignment with its files, atomically with the
	// existence check. Returns ErrConflict when the id is taken within the
	// course.
	Create(ctx context.Context, a *model.Assignment) error
	FindByID(ctx context.Context, courseID, assignmentID string) (*model.Assignment, error)
	// ListByCourse returns assignment ids in creation order.
	ListByCourse(ctx context.Context, courseID string) ([]string, error)
}

type pgAssignmentRepository struct {
	db *sql.DB
}

func NewPgAssignmentRepository(db *sql.DB) AssignmentRepository {
	return &pgAssignmentRepository{db: db}
}

func (r *pgAssignmentRepository) Create(ctx context.Context, a *model.Assignment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pgAssignmentRepository.Create: begin: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO assignments (course_id, id) VALUES ($1, $2)`
	if _, err := tx.ExecContext(ctx, query, a.CourseID, a.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("assignment %q already exists in %q: %w", a.ID, a.CourseID, common.ErrConflict)
		}
		return fmt.Errorf("pgAssignmentRepository.Create: %w", err)
	}

	fileQuery := `INSERT INTO assignment_files (course_id, assignment_id, pos, path, content)
	              VALUES ($1, $2, $3, $4, $5)`
	for i, f := range a.Files {
		if _, err := tx.ExecContext(ctx, fileQuery, a.CourseID, a.ID, i, f.Path, f.Content); err != nil {
			return fmt.Errorf("pgAssignmentRepository.Create: file %q: %w", f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("pgAssignmentRepository.Create: commit: %w", err)
	}
	return nil
}

func (r *pgAssignmentRepository) FindByID(ctx context.Context, courseID, assignmentID string) (*model.Assignment, error) {
	query := `SELECT course_id, id, created_at FROM assignments WHERE course_id = $1 AND id = $2`
	a := &model.Assignment{}
	err := r.db.QueryRowContext(ctx, query, courseID, assignmentID).Scan(&a.CourseID, &a.ID, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAssignmentRepository.FindByID: %w", err)
	}

	fileQuery := `SELECT path, content FROM assignment_files
	              WHERE course_id = $1 AND assignment_id = $2 ORDER BY pos`
	rows, err := r.db.QueryContext(ctx, fileQuery, courseID, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("pgAssignmentRepository.FindByID: files: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f model.FileEntry
		if err := rows.Scan(&f.Path, &f.Content); err != nil {
			return nil, fmt.Errorf("pgAssignmentRepository.FindByID: scan file: %w", err)
		}
		a.Files = append(a.Files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgAssignmentRepository.FindByID: rows: %w", err)
	}
	return a, nil
}

func (r *pgAssignmentRepository) ListByCourse(ctx context.Context, courseID string) ([]string, error) {
	query := `SELECT id FROM assignments WHERE course_id = $1 ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("pgAssignmentRepository.ListByCourse: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("pgAssignmentRepository.ListByCourse: scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgAssignmentRepository.ListByCourse: rows: %w", err)
	}
	return ids, nil
}
