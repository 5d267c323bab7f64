package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"course_exchange/internal/common"
	"course_exchange/internal/domain/model"
)

// SubmissionRepository is the append-only submission ledger plus the feedback
// overlay attached to individual submissions.
type SubmissionRepository interface {
	// Append stores a new submission and assigns sub.Timestamp: microsecond
	// resolution, strictly greater than any prior timestamp for the same
	// (assignment, student) pair.
	Append(ctx context.Context, sub *model.Submission) error
	// ListByAssignment returns every submission of the assignment in ledger
	// (creation) order, without file contents.
	ListByAssignment(ctx context.Context, courseID, assignmentID string) ([]model.Submission, error)
	// ListByStudent is ListByAssignment filtered to one student, ascending by
	// timestamp.
	ListByStudent(ctx context.Context, courseID, assignmentID, studentID string) ([]model.Submission, error)
	// Latest returns the maximum-timestamp submission with files and feedback
	// loaded, or ErrNotFound.
	Latest(ctx context.Context, courseID, assignmentID, studentID string) (*model.Submission, error)
	// FindByTimestamp resolves a submission by exact timestamp match, with
	// files and feedback loaded, or ErrNotFound. No tolerance is applied.
	FindByTimestamp(ctx context.Context, courseID, assignmentID, studentID string, ts time.Time) (*model.Submission, error)
	// ReplaceFeedback atomically swaps the feedback collection of the
	// submission; a concurrent reader sees either the old or the new overlay.
	ReplaceFeedback(ctx context.Context, submissionID string, files model.FileCollection) error
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

func (r *pgSubmissionRepository) Append(ctx context.Context, sub *model.Submission) error {
	// Two concurrent appends for the same pair can compute the same
	// timestamp; the unique ledger constraint rejects the loser and we retry
	// with a fresh clock reading.
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		err = r.append(ctx, sub)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return err
	}
	return fmt.Errorf("pgSubmissionRepository.Append: retries exhausted: %w", err)
}

func (r *pgSubmissionRepository) append(ctx context.Context, sub *model.Submission) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.Append: begin: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO submissions (id, course_id, assignment_id, student_id, submitted_at)
	          VALUES ($1, $2, $3, $4, GREATEST(
	              date_trunc('microseconds', clock_timestamp()),
	              COALESCE((SELECT max(submitted_at) + interval '1 microsecond'
	                        FROM submissions
	                        WHERE course_id = $2 AND assignment_id = $3 AND student_id = $4),
	                       '-infinity')))
	          RETURNING submitted_at`
	if err := tx.QueryRowContext(ctx, query, sub.ID, sub.CourseID, sub.AssignmentID, sub.StudentID).
		Scan(&sub.Timestamp); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return err
		}
		return fmt.Errorf("pgSubmissionRepository.Append: %w", err)
	}

	fileQuery := `INSERT INTO submission_files (submission_id, pos, path, content)
	              VALUES ($1, $2, $3, $4)`
	for i, f := range sub.Files {
		if _, err := tx.ExecContext(ctx, fileQuery, sub.ID, i, f.Path, f.Content); err != nil {
			return fmt.Errorf("pgSubmissionRepository.Append: file %q: %w", f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("pgSubmissionRepository.Append: commit: %w", err)
	}
	sub.Timestamp = sub.Timestamp.UTC()
	return nil
}

func (r *pgSubmissionRepository) ListByAssignment(ctx context.Context, courseID, assignmentID string) ([]model.Submission, error) {
	query := `SELECT id, course_id, assignment_id, student_id, submitted_at, has_feedback
	          FROM submissions
	          WHERE course_id = $1 AND assignment_id = $2
	          ORDER BY submitted_at`
	return r.list(ctx, query, courseID, assignmentID)
}

func (r *pgSubmissionRepository) ListByStudent(ctx context.Context, courseID, assignmentID, studentID string) ([]model.Submission, error) {
	query := `SELECT id, course_id, assignment_id, student_id, submitted_at, has_feedback
	          FROM submissions
	          WHERE course_id = $1 AND assignment_id = $2 AND student_id = $3
	          ORDER BY submitted_at`
	return r.list(ctx, query, courseID, assignmentID, studentID)
}

func (r *pgSubmissionRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.Submission, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.list: %w", err)
	}
	defer rows.Close()

	subs := make([]model.Submission, 0)
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.ID, &s.CourseID, &s.AssignmentID, &s.StudentID, &s.Timestamp, &s.HasFeedback); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.list: scan: %w", err)
		}
		s.Timestamp = s.Timestamp.UTC()
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.list: rows: %w", err)
	}
	return subs, nil
}

func (r *pgSubmissionRepository) Latest(ctx context.Context, courseID, assignmentID, studentID string) (*model.Submission, error) {
	query := `SELECT id, course_id, assignment_id, student_id, submitted_at, has_feedback
	          FROM submissions
	          WHERE course_id = $1 AND assignment_id = $2 AND student_id = $3
	          ORDER BY submitted_at DESC
	          LIMIT 1`
	return r.one(ctx, query, courseID, assignmentID, studentID)
}

func (r *pgSubmissionRepository) FindByTimestamp(ctx context.Context, courseID, assignmentID, studentID string, ts time.Time) (*model.Submission, error) {
	query := `SELECT id, course_id, assignment_id, student_id, submitted_at, has_feedback
	          FROM submissions
	          WHERE course_id = $1 AND assignment_id = $2 AND student_id = $3 AND submitted_at = $4`
	return r.one(ctx, query, courseID, assignmentID, studentID, ts)
}

func (r *pgSubmissionRepository) one(ctx context.Context, query string, args ...interface{}) (*model.Submission, error) {
	s := &model.Submission{}
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&s.ID, &s.CourseID, &s.AssignmentID, &s.StudentID, &s.Timestamp, &s.HasFeedback)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.one: %w", err)
	}
	s.Timestamp = s.Timestamp.UTC()

	s.Files, err = r.files(ctx, `SELECT path, content FROM submission_files WHERE submission_id = $1 ORDER BY pos`, s.ID)
	if err != nil {
		return nil, err
	}
	if s.HasFeedback {
		s.Feedback, err = r.files(ctx, `SELECT path, content FROM feedback_files WHERE submission_id = $1 ORDER BY pos`, s.ID)
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (r *pgSubmissionRepository) files(ctx context.Context, query, submissionID string) (model.FileCollection, error) {
	rows, err := r.db.QueryContext(ctx, query, submissionID)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.files: %w", err)
	}
	defer rows.Close()

	files := make(model.FileCollection, 0)
	for rows.Next() {
		var f model.FileEntry
		if err := rows.Scan(&f.Path, &f.Content); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.files: scan: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.files: rows: %w", err)
	}
	return files, nil
}

func (r *pgSubmissionRepository) ReplaceFeedback(ctx context.Context, submissionID string, files model.FileCollection) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.ReplaceFeedback: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM feedback_files WHERE submission_id = $1`, submissionID); err != nil {
		return fmt.Errorf("pgSubmissionRepository.ReplaceFeedback: clear: %w", err)
	}
	query := `INSERT INTO feedback_files (submission_id, pos, path, content) VALUES ($1, $2, $3, $4)`
	for i, f := range files {
		if _, err := tx.ExecContext(ctx, query, submissionID, i, f.Path, f.Content); err != nil {
			return fmt.Errorf("pgSubmissionRepository.ReplaceFeedback: file %q: %w", f.Path, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `UPDATE submissions SET has_feedback = TRUE WHERE id = $1`, submissionID); err != nil {
		return fmt.Errorf("pgSubmissionRepository.ReplaceFeedback: mark: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("pgSubmissionRepository.ReplaceFeedback: commit: %w", err)
	}
	return nil
}
