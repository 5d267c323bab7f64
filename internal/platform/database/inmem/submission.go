package inmem

import (
	"context"
	"time"

	"course_exchange/internal/common"
	"course_exchange/internal/domain/model"
	"course_exchange/internal/domain/repository"
)

type submissionRepository struct {
	store *Store
}

func NewSubmissionRepository(store *Store) repository.SubmissionRepository {
	return &submissionRepository{store: store}
}

func (r *submissionRepository) Append(ctx context.Context, sub *model.Submission) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := ledgerKey(sub.CourseID, sub.AssignmentID)
	var prev time.Time
	for _, s := range r.store.ledger[key] {
		if s.StudentID == sub.StudentID && s.Timestamp.After(prev) {
			prev = s.Timestamp
		}
	}
	sub.Timestamp = nextTimestamp(prev)

	stored := &model.Submission{
		ID:           sub.ID,
		CourseID:     sub.CourseID,
		AssignmentID: sub.AssignmentID,
		StudentID:    sub.StudentID,
		Timestamp:    sub.Timestamp,
		Files:        sub.Files.Clone(),
	}
	r.store.ledger[key] = append(r.store.ledger[key], stored)
	r.store.byID[stored.ID] = stored
	return nil
}

func (r *submissionRepository) ListByAssignment(ctx context.Context, courseID, assignmentID string) ([]model.Submission, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	subs := make([]model.Submission, 0)
	for _, s := range r.store.ledger[ledgerKey(courseID, assignmentID)] {
		subs = append(subs, meta(s))
	}
	return subs, nil
}

func (r *submissionRepository) ListByStudent(ctx context.Context, courseID, assignmentID, studentID string) ([]model.Submission, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	subs := make([]model.Submission, 0)
	for _, s := range r.store.ledger[ledgerKey(courseID, assignmentID)] {
		if s.StudentID == studentID {
			subs = append(subs, meta(s))
		}
	}
	return subs, nil
}

func (r *submissionRepository) Latest(ctx context.Context, courseID, assignmentID, studentID string) (*model.Submission, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var latest *model.Submission
	for _, s := range r.store.ledger[ledgerKey(courseID, assignmentID)] {
		if s.StudentID != studentID {
			continue
		}
		if latest == nil || s.Timestamp.After(latest.Timestamp) {
			latest = s
		}
	}
	if latest == nil {
		return nil, common.ErrNotFound
	}
	return full(latest), nil
}

func (r *submissionRepository) FindByTimestamp(ctx context.Context, courseID, assignmentID, studentID string, ts time.Time) (*model.Submission, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, s := range r.store.ledger[ledgerKey(courseID, assignmentID)] {
		if s.StudentID == studentID && s.Timestamp.Equal(ts) {
			return full(s), nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *submissionRepository) ReplaceFeedback(ctx context.Context, submissionID string, files model.FileCollection) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s, ok := r.store.byID[submissionID]
	if !ok {
		return common.ErrNotFound
	}
	s.Feedback = files.Clone()
	s.HasFeedback = true
	return nil
}

// meta copies the listing fields only; files stay in the store.
func meta(s *model.Submission) model.Submission {
	return model.Submission{
		ID:           s.ID,
		CourseID:     s.CourseID,
		AssignmentID: s.AssignmentID,
		StudentID:    s.StudentID,
		Timestamp:    s.Timestamp,
		HasFeedback:  s.HasFeedback,
	}
}

func full(s *model.Submission) *model.Submission {
	clone := meta(s)
	clone.Files = s.Files.Clone()
	clone.Feedback = s.Feedback.Clone()
	return &clone
}
