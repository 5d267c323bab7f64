package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"course_exchange/internal/common"
	"course_exchange/internal/domain/codec"
	"course_exchange/internal/domain/model"
	"course_exchange/internal/domain/repository"
)

type SubmissionService struct {
	users       repository.UserRepository
	courses     repository.CourseRepository
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	guard       guard
}

func NewSubmissionService(
	users repository.UserRepository,
	courses repository.CourseRepository,
	assignments repository.AssignmentRepository,
	submissions repository.SubmissionRepository,
) *SubmissionService {
	return &SubmissionService{
		users:       users,
		courses:     courses,
		assignments: assignments,
		submissions: submissions,
		guard:       guard{courses: courses},
	}
}

// SubmissionInfo is the listing shape for one ledger entry.
type SubmissionInfo struct {
	StudentID string `json:"student_id"`
	Timestamp string `json:"timestamp"`
}

// ListSubmissions returns every submission of the assignment, all students,
// in ledger order. Instructors only.
func (s *SubmissionService) ListSubmissions(ctx context.Context, callerID, courseID, assignmentID string) ([]SubmissionInfo, error) {
	user, err := s.users.GetOrCreate(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if _, err := findCourse(ctx, s.courses, courseID); err != nil {
		return nil, err
	}
	if _, err := findAssignment(ctx, s.assignments, courseID, assignmentID); err != nil {
		return nil, err
	}
	if err := s.guard.requireInstructor(ctx, courseID, user.ID); err != nil {
		return nil, err
	}
	subs, err := s.submissions.ListByAssignment(ctx, courseID, assignmentID)
	if err != nil {
		return nil, err
	}
	return infos(subs), nil
}

// ListStudentSubmissions returns one student's submissions ascending by
// timestamp. Students may list their own; instructors may list anyone's.
func (s *SubmissionService) ListStudentSubmissions(ctx context.Context, callerID, courseID, assignmentID, studentID string) ([]SubmissionInfo, error) {
	user, err := s.users.GetOrCreate(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if _, err := findCourse(ctx, s.courses, courseID); err != nil {
		return nil, err
	}
	if _, err := findAssignment(ctx, s.assignments, courseID, assignmentID); err != nil {
		return nil, err
	}
	if err := findStudent(ctx, s.courses, courseID, studentID); err != nil {
		return nil, err
	}
	if err := s.guard.requireSelfOrInstructor(ctx, courseID, user.ID, studentID); err != nil {
		return nil, err
	}
	subs, err := s.submissions.ListByStudent(ctx, courseID, assignmentID, studentID)
	if err != nil {
		return nil, err
	}
	return infos(subs), nil
}

// Submit appends a new submission for the caller. Prior submissions for the
// same assignment remain untouched.
func (s *SubmissionService) Submit(ctx context.Context, callerID, courseID, assignmentID string, wire []codec.File) error {
	user, err := s.users.GetOrCreate(ctx, callerID)
	if err != nil {
		return err
	}
	if _, err := findCourse(ctx, s.courses, courseID); err != nil {
		return err
	}
	if _, err := findAssignment(ctx, s.assignments, courseID, assignmentID); err != nil {
		return err
	}
	if err := s.guard.requireMember(ctx, courseID, user.ID); err != nil {
		return err
	}
	if wire == nil {
		return common.Invalidf("Please supply files")
	}
	files, err := codec.Unpack(wire)
	if err != nil {
		return err
	}

	return s.submissions.Append(ctx, &model.Submission{
		ID:           uuid.NewString(),
		CourseID:     courseID,
		AssignmentID: assignmentID,
		StudentID:    user.ID,
		Files:        files,
	})
}

// DownloadSubmission returns the student's latest submission with its
// timestamp. Instructors only.
func (s *SubmissionService) DownloadSubmission(ctx context.Context, callerID, courseID, assignmentID, studentID string, listOnly bool) ([]codec.File, string, error) {
	user, err := s.users.GetOrCreate(ctx, callerID)
	if err != nil {
		return nil, "", err
	}
	if _, err := findCourse(ctx, s.courses, courseID); err != nil {
		return nil, "", err
	}
	if _, err := findAssignment(ctx, s.assignments, courseID, assignmentID); err != nil {
		return nil, "", err
	}
	if err := findStudent(ctx, s.courses, courseID, studentID); err != nil {
		return nil, "", err
	}
	if err := s.guard.requireInstructor(ctx, courseID, user.ID); err != nil {
		return nil, "", err
	}
	sub, err := s.submissions.Latest(ctx, courseID, assignmentID, studentID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.NotFoundf("Submission not found")
		}
		return nil, "", err
	}
	return codec.Pack(sub.Files, listOnly), model.FormatTimestamp(sub.Timestamp), nil
}

func infos(subs []model.Submission) []SubmissionInfo {
	out := make([]SubmissionInfo, 0, len(subs))
	for _, sub := range subs {
		out = append(out, SubmissionInfo{
			StudentID: sub.StudentID,
			Timestamp: model.FormatTimestamp(sub.Timestamp),
		})
	}
	return out
}
