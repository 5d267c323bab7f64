package service

import (
	"context"
	"errors"
	"time"

	"course_exchange/internal/common"
	"course_exchange/internal/domain/codec"
	"course_exchange/internal/domain/model"
	"course_exchange/internal/domain/repository"
)

type FeedbackService struct {
	users       repository.UserRepository
	courses     repository.CourseRepository
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	guard       guard
}

func NewFeedbackService(
	users repository.UserRepository,
	courses repository.CourseRepository,
	assignments repository.AssignmentRepository,
	submissions repository.SubmissionRepository,
) *FeedbackService {
	return &FeedbackService{
		users:       users,
		courses:     courses,
		assignments: assignments,
		submissions: submissions,
		guard:       guard{courses: courses},
	}
}

// Upload replaces the feedback collection of the submission matching the
// supplied timestamp exactly. Instructors only; repeat uploads replace the
// previous feedback wholesale.
func (s *FeedbackService) Upload(ctx context.Context, callerID, courseID, assignmentID, studentID, timestamp string, wire []codec.File) error {
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
	if err := findStudent(ctx, s.courses, courseID, studentID); err != nil {
		return err
	}
	if err := s.guard.requireInstructor(ctx, courseID, user.ID); err != nil {
		return err
	}
	sub, err := s.exactSubmission(ctx, courseID, assignmentID, studentID, timestamp)
	if err != nil {
		return err
	}
	if wire == nil {
		return common.Invalidf("Please supply files")
	}
	files, err := codec.Unpack(wire)
	if err != nil {
		return err
	}
	return s.submissions.ReplaceFeedback(ctx, sub.ID, files)
}

// Download returns the feedback attached to the submission matching the
// supplied timestamp exactly. Students may fetch their own; instructors
// anyone's.
func (s *FeedbackService) Download(ctx context.Context, callerID, courseID, assignmentID, studentID, timestamp string, listOnly bool) ([]codec.File, string, error) {
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
	if err := s.guard.requireSelfOrInstructor(ctx, courseID, user.ID, studentID); err != nil {
		return nil, "", err
	}
	sub, err := s.exactSubmission(ctx, courseID, assignmentID, studentID, timestamp)
	if err != nil {
		return nil, "", err
	}
	if !sub.HasFeedback {
		return nil, "", common.NotFoundf("Feedback not found")
	}
	return codec.Pack(sub.Feedback, listOnly), model.FormatTimestamp(sub.Timestamp), nil
}

func (s *FeedbackService) exactSubmission(ctx context.Context, courseID, assignmentID, studentID, timestamp string) (*model.Submission, error) {
	if timestamp == "" {
		return nil, common.Invalidf("Please supply timestamp")
	}
	ts, err := model.ParseTimestamp(timestamp)
	if err != nil {
		return nil, common.Invalidf("Timestamp cannot be parsed")
	}
	sub, err := s.submissions.FindByTimestamp(ctx, courseID, assignmentID, studentID, ts.Truncate(time.Microsecond))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFoundf("Submission not found")
		}
		return nil, err
	}
	return sub, nil
}
