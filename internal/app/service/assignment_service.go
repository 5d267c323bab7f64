package service

import (
	"context"
	"errors"

	"course_exchange/internal/common"
	"course_exchange/internal/domain/codec"
	"course_exchange/internal/domain/model"
	"course_exchange/internal/domain/repository"
)

type AssignmentService struct {
	users       repository.UserRepository
	courses     repository.CourseRepository
	assignments repository.AssignmentRepository
	guard       guard
}

func NewAssignmentService(
	users repository.UserRepository,
	courses repository.CourseRepository,
	assignments repository.AssignmentRepository,
) *AssignmentService {
	return &AssignmentService{
		users:       users,
		courses:     courses,
		assignments: assignments,
		guard:       guard{courses: courses},
	}
}

// ListAssignments returns the course's assignment ids in creation order.
// Students and instructors only.
func (s *AssignmentService) ListAssignments(ctx context.Context, callerID, courseID string) ([]string, error) {
	user, err := s.users.GetOrCreate(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if _, err := findCourse(ctx, s.courses, courseID); err != nil {
		return nil, err
	}
	if err := s.guard.requireMember(ctx, courseID, user.ID); err != nil {
		return nil, err
	}
	return s.assignments.ListByCourse(ctx, courseID)
}

// DownloadAssignment returns the assignment's files, paths only when listOnly
// is set. Students and instructors only.
func (s *AssignmentService) DownloadAssignment(ctx context.Context, callerID, courseID, assignmentID string, listOnly bool) ([]codec.File, error) {
	user, err := s.users.GetOrCreate(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if _, err := findCourse(ctx, s.courses, courseID); err != nil {
		return nil, err
	}
	assignment, err := findAssignment(ctx, s.assignments, courseID, assignmentID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.requireMember(ctx, courseID, user.ID); err != nil {
		return nil, err
	}
	return codec.Pack(assignment.Files, listOnly), nil
}

// ReleaseAssignment publishes a new assignment. Instructors only; an
// assignment is released exactly once per id.
func (s *AssignmentService) ReleaseAssignment(ctx context.Context, callerID, courseID, assignmentID string, wire []codec.File) error {
	user, err := s.users.GetOrCreate(ctx, callerID)
	if err != nil {
		return err
	}
	if _, err := findCourse(ctx, s.courses, courseID); err != nil {
		return err
	}
	if err := s.guard.requireInstructor(ctx, courseID, user.ID); err != nil {
		return err
	}
	if _, err := s.assignments.FindByID(ctx, courseID, assignmentID); err == nil {
		return common.Conflictf("Assignment already exists")
	} else if !errors.Is(err, common.ErrNotFound) {
		return err
	}
	if wire == nil {
		return common.Invalidf("Please supply files")
	}
	files, err := codec.Unpack(wire)
	if err != nil {
		return err
	}

	err = s.assignments.Create(ctx, &model.Assignment{ID: assignmentID, CourseID: courseID, Files: files})
	if err != nil {
		// Lost a race with a concurrent release of the same id.
		if errors.Is(err, common.ErrConflict) {
			return common.Conflictf("Assignment already exists")
		}
		return err
	}
	return nil
}
