package service

import (
	"context"
	"errors"

	"course_exchange/internal/common"
	"course_exchange/internal/domain/model"
	"course_exchange/internal/domain/repository"
)

// Shared existence checks. Every operation validates the request path in the
// same order: course, then assignment, then student, then authorization, then
// the request-specific payload.

func findCourse(ctx context.Context, courses repository.CourseRepository, courseID string) (*model.Course, error) {
	course, err := courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFoundf("Course not found")
		}
		return nil, err
	}
	return course, nil
}

func findAssignment(ctx context.Context, assignments repository.AssignmentRepository, courseID, assignmentID string) (*model.Assignment, error) {
	assignment, err := assignments.FindByID(ctx, courseID, assignmentID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFoundf("Assignment not found")
		}
		return nil, err
	}
	return assignment, nil
}

// findStudent verifies studentID holds a membership in the course.
func findStudent(ctx context.Context, courses repository.CourseRepository, courseID, studentID string) error {
	role, err := courses.RoleOf(ctx, courseID, studentID)
	if err != nil {
		return err
	}
	if role == "" {
		return common.NotFoundf("Student not found")
	}
	return nil
}
