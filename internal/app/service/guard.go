package service

import (
	"context"

	"course_exchange/internal/common"
	"course_exchange/internal/domain/model"
	"course_exchange/internal/domain/repository"
)

// guard evaluates role-based access rules from course membership. It assumes
// the entity existence checks already ran, so authorization failures never
// precede "not found" errors.
type guard struct {
	courses repository.CourseRepository
}

func (g guard) requireMember(ctx context.Context, courseID, userID string) error {
	role, err := g.courses.RoleOf(ctx, courseID, userID)
	if err != nil {
		return err
	}
	if role == "" {
		return common.Forbiddenf("Permission denied")
	}
	return nil
}

func (g guard) requireInstructor(ctx context.Context, courseID, userID string) error {
	role, err := g.courses.RoleOf(ctx, courseID, userID)
	if err != nil {
		return err
	}
	if role != model.RoleInstructor {
		return common.Forbiddenf("Permission denied")
	}
	return nil
}

// requireSelfOrInstructor lets students through for their own records only.
func (g guard) requireSelfOrInstructor(ctx context.Context, courseID, userID, studentID string) error {
	if userID == studentID {
		return nil
	}
	return g.requireInstructor(ctx, courseID, userID)
}
