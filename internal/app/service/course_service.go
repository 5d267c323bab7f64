package service

import (
	"context"
	"errors"
	"sort"

	"course_exchange/internal/common"
	"course_exchange/internal/domain/repository"
)

type CourseService struct {
	users   repository.UserRepository
	courses repository.CourseRepository
}

func NewCourseService(users repository.UserRepository, courses repository.CourseRepository) *CourseService {
	return &CourseService{users: users, courses: courses}
}

// ListCourses returns the ids of every course the caller teaches or takes,
// sorted.
func (s *CourseService) ListCourses(ctx context.Context, callerID string) ([]string, error) {
	user, err := s.users.GetOrCreate(ctx, callerID)
	if err != nil {
		return nil, err
	}
	ms, err := s.courses.MembershipsOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	ids := make([]string, 0, len(ms.Taught)+len(ms.Taken))
	for _, id := range append(ms.Taught, ms.Taken...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// AddCourse creates a course with the caller as its first instructor.
func (s *CourseService) AddCourse(ctx context.Context, callerID, courseID string) error {
	user, err := s.users.GetOrCreate(ctx, callerID)
	if err != nil {
		return err
	}
	if err := s.courses.Create(ctx, courseID, user.ID); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return common.Conflictf("Course already exists")
		}
		return err
	}
	return nil
}
