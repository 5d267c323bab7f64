package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"

	"course_exchange/internal/domain/codec"
	"course_exchange/internal/domain/repository"
	"course_exchange/internal/platform/database/inmem"
)

// testEnv wires every service against a fresh in-memory store, mirroring the
// single-store setup the server uses in memory mode.
type testEnv struct {
	users       repository.UserRepository
	courses     repository.CourseRepository
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository

	courseSvc     *CourseService
	assignmentSvc *AssignmentService
	submissionSvc *SubmissionService
	feedbackSvc   *FeedbackService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := inmem.NewStore()
	env := &testEnv{
		users:       inmem.NewUserRepository(store),
		courses:     inmem.NewCourseRepository(store),
		assignments: inmem.NewAssignmentRepository(store),
		submissions: inmem.NewSubmissionRepository(store),
	}
	env.courseSvc = NewCourseService(env.users, env.courses)
	env.assignmentSvc = NewAssignmentService(env.users, env.courses, env.assignments)
	env.submissionSvc = NewSubmissionService(env.users, env.courses, env.assignments, env.submissions)
	env.feedbackSvc = NewFeedbackService(env.users, env.courses, env.assignments, env.submissions)
	return env
}

// seedCourse creates a course taught by instructorID with the given students
// enrolled.
func (env *testEnv) seedCourse(t *testing.T, courseID, instructorID string, studentIDs ...string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, env.courseSvc.AddCourse(ctx, instructorID, courseID))
	for _, studentID := range studentIDs {
		_, err := env.users.GetOrCreate(ctx, studentID)
		require.NoError(t, err)
		require.NoError(t, env.courses.AddMember(ctx, courseID, studentID, "student"))
	}
}

func (env *testEnv) seedAssignment(t *testing.T, instructorID, courseID, assignmentID string, files []codec.File) {
	t.Helper()
	require.NoError(t, env.assignmentSvc.ReleaseAssignment(context.Background(), instructorID, courseID, assignmentID, files))
}

func wireFile(path, content string) codec.File {
	enc := base64.StdEncoding.EncodeToString([]byte(content))
	return codec.File{Path: path, Content: &enc}
}

func wireContent(t *testing.T, f codec.File) string {
	t.Helper()
	require.NotNil(t, f.Content)
	raw, err := base64.StdEncoding.DecodeString(*f.Content)
	require.NoError(t, err)
	return string(raw)
}
