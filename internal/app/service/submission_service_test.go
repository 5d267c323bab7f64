package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course_exchange/internal/common"
	"course_exchange/internal/domain/codec"
	"course_exchange/internal/domain/model"
)

func seedChallenge(t *testing.T, env *testEnv) {
	t.Helper()
	env.seedCourse(t, "course1", "eric", "lawrence", "kevin")
	env.seedAssignment(t, "eric", "course1", "challenge", []codec.File{wireFile("file2", "22222")})
}

func TestSubmitTwiceKeepsBothVersions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedChallenge(t, env)

	require.NoError(t, env.submissionSvc.Submit(ctx, "lawrence", "course1", "challenge",
		[]codec.File{wireFile("a", "first")}))
	require.NoError(t, env.submissionSvc.Submit(ctx, "lawrence", "course1", "challenge",
		[]codec.File{wireFile("a", "second")}))

	subs, err := env.submissionSvc.ListStudentSubmissions(ctx, "lawrence", "course1", "challenge", "lawrence")
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Less(t, subs[0].Timestamp, subs[1].Timestamp)

	// latest returns the second version
	files, timestamp, err := env.submissionSvc.DownloadSubmission(ctx, "eric", "course1", "challenge", "lawrence", false)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "second", wireContent(t, files[0]))
	assert.Equal(t, subs[1].Timestamp, timestamp)
}

func TestSubmitAccumulatesOnSeededLedger(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedChallenge(t, env)

	// two pre-seeded submissions, then two more from this run
	for i := 0; i < 2; i++ {
		require.NoError(t, env.submissionSvc.Submit(ctx, "lawrence", "course1", "challenge",
			[]codec.File{wireFile("a", "seed")}))
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, env.submissionSvc.Submit(ctx, "lawrence", "course1", "challenge",
			[]codec.File{wireFile("a", "jkl"), wireFile("b", "jkl")}))
	}

	subs, err := env.submissionSvc.ListStudentSubmissions(ctx, "lawrence", "course1", "challenge", "lawrence")
	require.NoError(t, err)
	assert.Len(t, subs, 4)
}

func TestSubmitValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedChallenge(t, env)

	bad := "amtsCg"
	tests := []struct {
		name         string
		callerID     string
		courseID     string
		assignmentID string
		files        []codec.File
		wantMsg      string
	}{
		{name: "course missing", callerID: "lawrence", courseID: "jkl", assignmentID: "challenge", files: []codec.File{wireFile("a", "1")}, wantMsg: "Course not found"},
		{name: "assignment missing", callerID: "lawrence", courseID: "course1", assignmentID: "challenges", files: []codec.File{wireFile("a", "1")}, wantMsg: "Assignment not found"},
		{name: "outsider", callerID: "mallory", courseID: "course1", assignmentID: "challenge", files: []codec.File{wireFile("a", "1")}, wantMsg: "Permission denied"},
		{name: "missing files", callerID: "lawrence", courseID: "course1", assignmentID: "challenge", files: nil, wantMsg: "Please supply files"},
		{name: "bad base64", callerID: "lawrence", courseID: "course1", assignmentID: "challenge", files: []codec.File{{Path: "a", Content: &bad}}, wantMsg: "Content cannot be base64 decoded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.submissionSvc.Submit(ctx, tt.callerID, tt.courseID, tt.assignmentID, tt.files)
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, common.Message(err))
		})
	}

	// None of the failing submits reached the ledger.
	subs, err := env.submissionSvc.ListStudentSubmissions(ctx, "lawrence", "course1", "challenge", "lawrence")
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestListSubmissionsInstructorOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedChallenge(t, env)

	require.NoError(t, env.submissionSvc.Submit(ctx, "lawrence", "course1", "challenge",
		[]codec.File{wireFile("a", "1")}))
	require.NoError(t, env.submissionSvc.Submit(ctx, "kevin", "course1", "challenge",
		[]codec.File{wireFile("a", "2")}))
	require.NoError(t, env.submissionSvc.Submit(ctx, "lawrence", "course1", "challenge",
		[]codec.File{wireFile("a", "3")}))

	// ledger order across students
	subs, err := env.submissionSvc.ListSubmissions(ctx, "eric", "course1", "challenge")
	require.NoError(t, err)
	require.Len(t, subs, 3)
	assert.Equal(t, "lawrence", subs[0].StudentID)
	assert.Equal(t, "kevin", subs[1].StudentID)
	assert.Equal(t, "lawrence", subs[2].StudentID)

	_, err = env.submissionSvc.ListSubmissions(ctx, "lawrence", "course1", "challenge")
	require.Error(t, err)
	assert.Equal(t, "Permission denied", common.Message(err))
}

func TestListStudentSubmissionsAccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedChallenge(t, env)

	require.NoError(t, env.submissionSvc.Submit(ctx, "lawrence", "course1", "challenge",
		[]codec.File{wireFile("a", "1")}))

	// students see their own, instructors see anyone's
	subs, err := env.submissionSvc.ListStudentSubmissions(ctx, "lawrence", "course1", "challenge", "lawrence")
	require.NoError(t, err)
	assert.Len(t, subs, 1)

	subs, err = env.submissionSvc.ListStudentSubmissions(ctx, "eric", "course1", "challenge", "lawrence")
	require.NoError(t, err)
	assert.Len(t, subs, 1)

	_, err = env.submissionSvc.ListStudentSubmissions(ctx, "kevin", "course1", "challenge", "lawrence")
	require.Error(t, err)
	assert.Equal(t, "Permission denied", common.Message(err))

	_, err = env.submissionSvc.ListStudentSubmissions(ctx, "eric", "course1", "challenge", "mallory")
	require.Error(t, err)
	assert.Equal(t, "Student not found", common.Message(err))
}

func TestDownloadSubmission(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedChallenge(t, env)

	_, _, err := env.submissionSvc.DownloadSubmission(ctx, "eric", "course1", "challenge", "lawrence", false)
	require.Error(t, err)
	assert.Equal(t, "Submission not found", common.Message(err))

	require.NoError(t, env.submissionSvc.Submit(ctx, "lawrence", "course1", "challenge",
		[]codec.File{wireFile("a", "work")}))

	files, timestamp, err := env.submissionSvc.DownloadSubmission(ctx, "eric", "course1", "challenge", "lawrence", false)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "work", wireContent(t, files[0]))

	// the reported timestamp round-trips through the wire format
	ts, err := model.ParseTimestamp(timestamp)
	require.NoError(t, err)
	assert.Equal(t, timestamp, model.FormatTimestamp(ts))

	// students cannot download submissions, not even their own
	_, _, err = env.submissionSvc.DownloadSubmission(ctx, "lawrence", "course1", "challenge", "lawrence", false)
	require.Error(t, err)
	assert.Equal(t, "Permission denied", common.Message(err))
}
