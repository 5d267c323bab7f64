package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"course_exchange/internal/app/service"
	"course_exchange/internal/platform/database/inmem"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store := inmem.NewStore()
	users := inmem.NewUserRepository(store)
	courses := inmem.NewCourseRepository(store)
	assignments := inmem.NewAssignmentRepository(store)
	submissions := inmem.NewSubmissionRepository(store)

	return NewRouter(
		zap.NewNop(),
		service.NewCourseService(users, courses),
		service.NewAssignmentService(users, courses, assignments),
		service.NewSubmissionService(users, courses, assignments, submissions),
		service.NewFeedbackService(users, courses, assignments, submissions),
	)
}

func do(t *testing.T, router http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func encodedFiles(contents map[string]string) map[string]interface{} {
	files := make([]map[string]string, 0, len(contents))
	for path, content := range contents {
		files = append(files, map[string]string{
			"path":    path,
			"content": base64.StdEncoding.EncodeToString([]byte(content)),
		})
	}
	return map[string]interface{}{"files": files}
}

func TestMissingUserParam(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/courses", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	payload := decode(t, rec)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Please supply user", payload["message"])
}

func TestHealthNeedsNoUser(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestAddAndListCourses(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/course/course1?user=eric", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["success"])

	rec = do(t, router, http.MethodPost, "/api/course/course1?user=kevin", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	payload := decode(t, rec)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Course already exists", payload["message"])

	rec = do(t, router, http.MethodGet, "/api/courses?user=eric", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	payload = decode(t, rec)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, []interface{}{"course1"}, payload["courses"])
}

func TestReleaseAndDownloadAssignment(t *testing.T) {
	router := newTestRouter(t)

	require.Equal(t, http.StatusOK,
		do(t, router, http.MethodPost, "/api/course/course1?user=eric", nil).Code)

	rec := do(t, router, http.MethodPost, "/api/assignment/course1/challenge?user=eric",
		encodedFiles(map[string]string{"file2": "22222"}))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/assignment/course1/challenge?user=eric", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decode(t, rec)
	files := payload["files"].([]interface{})
	require.Len(t, files, 1)
	file := files[0].(map[string]interface{})
	assert.Equal(t, "file2", file["path"])
	raw, err := base64.StdEncoding.DecodeString(file["content"].(string))
	require.NoError(t, err)
	assert.Equal(t, "22222", string(raw))

	// list_only keeps paths, drops content entirely
	rec = do(t, router, http.MethodGet, "/api/assignment/course1/challenge?user=eric&list_only=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	files = decode(t, rec)["files"].([]interface{})
	require.Len(t, files, 1)
	file = files[0].(map[string]interface{})
	assert.Equal(t, "file2", file["path"])
	_, hasContent := file["content"]
	assert.False(t, hasContent)
}

func TestPermissionDeniedOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	require.Equal(t, http.StatusOK,
		do(t, router, http.MethodPost, "/api/course/course1?user=eric", nil).Code)
	require.Equal(t, http.StatusOK,
		do(t, router, http.MethodPost, "/api/assignment/course1/challenge?user=eric",
			encodedFiles(map[string]string{"a": "1"})).Code)

	rec := do(t, router, http.MethodGet, "/api/assignment/course1/challenge?user=mallory", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	payload := decode(t, rec)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Permission denied", payload["message"])
}

func TestUnknownCourseOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/assignments/jkl?user=eric", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Course not found", decode(t, rec)["message"])
}

func TestSubmitAndFeedbackRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	require.Equal(t, http.StatusOK,
		do(t, router, http.MethodPost, "/api/course/course1?user=eric", nil).Code)
	require.Equal(t, http.StatusOK,
		do(t, router, http.MethodPost, "/api/assignment/course1/challenge?user=eric",
			encodedFiles(map[string]string{"a": "1"})).Code)

	// eric is the instructor, so submitting as eric exercises the member path
	rec := do(t, router, http.MethodPost, "/api/submission/course1/challenge?user=eric",
		encodedFiles(map[string]string{"answer": "42"}))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/submissions/course1/challenge/eric?user=eric", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	subs := decode(t, rec)["submissions"].([]interface{})
	require.Len(t, subs, 1)
	timestamp := subs[0].(map[string]interface{})["timestamp"].(string)
	require.NotEmpty(t, timestamp)

	body := encodedFiles(map[string]string{"grade.txt": "perfect"})
	body["timestamp"] = timestamp
	rec = do(t, router, http.MethodPost, "/api/feedback/course1/challenge/eric?user=eric", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet,
		"/api/feedback/course1/challenge/eric?user=eric&timestamp="+url.QueryEscape(timestamp), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decode(t, rec)
	assert.Equal(t, timestamp, payload["timestamp"])
	files := payload["files"].([]interface{})
	require.Len(t, files, 1)
	assert.Equal(t, "grade.txt", files[0].(map[string]interface{})["path"])
}

func TestSubmitWithoutFiles(t *testing.T) {
	router := newTestRouter(t)

	require.Equal(t, http.StatusOK,
		do(t, router, http.MethodPost, "/api/course/course1?user=eric", nil).Code)
	require.Equal(t, http.StatusOK,
		do(t, router, http.MethodPost, "/api/assignment/course1/challenge?user=eric",
			encodedFiles(map[string]string{"a": "1"})).Code)

	// empty body decodes to a nil file list
	rec := do(t, router, http.MethodPost, "/api/submission/course1/challenge?user=eric", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please supply files", decode(t, rec)["message"])
}
