package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"course_exchange/internal/api/middleware"
	"course_exchange/internal/app/service"
	"course_exchange/internal/common"
	"course_exchange/internal/domain/codec"
)

type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

func NewSubmissionHandler(ss *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: ss}
}

func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/submissions/{courseID}/{assignmentID}", h.listSubmissions)
	r.Get("/submissions/{courseID}/{assignmentID}/{studentID}", h.listStudentSubmissions)
	r.Post("/submission/{courseID}/{assignmentID}", h.submitAssignment)
	r.Get("/submission/{courseID}/{assignmentID}/{studentID}", h.downloadSubmission)
}

type listSubmissionsResponse struct {
	Success     bool                     `json:"success"`
	Submissions []service.SubmissionInfo `json:"submissions"`
}

type timedFilesResponse struct {
	Success   bool         `json:"success"`
	Files     []codec.File `json:"files"`
	Timestamp string       `json:"timestamp"`
}

func (h *SubmissionHandler) listSubmissions(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetCallerIDFromContext(r.Context())

	subs, err := h.submissionService.ListSubmissions(
		r.Context(), callerID, chi.URLParam(r, "courseID"), chi.URLParam(r, "assignmentID"))
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, listSubmissionsResponse{Success: true, Submissions: subs})
}

func (h *SubmissionHandler) listStudentSubmissions(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetCallerIDFromContext(r.Context())

	subs, err := h.submissionService.ListStudentSubmissions(
		r.Context(), callerID,
		chi.URLParam(r, "courseID"), chi.URLParam(r, "assignmentID"), chi.URLParam(r, "studentID"))
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, listSubmissionsResponse{Success: true, Submissions: subs})
}

func (h *SubmissionHandler) submitAssignment(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetCallerIDFromContext(r.Context())

	var req fileRequest
	if err := decodeBody(r, &req); err != nil {
		common.RespondWithError(w, err)
		return
	}

	err := h.submissionService.Submit(
		r.Context(), callerID, chi.URLParam(r, "courseID"), chi.URLParam(r, "assignmentID"), req.Files)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, okResponse{Success: true})
}

func (h *SubmissionHandler) downloadSubmission(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetCallerIDFromContext(r.Context())

	files, timestamp, err := h.submissionService.DownloadSubmission(
		r.Context(), callerID,
		chi.URLParam(r, "courseID"), chi.URLParam(r, "assignmentID"), chi.URLParam(r, "studentID"),
		listOnly(r))
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, timedFilesResponse{Success: true, Files: files, Timestamp: timestamp})
}
