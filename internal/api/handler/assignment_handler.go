package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"course_exchange/internal/api/middleware"
	"course_exchange/internal/app/service"
	"course_exchange/internal/common"
	"course_exchange/internal/domain/codec"
)

type AssignmentHandler struct {
	assignmentService *service.AssignmentService
}

func NewAssignmentHandler(as *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: as}
}

func (h *AssignmentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/assignments/{courseID}", h.listAssignments)
	r.Get("/assignment/{courseID}/{assignmentID}", h.downloadAssignment)
	r.Post("/assignment/{courseID}/{assignmentID}", h.releaseAssignment)
}

type listAssignmentsResponse struct {
	Success     bool     `json:"success"`
	Assignments []string `json:"assignments"`
}

type filesResponse struct {
	Success bool         `json:"success"`
	Files   []codec.File `json:"files"`
}

func (h *AssignmentHandler) listAssignments(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetCallerIDFromContext(r.Context())

	assignments, err := h.assignmentService.ListAssignments(r.Context(), callerID, chi.URLParam(r, "courseID"))
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, listAssignmentsResponse{Success: true, Assignments: assignments})
}

func (h *AssignmentHandler) downloadAssignment(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetCallerIDFromContext(r.Context())

	files, err := h.assignmentService.DownloadAssignment(
		r.Context(), callerID, chi.URLParam(r, "courseID"), chi.URLParam(r, "assignmentID"), listOnly(r))
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, filesResponse{Success: true, Files: files})
}

func (h *AssignmentHandler) releaseAssignment(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetCallerIDFromContext(r.Context())

	var req fileRequest
	if err := decodeBody(r, &req); err != nil {
		common.RespondWithError(w, err)
		return
	}

	err := h.assignmentService.ReleaseAssignment(
		r.Context(), callerID, chi.URLParam(r, "courseID"), chi.URLParam(r, "assignmentID"), req.Files)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, okResponse{Success: true})
}
