package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"course_exchange/internal/api/middleware"
	"course_exchange/internal/app/service"
	"course_exchange/internal/common"
)

type FeedbackHandler struct {
	feedbackService *service.FeedbackService
}

func NewFeedbackHandler(fs *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: fs}
}

func (h *FeedbackHandler) RegisterRoutes(r chi.Router) {
	r.Post("/feedback/{courseID}/{assignmentID}/{studentID}", h.uploadFeedback)
	r.Get("/feedback/{courseID}/{assignmentID}/{studentID}", h.downloadFeedback)
}

func (h *FeedbackHandler) uploadFeedback(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetCallerIDFromContext(r.Context())

	var req fileRequest
	if err := decodeBody(r, &req); err != nil {
		common.RespondWithError(w, err)
		return
	}

	err := h.feedbackService.Upload(
		r.Context(), callerID,
		chi.URLParam(r, "courseID"), chi.URLParam(r, "assignmentID"), chi.URLParam(r, "studentID"),
		req.Timestamp, req.Files)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, okResponse{Success: true})
}

func (h *FeedbackHandler) downloadFeedback(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetCallerIDFromContext(r.Context())

	files, timestamp, err := h.feedbackService.Download(
		r.Context(), callerID,
		chi.URLParam(r, "courseID"), chi.URLParam(r, "assignmentID"), chi.URLParam(r, "studentID"),
		r.URL.Query().Get("timestamp"), listOnly(r))
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, timedFilesResponse{Success: true, Files: files, Timestamp: timestamp})
}
