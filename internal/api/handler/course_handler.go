package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"course_exchange/internal/api/middleware"
	"course_exchange/internal/app/service"
	"course_exchange/internal/common"
)

type CourseHandler struct {
	courseService *service.CourseService
}

func NewCourseHandler(cs *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: cs}
}

func (h *CourseHandler) RegisterRoutes(r chi.Router) {
	r.Get("/courses", h.listCourses)
	r.Post("/course/{courseID}", h.addCourse)
}

type listCoursesResponse struct {
	Success bool     `json:"success"`
	Courses []string `json:"courses"`
}

func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetCallerIDFromContext(r.Context())

	courses, err := h.courseService.ListCourses(r.Context(), callerID)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, listCoursesResponse{Success: true, Courses: courses})
}

func (h *CourseHandler) addCourse(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetCallerIDFromContext(r.Context())

	if err := h.courseService.AddCourse(r.Context(), callerID, chi.URLParam(r, "courseID")); err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, okResponse{Success: true})
}
