package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"course_exchange/internal/api/handler"
	"course_exchange/internal/api/middleware"
	"course_exchange/internal/app/service"
)

func NewRouter(
	logger *zap.Logger,
	courseService *service.CourseService,
	assignmentService *service.AssignmentService,
	submissionService *service.SubmissionService,
	feedbackService *service.FeedbackService,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		// Every exchange operation acts on behalf of a caller-supplied id.
		api.Use(middleware.Identity)

		handler.NewCourseHandler(courseService).RegisterRoutes(api)
		handler.NewAssignmentHandler(assignmentService).RegisterRoutes(api)
		handler.NewSubmissionHandler(submissionService).RegisterRoutes(api)
		handler.NewFeedbackHandler(feedbackService).RegisterRoutes(api)
	})

	return r
}
