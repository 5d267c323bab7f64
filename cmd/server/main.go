package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"course_exchange/internal/api"
	"course_exchange/internal/app/service"
	"course_exchange/internal/domain/repository"
	"course_exchange/internal/platform/config"
	"course_exchange/internal/platform/database"
	"course_exchange/internal/platform/database/inmem"
	"course_exchange/internal/platform/logger"
)

func main() {
	config.Load()
	cfg := config.AppConfig

	log := logger.New(cfg.Environment)
	defer log.Sync()

	var (
		userRepo       repository.UserRepository
		courseRepo     repository.CourseRepository
		assignmentRepo repository.AssignmentRepository
		submissionRepo repository.SubmissionRepository
	)

	switch cfg.StoreBackend {
	case "memory":
		log.Info("Using in-memory store; state is lost on shutdown")
		store := inmem.NewStore()
		userRepo = inmem.NewUserRepository(store)
		courseRepo = inmem.NewCourseRepository(store)
		assignmentRepo = inmem.NewAssignmentRepository(store)
		submissionRepo = inmem.NewSubmissionRepository(store)
	default:
		db, err := database.Connect(cfg.DBConnStr)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := database.Migrate(context.Background(), db, cfg.MigrationsDir); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
		log.Info("Database connected and migrated")

		userRepo = repository.NewPgUserRepository(db)
		courseRepo = repository.NewPgCourseRepository(db)
		assignmentRepo = repository.NewPgAssignmentRepository(db)
		submissionRepo = repository.NewPgSubmissionRepository(db)
	}

	courseService := service.NewCourseService(userRepo, courseRepo)
	assignmentService := service.NewAssignmentService(userRepo, courseRepo, assignmentRepo)
	submissionService := service.NewSubmissionService(userRepo, courseRepo, assignmentRepo, submissionRepo)
	feedbackService := service.NewFeedbackService(userRepo, courseRepo, assignmentRepo, submissionRepo)

	router := api.NewRouter(log, courseService, assignmentService, submissionService, feedbackService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("Server starting", zap.String("port", cfg.APIPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Could not listen", zap.Error(err))
		}
	}()

	<-stop

	log.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server shutdown failed", zap.Error(err))
	}
	log.Info("Server stopped gracefully")
}
