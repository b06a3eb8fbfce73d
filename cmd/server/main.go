package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fitcoach/coaching-app/internal/api"
	"fitcoach/coaching-app/internal/config"
	"fitcoach/coaching-app/internal/repository"
	"fitcoach/coaching-app/internal/repository/memory"
	mongorepo "fitcoach/coaching-app/internal/repository/mongo"
	"fitcoach/coaching-app/internal/service"
	"fitcoach/coaching-app/internal/stats"
	"fitcoach/coaching-app/internal/storage"
)

// repositories groups the per-entity stores so either backend can be
// swapped in whole.
type repositories struct {
	users        repository.UserRepository
	exercises    repository.ExerciseRepository
	sessions     repository.SessionRepository
	measurements repository.MeasurementRepository
	macros       repository.MacroRepository
	checkIns     repository.CheckInRepository
	photos       repository.PhotoRepository
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	log.Info("starting coaching app server")

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.WithError(err).Fatal("could not load config")
	}

	var repos repositories
	switch cfg.Database.Backend {
	case "mongo":
		dbClient, err := mongorepo.ConnectDB(cfg.Database.URI)
		if err != nil {
			log.WithError(err).Fatal("could not connect to MongoDB")
		}
		defer func() {
			if err := mongorepo.DisconnectDB(dbClient); err != nil {
				log.WithError(err).Error("failed to disconnect MongoDB")
			}
		}()
		appDB := dbClient.Database(cfg.Database.Name)
		log.WithField("database", cfg.Database.Name).Info("connected to MongoDB")

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := mongorepo.EnsureAllIndexes(ctx, appDB); err != nil {
				log.WithError(err).Error("index creation failed")
			}
		}()

		repos = repositories{
			users:        mongorepo.NewUserRepository(appDB),
			exercises:    mongorepo.NewExerciseRepository(appDB),
			sessions:     mongorepo.NewSessionRepository(appDB),
			measurements: mongorepo.NewMeasurementRepository(appDB),
			macros:       mongorepo.NewMacroRepository(appDB),
			checkIns:     mongorepo.NewCheckInRepository(appDB),
			photos:       mongorepo.NewPhotoRepository(appDB),
		}
	case "memory":
		log.Info("using in-memory repositories")
		repos = repositories{
			users:        memory.NewUserRepository(),
			exercises:    memory.NewExerciseRepository(),
			sessions:     memory.NewSessionRepository(),
			measurements: memory.NewMeasurementRepository(),
			macros:       memory.NewMacroRepository(),
			checkIns:     memory.NewCheckInRepository(),
			photos:       memory.NewPhotoRepository(),
		}
	default:
		log.WithField("backend", cfg.Database.Backend).Fatal("unknown database backend")
	}

	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize S3 storage")
	}

	authService := service.NewAuthService(repos.users, cfg.JWT.Secret, cfg.JWT.Expiration)
	exerciseService := service.NewExerciseService(repos.exercises)
	sessionService := service.NewSessionService(repos.sessions, repos.exercises)
	clientService := service.NewClientService(repos.users, repos.measurements, repos.checkIns)
	nutritionService := service.NewNutritionService(repos.macros)
	photoService := service.NewPhotoService(repos.photos, fileStorage)
	analyzer := stats.NewAnalyzer(repos.sessions, repos.users, repos.measurements, repos.macros)

	router := gin.Default()
	api.SetupRoutes(router, cfg.JWT.Secret, authService, clientService, exerciseService, sessionService, nutritionService, photoService, analyzer)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("address", cfg.Server.Address).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen and serve error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exited")
}
