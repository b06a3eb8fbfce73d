package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/service"
	"fitcoach/coaching-app/internal/stats"
)

// SetupRoutes wires every handler onto the router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	clientService service.ClientService,
	exerciseService service.ExerciseService,
	sessionService service.SessionService,
	nutritionService service.NutritionService,
	photoService service.PhotoService,
	analyzer *stats.Analyzer,
) {
	authHandler := NewAuthHandler(authService)
	clientHandler := NewClientHandler(clientService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	sessionHandler := NewSessionHandler(sessionService)
	nutritionHandler := NewNutritionHandler(nutritionService)
	photoHandler := NewPhotoHandler(photoService)
	statsHandler := NewStatsHandler(analyzer)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userID, "role": role})
		})

		// --- Exercise catalog (trainer) ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", RoleMiddleware(domain.RoleTrainer), exerciseHandler.CreateExercise)
			exerciseGroup.GET("", RoleMiddleware(domain.RoleTrainer), exerciseHandler.GetTrainerExercises)
			exerciseGroup.GET("/:exerciseId", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:exerciseId", RoleMiddleware(domain.RoleTrainer), exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:exerciseId", RoleMiddleware(domain.RoleTrainer), exerciseHandler.DeleteExercise)
		}

		// --- Workout sessions ---
		sessionGroup := protected.Group("/sessions")
		{
			sessionGroup.POST("", RoleMiddleware(domain.RoleTrainer), sessionHandler.CreateSession)
			sessionGroup.GET("", sessionHandler.GetMySessions)
			sessionGroup.GET("/:sessionId", sessionHandler.GetSession)
			sessionGroup.DELETE("/:sessionId", RoleMiddleware(domain.RoleTrainer), sessionHandler.DeleteSession)

			// Lifecycle
			sessionGroup.POST("/:sessionId/start", sessionHandler.StartSession)
			sessionGroup.POST("/:sessionId/pause", sessionHandler.PauseSession)
			sessionGroup.POST("/:sessionId/resume", sessionHandler.ResumeSession)
			sessionGroup.POST("/:sessionId/complete", sessionHandler.CompleteSession)
			sessionGroup.POST("/:sessionId/cancel", sessionHandler.CancelSession)

			// In-session exercise and set mutations
			sessionGroup.POST("/:sessionId/exercises", sessionHandler.AddExercise)
			sessionGroup.DELETE("/:sessionId/exercises/:workoutExerciseId", sessionHandler.RemoveExercise)
			sessionGroup.POST("/:sessionId/exercises/:workoutExerciseId/reset", sessionHandler.ResetExercise)
			sessionGroup.POST("/:sessionId/exercises/:workoutExerciseId/sets", sessionHandler.AddSet)
			sessionGroup.DELETE("/:sessionId/exercises/:workoutExerciseId/sets/:setId", sessionHandler.RemoveSet)
			sessionGroup.PATCH("/:sessionId/exercises/:workoutExerciseId/sets/:setId", sessionHandler.UpdateSet)
			sessionGroup.POST("/:sessionId/exercises/:workoutExerciseId/sets/:setId/complete", sessionHandler.CompleteSet)
		}

		// --- Trainer roster and dashboard ---
		trainerGroup := protected.Group("/trainer")
		trainerGroup.Use(RoleMiddleware(domain.RoleTrainer))
		{
			trainerGroup.POST("/clients", clientHandler.AddClient)
			trainerGroup.GET("/clients", clientHandler.GetClients)
			trainerGroup.GET("/clients/:clientId", clientHandler.GetClient)
			trainerGroup.PUT("/macros", nutritionHandler.SetMacroTarget)
			trainerGroup.GET("/dashboard", statsHandler.GetTrainerDashboard)
		}

		// --- Client profile, logs and analytics ---
		clientGroup := protected.Group("/client")
		clientGroup.Use(RoleMiddleware(domain.RoleClient))
		{
			clientGroup.PUT("/profile", clientHandler.UpdateProfile)

			clientGroup.POST("/measurements", clientHandler.AddMeasurement)
			clientGroup.GET("/measurements", clientHandler.GetMeasurements)
			clientGroup.DELETE("/measurements/:measurementId", clientHandler.DeleteMeasurement)

			clientGroup.POST("/checkins", clientHandler.SubmitCheckIn)
			clientGroup.GET("/checkins", clientHandler.GetRecentCheckIns)

			clientGroup.GET("/macros", nutritionHandler.GetMyMacroTarget)
			clientGroup.POST("/meals", nutritionHandler.LogMeal)
			clientGroup.PUT("/meals/:logId", nutritionHandler.UpdateMealLog)
			clientGroup.DELETE("/meals/:logId", nutritionHandler.DeleteMealLog)

			clientGroup.POST("/photos", photoHandler.RequestUpload)
			clientGroup.GET("/photos", photoHandler.GetMyPhotos)
			clientGroup.GET("/photos/:photoId/url", photoHandler.GetDownloadURL)
			clientGroup.DELETE("/photos/:photoId", photoHandler.DeletePhoto)

			clientGroup.GET("/stats/progress", statsHandler.GetWorkoutProgress)
			clientGroup.GET("/stats/frequency", statsHandler.GetWorkoutFrequency)
			clientGroup.GET("/stats/weight-change", statsHandler.GetWeightChange)
			clientGroup.GET("/stats/macros", statsHandler.GetMacroData)
		}
	}
}
