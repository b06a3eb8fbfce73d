package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/service"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs ---

// ExerciseRequest defines the expected JSON for creating or updating a
// catalog exercise.
type ExerciseRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	MuscleGroups []string `json:"muscleGroups" binding:"omitempty"`
	Instructions string   `json:"instructions" binding:"omitempty"`
	VideoURL     string   `json:"videoUrl" binding:"omitempty,url"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID           string    `json:"id"`
	TrainerID    string    `json:"trainerId"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	MuscleGroups []string  `json:"muscleGroups,omitempty"`
	Instructions string    `json:"instructions,omitempty"`
	VideoURL     string    `json:"videoUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:           ex.ID,
		TrainerID:    ex.TrainerID,
		Name:         ex.Name,
		Description:  ex.Description,
		MuscleGroups: ex.MuscleGroups,
		Instructions: ex.Instructions,
		VideoURL:     ex.VideoURL,
		CreatedAt:    ex.CreatedAt,
		UpdatedAt:    ex.UpdatedAt,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to DTOs.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

// --- Handler Methods ---

// CreateExercise creates a new catalog exercise for the authenticated trainer.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	exercise, err := h.exerciseService.CreateExercise(
		c.Request.Context(),
		trainerID,
		req.Name,
		req.Description,
		req.MuscleGroups,
		req.Instructions,
		req.VideoURL,
	)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create exercise.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// GetTrainerExercises retrieves the authenticated trainer's exercise catalog.
func (h *ExerciseHandler) GetTrainerExercises(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	exercises, err := h.exerciseService.GetExercisesByTrainer(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises.")
		return
	}

	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// GetExercise retrieves a single catalog exercise by id.
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), c.Param("exerciseId"))
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercise.")
		}
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// UpdateExercise updates a catalog exercise owned by the trainer.
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	exercise, err := h.exerciseService.UpdateExercise(
		c.Request.Context(),
		trainerID,
		c.Param("exerciseId"),
		req.Name,
		req.Description,
		req.MuscleGroups,
		req.Instructions,
		req.VideoURL,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrExerciseAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update exercise.")
		}
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// DeleteExercise removes a catalog exercise owned by the trainer.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	err = h.exerciseService.DeleteExercise(c.Request.Context(), trainerID, c.Param("exerciseId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrExerciseAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to delete exercise.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
