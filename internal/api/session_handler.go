package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/service"
)

// SessionHandler exposes the workout session lifecycle and the in-session
// exercise and set mutations.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- DTOs ---

type PlannedExerciseRequest struct {
	ExerciseID string  `json:"exerciseId" binding:"required"`
	Sets       int     `json:"sets" binding:"omitempty,min=0"`
	Reps       int     `json:"reps" binding:"omitempty,min=1"`
	Weight     float64 `json:"weight" binding:"omitempty,min=0"`
	RestTime   int     `json:"restTime" binding:"omitempty,min=0"`
}

type CreateSessionRequest struct {
	ClientID    string                   `json:"clientId" binding:"required"`
	Name        string                   `json:"name" binding:"required"`
	Description string                   `json:"description"`
	Exercises   []PlannedExerciseRequest `json:"exercises"`
}

type UpdateSetRequest struct {
	Reps     *int     `json:"reps"`
	Weight   *float64 `json:"weight"`
	RestTime *int     `json:"restTime"`
	Notes    *string  `json:"notes"`
}

type WorkoutSetResponse struct {
	ID        string  `json:"id"`
	SetNumber int     `json:"setNumber"`
	Reps      int     `json:"reps"`
	Weight    float64 `json:"weight"`
	Completed bool    `json:"completed"`
	RestTime  int     `json:"restTime,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

type WorkoutExerciseResponse struct {
	ID           string               `json:"id"`
	ExerciseID   string               `json:"exerciseId"`
	ExerciseName string               `json:"exerciseName"`
	Order        int                  `json:"order"`
	Sets         []WorkoutSetResponse `json:"sets"`
	Notes        string               `json:"notes,omitempty"`
}

type SessionResponse struct {
	ID             string                    `json:"id"`
	ClientID       string                    `json:"clientId"`
	TrainerID      string                    `json:"trainerId"`
	Name           string                    `json:"name"`
	Description    string                    `json:"description,omitempty"`
	Exercises      []WorkoutExerciseResponse `json:"exercises"`
	Status         domain.SessionStatus      `json:"status"`
	StartTime      *time.Time                `json:"startTime,omitempty"`
	EndTime        *time.Time                `json:"endTime,omitempty"`
	ElapsedSeconds int64                     `json:"elapsedSeconds"`
	Progress       float64                   `json:"progress"`
	CreatedAt      time.Time                 `json:"createdAt"`
	UpdatedAt      time.Time                 `json:"updatedAt"`
}

// MapSessionToResponse converts a domain.WorkoutSession to its DTO,
// including the derived elapsed time and completion percentage.
func MapSessionToResponse(session *domain.WorkoutSession) SessionResponse {
	if session == nil {
		return SessionResponse{}
	}

	resp := SessionResponse{
		ID:             session.ID,
		ClientID:       session.ClientID,
		TrainerID:      session.TrainerID,
		Name:           session.Name,
		Description:    session.Description,
		Exercises:      make([]WorkoutExerciseResponse, len(session.Exercises)),
		Status:         session.Status,
		EndTime:        session.EndTime,
		ElapsedSeconds: int64(session.Elapsed(time.Now().UTC()).Seconds()),
		Progress:       session.Progress(),
		CreatedAt:      session.CreatedAt,
		UpdatedAt:      session.UpdatedAt,
	}
	if !session.StartTime.IsZero() {
		start := session.StartTime
		resp.StartTime = &start
	}

	for i, ex := range session.Exercises {
		exResp := WorkoutExerciseResponse{
			ID:           ex.ID,
			ExerciseID:   ex.ExerciseID,
			ExerciseName: ex.ExerciseName,
			Order:        ex.Order,
			Sets:         make([]WorkoutSetResponse, len(ex.Sets)),
			Notes:        ex.Notes,
		}
		for j, set := range ex.Sets {
			exResp.Sets[j] = WorkoutSetResponse{
				ID:        set.ID,
				SetNumber: set.SetNumber,
				Reps:      set.Reps,
				Weight:    set.Weight,
				Completed: set.Completed,
				RestTime:  set.RestTime,
				Notes:     set.Notes,
			}
		}
		resp.Exercises[i] = exResp
	}
	return resp
}

// MapSessionsToResponse converts a slice of sessions to DTOs.
func MapSessionsToResponse(sessions []domain.WorkoutSession) []SessionResponse {
	responses := make([]SessionResponse, len(sessions))
	for i := range sessions {
		responses[i] = MapSessionToResponse(&sessions[i])
	}
	return responses
}

// respondSessionError translates service and domain errors into HTTP codes.
func respondSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, domain.ErrNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSessionDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrSessionImmutable):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to process session request.")
	}
}

// --- Handler Methods ---

// CreateSession schedules a new workout session for a client.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	planned := make([]service.PlannedExercise, len(req.Exercises))
	for i, ex := range req.Exercises {
		planned[i] = service.PlannedExercise{
			ExerciseID: ex.ExerciseID,
			Sets:       ex.Sets,
			Reps:       ex.Reps,
			Weight:     ex.Weight,
			RestTime:   ex.RestTime,
		}
	}

	session, err := h.sessionService.CreateSession(c.Request.Context(), trainerID, req.ClientID, req.Name, req.Description, planned)
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapSessionToResponse(session))
}

// GetSession returns one session, enforcing that the caller is its client
// or its trainer.
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.sessionService.GetSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondSessionError(c, err)
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	if session.ClientID != userID && session.TrainerID != userID {
		abortWithError(c, http.StatusForbidden, "Access denied to this workout session.")
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// GetMySessions lists the authenticated user's sessions. Trainers see the
// sessions they scheduled; clients see their own.
func (h *SessionHandler) GetMySessions(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user role from token.")
		return
	}

	var sessions []domain.WorkoutSession
	if role == domain.RoleTrainer {
		sessions, err = h.sessionService.GetSessionsByTrainer(c.Request.Context(), userID)
	} else {
		sessions, err = h.sessionService.GetSessionsByClient(c.Request.Context(), userID)
	}
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSessionsToResponse(sessions))
}

// DeleteSession removes a session the trainer scheduled.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	if err := h.sessionService.DeleteSession(c.Request.Context(), trainerID, c.Param("sessionId")); err != nil {
		respondSessionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// lifecycle transition handlers share one shape.

func (h *SessionHandler) lifecycle(c *gin.Context, fn func(ctx *gin.Context, sessionID string) (*domain.WorkoutSession, error)) {
	session, err := fn(c, c.Param("sessionId"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// StartSession moves a scheduled session to in_progress.
func (h *SessionHandler) StartSession(c *gin.Context) {
	h.lifecycle(c, func(ctx *gin.Context, id string) (*domain.WorkoutSession, error) {
		return h.sessionService.StartSession(ctx.Request.Context(), id)
	})
}

// PauseSession pauses a running session.
func (h *SessionHandler) PauseSession(c *gin.Context) {
	h.lifecycle(c, func(ctx *gin.Context, id string) (*domain.WorkoutSession, error) {
		return h.sessionService.PauseSession(ctx.Request.Context(), id)
	})
}

// ResumeSession resumes a paused session.
func (h *SessionHandler) ResumeSession(c *gin.Context) {
	h.lifecycle(c, func(ctx *gin.Context, id string) (*domain.WorkoutSession, error) {
		return h.sessionService.ResumeSession(ctx.Request.Context(), id)
	})
}

// CompleteSession finishes a running or paused session.
func (h *SessionHandler) CompleteSession(c *gin.Context) {
	h.lifecycle(c, func(ctx *gin.Context, id string) (*domain.WorkoutSession, error) {
		return h.sessionService.CompleteSession(ctx.Request.Context(), id)
	})
}

// CancelSession abandons a session that has not been completed.
func (h *SessionHandler) CancelSession(c *gin.Context) {
	h.lifecycle(c, func(ctx *gin.Context, id string) (*domain.WorkoutSession, error) {
		return h.sessionService.CancelSession(ctx.Request.Context(), id)
	})
}

// AddExercise appends a catalog exercise to the end of the session.
func (h *SessionHandler) AddExercise(c *gin.Context) {
	var req struct {
		ExerciseID string `json:"exerciseId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	session, err := h.sessionService.AddExercise(c.Request.Context(), c.Param("sessionId"), req.ExerciseID)
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// RemoveExercise deletes an exercise and its sets from the session.
func (h *SessionHandler) RemoveExercise(c *gin.Context) {
	session, err := h.sessionService.RemoveExercise(c.Request.Context(), c.Param("sessionId"), c.Param("workoutExerciseId"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// AddSet appends a set to an exercise, carrying forward the previous
// set's values.
func (h *SessionHandler) AddSet(c *gin.Context) {
	session, err := h.sessionService.AddSet(c.Request.Context(), c.Param("sessionId"), c.Param("workoutExerciseId"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// RemoveSet deletes one set and renumbers the rest.
func (h *SessionHandler) RemoveSet(c *gin.Context) {
	session, err := h.sessionService.RemoveSet(c.Request.Context(), c.Param("sessionId"), c.Param("workoutExerciseId"), c.Param("setId"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// UpdateSet applies a partial update to one set.
func (h *SessionHandler) UpdateSet(c *gin.Context) {
	var req UpdateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	upd := domain.SetUpdate{
		Reps:     req.Reps,
		Weight:   req.Weight,
		RestTime: req.RestTime,
		Notes:    req.Notes,
	}
	session, err := h.sessionService.UpdateSet(c.Request.Context(), c.Param("sessionId"), c.Param("workoutExerciseId"), c.Param("setId"), upd)
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// CompleteSet marks one set as done. Completing an already completed set
// is a no-op.
func (h *SessionHandler) CompleteSet(c *gin.Context) {
	session, err := h.sessionService.CompleteSet(c.Request.Context(), c.Param("sessionId"), c.Param("workoutExerciseId"), c.Param("setId"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// ResetExercise marks every set of one exercise as not completed.
func (h *SessionHandler) ResetExercise(c *gin.Context) {
	session, err := h.sessionService.ResetExercise(c.Request.Context(), c.Param("sessionId"), c.Param("workoutExerciseId"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(session))
}
