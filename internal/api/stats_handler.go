package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fitcoach/coaching-app/internal/stats"
)

// StatsHandler exposes the progress and analytics roll-ups: per-exercise
// strength progress, workout frequency, weight trend, macro compliance and
// the trainer dashboard.
type StatsHandler struct {
	analyzer *stats.Analyzer
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(analyzer *stats.Analyzer) *StatsHandler {
	return &StatsHandler{analyzer: analyzer}
}

// windowFromQuery maps ?window=week|month|quarter to a duration.
// Defaults to a week.
func windowFromQuery(c *gin.Context) (time.Duration, bool) {
	switch c.DefaultQuery("window", "week") {
	case "week":
		return 7 * 24 * time.Hour, true
	case "month":
		return 30 * 24 * time.Hour, true
	case "quarter":
		return 90 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// GetWorkoutProgress returns per-exercise personal records and most recent
// performances for the authenticated client.
func (h *StatsHandler) GetWorkoutProgress(c *gin.Context) {
	clientID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	progress, err := h.analyzer.WorkoutProgress(c.Request.Context(), clientID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute workout progress.")
		return
	}
	c.JSON(http.StatusOK, progress)
}

// GetWorkoutFrequency counts the client's completed workouts in the
// requested window.
func (h *StatsHandler) GetWorkoutFrequency(c *gin.Context) {
	clientID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	window, ok := windowFromQuery(c)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "window must be one of: week, month, quarter")
		return
	}

	count, err := h.analyzer.WorkoutsInWindow(c.Request.Context(), clientID, window, time.Now().UTC())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute workout frequency.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"workouts": count})
}

// GetWeightChange reports the client's body-weight change over the
// requested window.
func (h *StatsHandler) GetWeightChange(c *gin.Context) {
	clientID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	window, ok := windowFromQuery(c)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "window must be one of: week, month, quarter")
		return
	}

	change, err := h.analyzer.WeightChangeInWindow(c.Request.Context(), clientID, window, time.Now().UTC())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute weight change.")
		return
	}
	c.JSON(http.StatusOK, change)
}

// GetMacroData returns logged totals, targets and compliance for one day.
// The day defaults to today and accepts ?date=2026-08-30.
func (h *StatsHandler) GetMacroData(c *gin.Context) {
	clientID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	day := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
			return
		}
		day = parsed
	}

	data, err := h.analyzer.MacroDataForDay(c.Request.Context(), clientID, day)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute macro data.")
		return
	}
	c.JSON(http.StatusOK, data)
}

// GetTrainerDashboard returns the trainer's aggregate dashboard stats.
func (h *StatsHandler) GetTrainerDashboard(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	dashboard, err := h.analyzer.DashboardStatsForTrainer(c.Request.Context(), trainerID, time.Now().UTC())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute dashboard stats.")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
