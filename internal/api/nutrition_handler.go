package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/service"
)

// NutritionHandler exposes macro targets and meal logging.
type NutritionHandler struct {
	nutritionService service.NutritionService
}

// NewNutritionHandler creates a new NutritionHandler.
func NewNutritionHandler(nutritionService service.NutritionService) *NutritionHandler {
	return &NutritionHandler{nutritionService: nutritionService}
}

// --- DTOs ---

type MacroTargetRequest struct {
	ClientID string  `json:"clientId" binding:"required"`
	Protein  float64 `json:"protein" binding:"required,gt=0"`
	Carbs    float64 `json:"carbs" binding:"required,gt=0"`
	Fat      float64 `json:"fat" binding:"required,gt=0"`
	Calories float64 `json:"calories" binding:"required,gt=0"`
}

type MealLogRequest struct {
	MealName string    `json:"mealName" binding:"required"`
	Protein  float64   `json:"protein" binding:"omitempty,min=0"`
	Carbs    float64   `json:"carbs" binding:"omitempty,min=0"`
	Fat      float64   `json:"fat" binding:"omitempty,min=0"`
	Calories float64   `json:"calories" binding:"omitempty,min=0"`
	Date     time.Time `json:"date"`
}

func respondNutritionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMacroLogNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidTarget), errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to process nutrition request.")
	}
}

// --- Handler Methods ---

// SetMacroTarget creates or replaces a client's daily macro targets.
// Trainer only.
func (h *NutritionHandler) SetMacroTarget(c *gin.Context) {
	var req MacroTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	target, err := h.nutritionService.SetMacroTarget(c.Request.Context(), req.ClientID, req.Protein, req.Carbs, req.Fat, req.Calories)
	if err != nil {
		respondNutritionError(c, err)
		return
	}
	c.JSON(http.StatusOK, target)
}

// GetMyMacroTarget returns the authenticated client's macro targets.
func (h *NutritionHandler) GetMyMacroTarget(c *gin.Context) {
	clientID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	target, err := h.nutritionService.GetMacroTarget(c.Request.Context(), clientID)
	if err != nil {
		respondNutritionError(c, err)
		return
	}
	c.JSON(http.StatusOK, target)
}

// LogMeal records a meal entry for the authenticated client.
func (h *NutritionHandler) LogMeal(c *gin.Context) {
	var req MealLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	clientID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	log, err := h.nutritionService.LogMeal(c.Request.Context(), &domain.MacroLog{
		ClientID: clientID,
		MealName: req.MealName,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Calories: req.Calories,
		Date:     date,
	})
	if err != nil {
		respondNutritionError(c, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

// UpdateMealLog replaces the macros of one of the client's meal entries.
func (h *NutritionHandler) UpdateMealLog(c *gin.Context) {
	var req MealLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	clientID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	log, err := h.nutritionService.UpdateMealLog(c.Request.Context(), &domain.MacroLog{
		ID:       c.Param("logId"),
		ClientID: clientID,
		MealName: req.MealName,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Calories: req.Calories,
		Date:     req.Date,
	})
	if err != nil {
		respondNutritionError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

// DeleteMealLog removes one of the client's meal entries.
func (h *NutritionHandler) DeleteMealLog(c *gin.Context) {
	clientID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.nutritionService.DeleteMealLog(c.Request.Context(), clientID, c.Param("logId")); err != nil {
		respondNutritionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
