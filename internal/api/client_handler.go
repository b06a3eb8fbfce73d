package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/service"
)

// ClientHandler exposes roster management plus the measurement and
// check-in logs that feed the progress analytics.
type ClientHandler struct {
	clientService service.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// --- DTOs ---

type AddClientRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type UpdateProfileRequest struct {
	Name      *string  `json:"name"`
	Phone     *string  `json:"phone"`
	BirthDate *string  `json:"birthDate"`
	Goals     []string `json:"goals"`
}

type AddMeasurementRequest struct {
	Type  domain.MeasurementType `json:"type" binding:"required"`
	Value float64                `json:"value" binding:"required"`
	Unit  string                 `json:"unit"`
	Date  time.Time              `json:"date"`
}

type CheckInRequest struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
	Energy int       `json:"energy" binding:"omitempty,min=1,max=5"`
	Sleep  int       `json:"sleep" binding:"omitempty,min=1,max=5"`
	Mood   int       `json:"mood" binding:"omitempty,min=1,max=5"`
	Notes  string    `json:"notes"`
}

func respondClientError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClientNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUserNotClient):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrClientAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to process request.")
	}
}

// --- Roster (trainer) ---

// AddClient links an existing client account to the trainer's roster by email.
func (h *ClientHandler) AddClient(c *gin.Context) {
	var req AddClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	client, err := h.clientService.AddClientByEmail(c.Request.Context(), trainerID, req.Email)
	if err != nil {
		respondClientError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(client))
}

// GetClients lists the trainer's roster.
func (h *ClientHandler) GetClients(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	clients, err := h.clientService.GetManagedClients(c.Request.Context(), trainerID)
	if err != nil {
		respondClientError(c, err)
		return
	}

	responses := make([]UserResponse, len(clients))
	for i := range clients {
		responses[i] = MapUserToResponse(&clients[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetClient returns one managed client's profile.
func (h *ClientHandler) GetClient(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), trainerID, c.Param("clientId"))
	if err != nil {
		respondClientError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(client))
}

// --- Profile (client) ---

// UpdateProfile lets the authenticated client update their own profile.
func (h *ClientHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	clientID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	user, err := h.clientService.UpdateClientProfile(c.Request.Context(), clientID, service.ClientProfileUpdate{
		Name:      req.Name,
		Phone:     req.Phone,
		BirthDate: req.BirthDate,
		Goals:     req.Goals,
	})
	if err != nil {
		respondClientError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// --- Measurements ---

// AddMeasurement appends a dated body measurement for the client.
func (h *ClientHandler) AddMeasurement(c *gin.Context) {
	var req AddMeasurementRequest
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

	measurement, err := h.clientService.AddMeasurement(c.Request.Context(), clientID, req.Type, req.Value, req.Unit, date)
	if err != nil {
		respondClientError(c, err)
		return
	}
	c.JSON(http.StatusCreated, measurement)
}

// GetMeasurements lists the client's measurements, optionally filtered
// with ?type=weight.
func (h *ClientHandler) GetMeasurements(c *gin.Context) {
	clientID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	mType := domain.MeasurementType(c.Query("type"))
	measurements, err := h.clientService.GetMeasurements(c.Request.Context(), clientID, mType)
	if err != nil {
		respondClientError(c, err)
		return
	}
	c.JSON(http.StatusOK, measurements)
}

// DeleteMeasurement removes one of the client's own measurements.
func (h *ClientHandler) DeleteMeasurement(c *gin.Context) {
	clientID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.clientService.DeleteMeasurement(c.Request.Context(), clientID, c.Param("measurementId")); err != nil {
		respondClientError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Check-ins ---

// SubmitCheckIn records or replaces the client's daily check-in.
func (h *ClientHandler) SubmitCheckIn(c *gin.Context) {
	var req CheckInRequest
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

	checkIn, err := h.clientService.SubmitCheckIn(c.Request.Context(), &domain.CheckIn{
		ClientID: clientID,
		Date:     date,
		Weight:   req.Weight,
		Energy:   req.Energy,
		Sleep:    req.Sleep,
		Mood:     req.Mood,
		Notes:    req.Notes,
	})
	if err != nil {
		respondClientError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkIn)
}

// GetRecentCheckIns lists the client's latest check-ins, newest first.
// The limit defaults to 7 and is capped by the service.
func (h *ClientHandler) GetRecentCheckIns(c *gin.Context) {
	clientID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	limit := 7
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			abortWithError(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	checkIns, err := h.clientService.GetRecentCheckIns(c.Request.Context(), clientID, limit)
	if err != nil {
		respondClientError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkIns)
}
