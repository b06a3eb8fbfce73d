package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fitcoach/coaching-app/internal/service"
)

// PhotoHandler exposes progress photo uploads and retrieval. Image bytes
// move through presigned URLs; the API only handles metadata.
type PhotoHandler struct {
	photoService service.PhotoService
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(photoService service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoService: photoService}
}

// --- DTOs ---

type PhotoUploadRequestDTO struct {
	FileName    string    `json:"fileName" binding:"required"`
	ContentType string    `json:"contentType" binding:"required"`
	Size        int64     `json:"size" binding:"omitempty,min=0"`
	Pose        string    `json:"pose" binding:"omitempty,oneof=front side back"`
	TakenAt     time.Time `json:"takenAt"`
}

func respondPhotoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPhotoNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to process photo request.")
	}
}

// --- Handler Methods ---

// RequestUpload stores photo metadata and returns a presigned PUT URL the
// client uses to upload the image bytes directly to object storage.
func (h *PhotoHandler) RequestUpload(c *gin.Context) {
	var req PhotoUploadRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	clientID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	takenAt := req.TakenAt
	if takenAt.IsZero() {
		takenAt = time.Now().UTC()
	}

	upload, err := h.photoService.RequestUpload(c.Request.Context(), service.PhotoUploadRequest{
		ClientID:    clientID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Size:        req.Size,
		Pose:        req.Pose,
		TakenAt:     takenAt,
	})
	if err != nil {
		respondPhotoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"photo":     upload.Photo,
		"uploadUrl": upload.UploadURL,
	})
}

// GetMyPhotos lists the authenticated client's photo metadata.
func (h *PhotoHandler) GetMyPhotos(c *gin.Context) {
	clientID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	photos, err := h.photoService.GetClientPhotos(c.Request.Context(), clientID)
	if err != nil {
		respondPhotoError(c, err)
		return
	}
	c.JSON(http.StatusOK, photos)
}

// GetDownloadURL returns a presigned GET URL for one of the client's photos.
func (h *PhotoHandler) GetDownloadURL(c *gin.Context) {
	clientID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	url, err := h.photoService.GetDownloadURL(c.Request.Context(), clientID, c.Param("photoId"))
	if err != nil {
		respondPhotoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}

// DeletePhoto removes one of the client's photos and its stored object.
func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	clientID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.photoService.DeletePhoto(c.Request.Context(), clientID, c.Param("photoId")); err != nil {
		respondPhotoError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
