package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"
	"fitcoach/coaching-app/internal/storage"
)

// --- Error Definitions ---
var (
	ErrPhotoNotFound = errors.New("progress photo not found")
)

// PhotoUploadRequest describes a photo about to be uploaded. The actual
// bytes go straight to object storage through a presigned URL; the core
// only tracks metadata.
type PhotoUploadRequest struct {
	ClientID    string
	TrainerID   string
	FileName    string
	ContentType string
	Size        int64
	Pose        string
	TakenAt     time.Time
}

// PhotoUpload pairs the stored metadata with the presigned PUT URL the
// caller uses to push the image bytes.
type PhotoUpload struct {
	Photo     *domain.ProgressPhoto
	UploadURL string
}

// PhotoService manages progress photos: metadata rows plus objects in
// S3-compatible storage.
type PhotoService interface {
	RequestUpload(ctx context.Context, req PhotoUploadRequest) (*PhotoUpload, error)
	GetClientPhotos(ctx context.Context, clientID string) ([]domain.ProgressPhoto, error)
	GetDownloadURL(ctx context.Context, clientID, photoID string) (string, error)
	DeletePhoto(ctx context.Context, clientID, photoID string) error
}

type photoService struct {
	photoRepo   repository.PhotoRepository
	fileStorage storage.FileStorage
}

// NewPhotoService creates a new instance of photoService.
func NewPhotoService(photoRepo repository.PhotoRepository, fileStorage storage.FileStorage) PhotoService {
	return &photoService{
		photoRepo:   photoRepo,
		fileStorage: fileStorage,
	}
}

// RequestUpload stores the photo metadata and returns a presigned PUT URL.
func (s *photoService) RequestUpload(ctx context.Context, req PhotoUploadRequest) (*PhotoUpload, error) {
	if req.ClientID == "" || req.FileName == "" || req.ContentType == "" {
		return nil, ErrValidationFailed
	}

	photo := &domain.ProgressPhoto{
		ClientID:    req.ClientID,
		TrainerID:   req.TrainerID,
		ObjectKey:   fmt.Sprintf("progress-photos/%s/%s", req.ClientID, uuid.NewString()),
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Size:        req.Size,
		Pose:        req.Pose,
		TakenAt:     req.TakenAt,
	}

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, photo.ObjectKey, photo.ContentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}

	if _, err := s.photoRepo.Create(ctx, photo); err != nil {
		return nil, err
	}
	return &PhotoUpload{Photo: photo, UploadURL: uploadURL}, nil
}

// GetClientPhotos lists a client's photo metadata, newest first.
func (s *photoService) GetClientPhotos(ctx context.Context, clientID string) ([]domain.ProgressPhoto, error) {
	return s.photoRepo.GetByClientID(ctx, clientID)
}

// GetDownloadURL returns a presigned GET URL for one photo, verifying
// client ownership.
func (s *photoService) GetDownloadURL(ctx context.Context, clientID, photoID string) (string, error) {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrPhotoNotFound
		}
		return "", err
	}
	if photo.ClientID != clientID {
		return "", ErrPhotoNotFound
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, photo.ObjectKey, storage.DefaultPresignedURLExpiry)
}

// DeletePhoto removes the object and then the metadata.
func (s *photoService) DeletePhoto(ctx context.Context, clientID, photoID string) error {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPhotoNotFound
		}
		return err
	}
	if photo.ClientID != clientID {
		return ErrPhotoNotFound
	}

	if err := s.fileStorage.DeleteObject(ctx, photo.ObjectKey); err != nil {
		return err
	}
	if err := s.photoRepo.Delete(ctx, photoID, clientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPhotoNotFound
		}
		return err
	}
	return nil
}
