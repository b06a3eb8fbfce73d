package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"
)

type memoryPhotoRepository struct {
	mu     sync.RWMutex
	photos map[string]domain.ProgressPhoto
}

// NewPhotoRepository creates an in-memory progress-photo metadata repository.
func NewPhotoRepository() repository.PhotoRepository {
	return &memoryPhotoRepository{
		photos: make(map[string]domain.ProgressPhoto),
	}
}

func (r *memoryPhotoRepository) Create(ctx context.Context, photo *domain.ProgressPhoto) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	photo.ID = uuid.NewString()
	photo.CreatedAt = time.Now().UTC()
	if photo.TakenAt.IsZero() {
		photo.TakenAt = photo.CreatedAt
	}
	r.photos[photo.ID] = *photo
	return photo.ID, nil
}

func (r *memoryPhotoRepository) GetByID(ctx context.Context, id string) (*domain.ProgressPhoto, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	photo, ok := r.photos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := photo
	return &copied, nil
}

func (r *memoryPhotoRepository) GetByClientID(ctx context.Context, clientID string) ([]domain.ProgressPhoto, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.ProgressPhoto, 0)
	for _, photo := range r.photos {
		if photo.ClientID == clientID {
			result = append(result, photo)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].TakenAt.After(result[j].TakenAt) // newest first
	})
	return result, nil
}

func (r *memoryPhotoRepository) Delete(ctx context.Context, id string, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	photo, ok := r.photos[id]
	if !ok || photo.ClientID != clientID {
		return repository.ErrNotFound
	}
	delete(r.photos, id)
	return nil
}
