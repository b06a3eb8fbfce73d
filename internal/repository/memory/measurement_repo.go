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

type memoryMeasurementRepository struct {
	mu           sync.RWMutex
	measurements map[string]domain.Measurement
}

// NewMeasurementRepository creates an in-memory measurement log.
func NewMeasurementRepository() repository.MeasurementRepository {
	return &memoryMeasurementRepository{
		measurements: make(map[string]domain.Measurement),
	}
}

func (r *memoryMeasurementRepository) Create(ctx context.Context, m *domain.Measurement) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()
	if m.Date.IsZero() {
		m.Date = m.CreatedAt
	}
	r.measurements[m.ID] = *m
	return m.ID, nil
}

func (r *memoryMeasurementRepository) GetByClientID(ctx context.Context, clientID string, mType domain.MeasurementType) ([]domain.Measurement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Measurement, 0)
	for _, m := range r.measurements {
		if m.ClientID != clientID {
			continue
		}
		if mType != "" && m.Type != mType {
			continue
		}
		result = append(result, m)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date.Equal(result[j].Date) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (r *memoryMeasurementRepository) Delete(ctx context.Context, id string, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.measurements[id]
	if !ok || m.ClientID != clientID {
		return repository.ErrNotFound
	}
	delete(r.measurements, id)
	return nil
}
