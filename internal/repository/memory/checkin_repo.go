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

type checkInKey struct {
	clientID string
	day      time.Time
}

type memoryCheckInRepository struct {
	mu       sync.RWMutex
	checkIns map[checkInKey]domain.CheckIn
}

// NewCheckInRepository creates an in-memory daily check-in repository.
func NewCheckInRepository() repository.CheckInRepository {
	return &memoryCheckInRepository{
		checkIns: make(map[checkInKey]domain.CheckIn),
	}
}

func (r *memoryCheckInRepository) Upsert(ctx context.Context, checkIn *domain.CheckIn) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	checkIn.Date = checkIn.Date.UTC().Truncate(24 * time.Hour)
	key := checkInKey{clientID: checkIn.ClientID, day: checkIn.Date}
	now := time.Now().UTC()
	if existing, ok := r.checkIns[key]; ok {
		checkIn.ID = existing.ID
		checkIn.CreatedAt = existing.CreatedAt
	} else {
		checkIn.ID = uuid.NewString()
		checkIn.CreatedAt = now
	}
	checkIn.UpdatedAt = now
	r.checkIns[key] = *checkIn
	return checkIn.ID, nil
}

func (r *memoryCheckInRepository) GetByClientAndDate(ctx context.Context, clientID string, date time.Time) (*domain.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := checkInKey{clientID: clientID, day: date.UTC().Truncate(24 * time.Hour)}
	checkIn, ok := r.checkIns[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := checkIn
	return &copied, nil
}

func (r *memoryCheckInRepository) GetRecent(ctx context.Context, clientID string, limit int) ([]domain.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.CheckIn, 0)
	for _, checkIn := range r.checkIns {
		if checkIn.ClientID == clientID {
			result = append(result, checkIn)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
