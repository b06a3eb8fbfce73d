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

type memoryMacroRepository struct {
	mu      sync.RWMutex
	targets map[string]domain.MacroTarget // keyed by client id
	logs    map[string]domain.MacroLog
}

// NewMacroRepository creates an in-memory macro target/log repository.
func NewMacroRepository() repository.MacroRepository {
	return &memoryMacroRepository{
		targets: make(map[string]domain.MacroTarget),
		logs:    make(map[string]domain.MacroLog),
	}
}

func (r *memoryMacroRepository) UpsertTarget(ctx context.Context, target *domain.MacroTarget) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.targets[target.ClientID]; ok {
		target.ID = existing.ID
	} else {
		target.ID = uuid.NewString()
	}
	target.UpdatedAt = time.Now().UTC()
	r.targets[target.ClientID] = *target
	return nil
}

func (r *memoryMacroRepository) GetTarget(ctx context.Context, clientID string) (*domain.MacroTarget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	target, ok := r.targets[clientID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := target
	return &copied, nil
}

func (r *memoryMacroRepository) CreateLog(ctx context.Context, log *domain.MacroLog) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log.ID = uuid.NewString()
	now := time.Now().UTC()
	log.CreatedAt = now
	log.UpdatedAt = now
	if log.Date.IsZero() {
		log.Date = now
	}
	r.logs[log.ID] = *log
	return log.ID, nil
}

func (r *memoryMacroRepository) GetLogByID(ctx context.Context, id string) (*domain.MacroLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	log, ok := r.logs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := log
	return &copied, nil
}

func (r *memoryMacroRepository) GetLogsByDay(ctx context.Context, clientID string, day time.Time) ([]domain.MacroLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dayStart := day.UTC().Truncate(24 * time.Hour)
	result := make([]domain.MacroLog, 0)
	for _, log := range r.logs {
		if log.ClientID != clientID {
			continue
		}
		if log.Date.UTC().Truncate(24 * time.Hour).Equal(dayStart) {
			result = append(result, log)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memoryMacroRepository) UpdateLog(ctx context.Context, log *domain.MacroLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.logs[log.ID]
	if !ok || existing.ClientID != log.ClientID {
		return repository.ErrNotFound
	}
	log.CreatedAt = existing.CreatedAt
	log.UpdatedAt = time.Now().UTC()
	r.logs[log.ID] = *log
	return nil
}

func (r *memoryMacroRepository) DeleteLog(ctx context.Context, id string, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	log, ok := r.logs[id]
	if !ok || log.ClientID != clientID {
		return repository.ErrNotFound
	}
	delete(r.logs, id)
	return nil
}
