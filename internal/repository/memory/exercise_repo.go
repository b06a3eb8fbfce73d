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

type memoryExerciseRepository struct {
	mu        sync.RWMutex
	exercises map[string]domain.Exercise
}

// NewExerciseRepository creates an in-memory exercise catalog repository.
func NewExerciseRepository() repository.ExerciseRepository {
	return &memoryExerciseRepository{
		exercises: make(map[string]domain.Exercise),
	}
}

func (r *memoryExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exercise.ID = uuid.NewString()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	r.exercises[exercise.ID] = cloneExercise(*exercise)
	return exercise.ID, nil
}

func (r *memoryExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exercise, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := cloneExercise(exercise)
	return &copied, nil
}

func (r *memoryExerciseRepository) GetByTrainerID(ctx context.Context, trainerID string) ([]domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Exercise, 0)
	for _, exercise := range r.exercises {
		if exercise.TrainerID == trainerID {
			result = append(result, cloneExercise(exercise))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt) // newest first
	})
	return result, nil
}

func (r *memoryExerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.exercises[exercise.ID]
	if !ok {
		return repository.ErrNotFound
	}
	exercise.TrainerID = existing.TrainerID // ownership never changes on update
	exercise.CreatedAt = existing.CreatedAt
	exercise.UpdatedAt = time.Now().UTC()
	r.exercises[exercise.ID] = cloneExercise(*exercise)
	return nil
}

func (r *memoryExerciseRepository) Delete(ctx context.Context, id string, trainerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	exercise, ok := r.exercises[id]
	if !ok || exercise.TrainerID != trainerID {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

func cloneExercise(e domain.Exercise) domain.Exercise {
	e.MuscleGroups = append([]string(nil), e.MuscleGroups...)
	return e
}
