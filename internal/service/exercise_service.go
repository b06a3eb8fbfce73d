package service

import (
	"context"
	"errors"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrExerciseAccessDenied = errors.New("access denied to modify or delete this exercise")
	ErrValidationFailed     = errors.New("validation failed")
)

// ExerciseService manages the trainer-owned exercise catalog.
type ExerciseService interface {
	CreateExercise(ctx context.Context, trainerID, name, description string, muscleGroups []string, instructions, videoURL string) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, exerciseID string) (*domain.Exercise, error)
	GetExercisesByTrainer(ctx context.Context, trainerID string) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, trainerID, exerciseID, name, description string, muscleGroups []string, instructions, videoURL string) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, trainerID, exerciseID string) error
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
	}
}

// CreateExercise handles the creation of a new catalog exercise by a trainer.
func (s *exerciseService) CreateExercise(ctx context.Context, trainerID, name, description string, muscleGroups []string, instructions, videoURL string) (*domain.Exercise, error) {
	if name == "" || trainerID == "" {
		return nil, ErrValidationFailed
	}

	exercise := &domain.Exercise{
		TrainerID:    trainerID,
		Name:         name,
		Description:  description,
		MuscleGroups: muscleGroups,
		Instructions: instructions,
		VideoURL:     videoURL,
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	return s.exerciseRepo.GetByID(ctx, exerciseID)
}

// GetExerciseByID retrieves a single catalog exercise.
func (s *exerciseService) GetExerciseByID(ctx context.Context, exerciseID string) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// GetExercisesByTrainer retrieves all exercises for a specific trainer.
func (s *exerciseService) GetExercisesByTrainer(ctx context.Context, trainerID string) ([]domain.Exercise, error) {
	if trainerID == "" {
		return nil, ErrValidationFailed
	}
	return s.exerciseRepo.GetByTrainerID(ctx, trainerID)
}

// UpdateExercise handles updating an existing exercise, ensuring ownership.
func (s *exerciseService) UpdateExercise(ctx context.Context, trainerID, exerciseID, name, description string, muscleGroups []string, instructions, videoURL string) (*domain.Exercise, error) {
	if name == "" || trainerID == "" || exerciseID == "" {
		return nil, ErrValidationFailed
	}

	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if existing.TrainerID != trainerID {
		return nil, ErrExerciseAccessDenied
	}

	existing.Name = name
	existing.Description = description
	existing.MuscleGroups = muscleGroups
	existing.Instructions = instructions
	existing.VideoURL = videoURL

	if err := s.exerciseRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteExercise handles deleting an exercise, ensuring ownership.
// The repository's delete filter includes the trainer id, so ownership is
// enforced at the data layer as well.
func (s *exerciseService) DeleteExercise(ctx context.Context, trainerID, exerciseID string) error {
	if trainerID == "" || exerciseID == "" {
		return ErrValidationFailed
	}

	if err := s.exerciseRepo.Delete(ctx, exerciseID, trainerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	return nil
}
