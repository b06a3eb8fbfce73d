package service

import (
	"context"
	"errors"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrMacroLogNotFound = errors.New("macro log entry not found")
	ErrInvalidTarget    = errors.New("macro target values must be positive")
)

// NutritionService manages macro targets and meal logs. The compliance
// math over this data lives in the stats package.
type NutritionService interface {
	SetMacroTarget(ctx context.Context, clientID string, protein, carbs, fat, calories float64) (*domain.MacroTarget, error)
	GetMacroTarget(ctx context.Context, clientID string) (*domain.MacroTarget, error)

	LogMeal(ctx context.Context, log *domain.MacroLog) (*domain.MacroLog, error)
	UpdateMealLog(ctx context.Context, log *domain.MacroLog) (*domain.MacroLog, error)
	DeleteMealLog(ctx context.Context, clientID, logID string) error
}

type nutritionService struct {
	macroRepo repository.MacroRepository
}

// NewNutritionService creates a new instance of nutritionService.
func NewNutritionService(macroRepo repository.MacroRepository) NutritionService {
	return &nutritionService{macroRepo: macroRepo}
}

// SetMacroTarget upserts the client's single daily target. Targets must be
// positive: a zero or negative target would make the compliance percentage
// meaningless, so it is rejected here rather than guarded everywhere else.
func (s *nutritionService) SetMacroTarget(ctx context.Context, clientID string, protein, carbs, fat, calories float64) (*domain.MacroTarget, error) {
	if clientID == "" {
		return nil, ErrValidationFailed
	}
	if protein <= 0 || carbs <= 0 || fat <= 0 || calories <= 0 {
		return nil, ErrInvalidTarget
	}

	target := &domain.MacroTarget{
		ClientID: clientID,
		Protein:  protein,
		Carbs:    carbs,
		Fat:      fat,
		Calories: calories,
	}
	if err := s.macroRepo.UpsertTarget(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// GetMacroTarget retrieves the client's current target.
func (s *nutritionService) GetMacroTarget(ctx context.Context, clientID string) (*domain.MacroTarget, error) {
	target, err := s.macroRepo.GetTarget(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return target, nil
}

// LogMeal appends a meal entry to the client's log.
func (s *nutritionService) LogMeal(ctx context.Context, log *domain.MacroLog) (*domain.MacroLog, error) {
	if log.ClientID == "" || log.MealName == "" {
		return nil, ErrValidationFailed
	}
	if log.Protein < 0 || log.Carbs < 0 || log.Fat < 0 || log.Calories < 0 {
		return nil, ErrValidationFailed
	}

	if _, err := s.macroRepo.CreateLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// UpdateMealLog edits an existing entry, verifying client ownership.
func (s *nutritionService) UpdateMealLog(ctx context.Context, log *domain.MacroLog) (*domain.MacroLog, error) {
	if log.ID == "" || log.ClientID == "" {
		return nil, ErrValidationFailed
	}
	if log.Protein < 0 || log.Carbs < 0 || log.Fat < 0 || log.Calories < 0 {
		return nil, ErrValidationFailed
	}

	if err := s.macroRepo.UpdateLog(ctx, log); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMacroLogNotFound
		}
		return nil, err
	}
	return s.macroRepo.GetLogByID(ctx, log.ID)
}

// DeleteMealLog removes an entry, verifying client ownership.
func (s *nutritionService) DeleteMealLog(ctx context.Context, clientID, logID string) error {
	if err := s.macroRepo.DeleteLog(ctx, logID, clientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMacroLogNotFound
		}
		return err
	}
	return nil
}
