package service

import (
	"context"
	"errors"
	"time"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrSessionNotFound  = errors.New("workout session not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrSessionDenied    = errors.New("access denied to this workout session")
)

// PlannedExercise describes one exercise to pre-populate when a trainer
// schedules a session.
type PlannedExercise struct {
	ExerciseID string
	Sets       int
	Reps       int
	Weight     float64
	RestTime   int
}

// SessionService owns the workout session lifecycle and every mutation of
// the exercises and sets inside a session. All mutations for one client are
// serialized through a per-client lock; reads work on the snapshot copies
// the repositories hand out.
type SessionService interface {
	CreateSession(ctx context.Context, trainerID, clientID, name, description string, planned []PlannedExercise) (*domain.WorkoutSession, error)
	GetSession(ctx context.Context, sessionID string) (*domain.WorkoutSession, error)
	GetSessionsByClient(ctx context.Context, clientID string) ([]domain.WorkoutSession, error)
	GetSessionsByTrainer(ctx context.Context, trainerID string) ([]domain.WorkoutSession, error)
	DeleteSession(ctx context.Context, trainerID, sessionID string) error

	StartSession(ctx context.Context, sessionID string) (*domain.WorkoutSession, error)
	PauseSession(ctx context.Context, sessionID string) (*domain.WorkoutSession, error)
	ResumeSession(ctx context.Context, sessionID string) (*domain.WorkoutSession, error)
	CompleteSession(ctx context.Context, sessionID string) (*domain.WorkoutSession, error)
	CancelSession(ctx context.Context, sessionID string) (*domain.WorkoutSession, error)

	AddExercise(ctx context.Context, sessionID, exerciseID string) (*domain.WorkoutSession, error)
	RemoveExercise(ctx context.Context, sessionID, workoutExerciseID string) (*domain.WorkoutSession, error)
	AddSet(ctx context.Context, sessionID, workoutExerciseID string) (*domain.WorkoutSession, error)
	RemoveSet(ctx context.Context, sessionID, workoutExerciseID, setID string) (*domain.WorkoutSession, error)
	UpdateSet(ctx context.Context, sessionID, workoutExerciseID, setID string, upd domain.SetUpdate) (*domain.WorkoutSession, error)
	CompleteSet(ctx context.Context, sessionID, workoutExerciseID, setID string) (*domain.WorkoutSession, error)
	ResetExercise(ctx context.Context, sessionID, workoutExerciseID string) (*domain.WorkoutSession, error)
}

type sessionService struct {
	sessions  repository.SessionRepository
	exercises repository.ExerciseRepository
	locks     *clientLocks
	now       func() time.Time
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(sessions repository.SessionRepository, exercises repository.ExerciseRepository) SessionService {
	return &sessionService{
		sessions:  sessions,
		exercises: exercises,
		locks:     newClientLocks(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateSession schedules a new session for a client, optionally
// pre-populated with planned exercises and sets.
func (s *sessionService) CreateSession(ctx context.Context, trainerID, clientID, name, description string, planned []PlannedExercise) (*domain.WorkoutSession, error) {
	if trainerID == "" || clientID == "" || name == "" {
		return nil, ErrValidationFailed
	}

	session := &domain.WorkoutSession{
		ClientID:    clientID,
		TrainerID:   trainerID,
		Name:        name,
		Description: description,
		Exercises:   []domain.WorkoutExercise{},
		Status:      domain.SessionScheduled,
	}

	for _, plan := range planned {
		catalog, err := s.exercises.GetByID(ctx, plan.ExerciseID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrExerciseNotFound
			}
			return nil, err
		}
		ex, err := session.AddExercise(catalog.ID, catalog.Name)
		if err != nil {
			return nil, err
		}
		for i := 0; i < plan.Sets; i++ {
			set, err := session.AddSet(ex.ID)
			if err != nil {
				return nil, err
			}
			upd := domain.SetUpdate{}
			if plan.Reps > 0 {
				reps := plan.Reps
				upd.Reps = &reps
			}
			if plan.Weight > 0 {
				weight := plan.Weight
				upd.Weight = &weight
			}
			if plan.RestTime > 0 {
				rest := plan.RestTime
				upd.RestTime = &rest
			}
			if upd.Reps != nil || upd.Weight != nil || upd.RestTime != nil {
				if err := session.UpdateSet(ex.ID, set.ID, upd); err != nil {
					return nil, err
				}
			}
		}
	}

	id, err := s.sessions.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	return s.sessions.GetByID(ctx, id)
}

func (s *sessionService) GetSession(ctx context.Context, sessionID string) (*domain.WorkoutSession, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *sessionService) GetSessionsByClient(ctx context.Context, clientID string) ([]domain.WorkoutSession, error) {
	return s.sessions.GetByClientID(ctx, clientID)
}

func (s *sessionService) GetSessionsByTrainer(ctx context.Context, trainerID string) ([]domain.WorkoutSession, error) {
	return s.sessions.GetByTrainerID(ctx, trainerID)
}

// DeleteSession removes a session and, through exclusive ownership,
// everything inside it. Only the owning trainer may delete.
func (s *sessionService) DeleteSession(ctx context.Context, trainerID, sessionID string) error {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.TrainerID != trainerID {
		return ErrSessionDenied
	}

	unlock := s.locks.Lock(session.ClientID)
	defer unlock()

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return nil
}

// mutate loads the session, serializes on its client, re-reads under the
// lock, applies fn and persists the result. The reload matters: the first
// read happens outside the lock and may be stale by the time we hold it.
func (s *sessionService) mutate(ctx context.Context, sessionID string, fn func(*domain.WorkoutSession) error) (*domain.WorkoutSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(session.ClientID)
	defer unlock()

	session, err = s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// --- lifecycle ---

func (s *sessionService) StartSession(ctx context.Context, sessionID string) (*domain.WorkoutSession, error) {
	return s.mutate(ctx, sessionID, func(session *domain.WorkoutSession) error {
		return session.Start(s.now())
	})
}

func (s *sessionService) PauseSession(ctx context.Context, sessionID string) (*domain.WorkoutSession, error) {
	return s.mutate(ctx, sessionID, func(session *domain.WorkoutSession) error {
		return session.Pause(s.now())
	})
}

func (s *sessionService) ResumeSession(ctx context.Context, sessionID string) (*domain.WorkoutSession, error) {
	return s.mutate(ctx, sessionID, func(session *domain.WorkoutSession) error {
		return session.Resume(s.now())
	})
}

func (s *sessionService) CompleteSession(ctx context.Context, sessionID string) (*domain.WorkoutSession, error) {
	return s.mutate(ctx, sessionID, func(session *domain.WorkoutSession) error {
		return session.Complete(s.now())
	})
}

func (s *sessionService) CancelSession(ctx context.Context, sessionID string) (*domain.WorkoutSession, error) {
	return s.mutate(ctx, sessionID, func(session *domain.WorkoutSession) error {
		return session.Cancel(s.now())
	})
}

// --- exercise and set mutations ---

// AddExercise appends a catalog exercise to the session. The catalog entry
// is referenced by id with the name denormalized for display.
func (s *sessionService) AddExercise(ctx context.Context, sessionID, exerciseID string) (*domain.WorkoutSession, error) {
	catalog, err := s.exercises.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return s.mutate(ctx, sessionID, func(session *domain.WorkoutSession) error {
		_, err := session.AddExercise(catalog.ID, catalog.Name)
		return err
	})
}

func (s *sessionService) RemoveExercise(ctx context.Context, sessionID, workoutExerciseID string) (*domain.WorkoutSession, error) {
	return s.mutate(ctx, sessionID, func(session *domain.WorkoutSession) error {
		return session.RemoveExercise(workoutExerciseID)
	})
}

func (s *sessionService) AddSet(ctx context.Context, sessionID, workoutExerciseID string) (*domain.WorkoutSession, error) {
	return s.mutate(ctx, sessionID, func(session *domain.WorkoutSession) error {
		_, err := session.AddSet(workoutExerciseID)
		return err
	})
}

func (s *sessionService) RemoveSet(ctx context.Context, sessionID, workoutExerciseID, setID string) (*domain.WorkoutSession, error) {
	return s.mutate(ctx, sessionID, func(session *domain.WorkoutSession) error {
		return session.RemoveSet(workoutExerciseID, setID)
	})
}

func (s *sessionService) UpdateSet(ctx context.Context, sessionID, workoutExerciseID, setID string, upd domain.SetUpdate) (*domain.WorkoutSession, error) {
	return s.mutate(ctx, sessionID, func(session *domain.WorkoutSession) error {
		return session.UpdateSet(workoutExerciseID, setID, upd)
	})
}

func (s *sessionService) CompleteSet(ctx context.Context, sessionID, workoutExerciseID, setID string) (*domain.WorkoutSession, error) {
	return s.mutate(ctx, sessionID, func(session *domain.WorkoutSession) error {
		return session.CompleteSet(workoutExerciseID, setID)
	})
}

func (s *sessionService) ResetExercise(ctx context.Context, sessionID, workoutExerciseID string) (*domain.WorkoutSession, error) {
	return s.mutate(ctx, sessionID, func(session *domain.WorkoutSession) error {
		return session.ResetExercise(workoutExerciseID)
	})
}
