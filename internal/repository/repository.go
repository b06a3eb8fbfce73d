package repository

import (
	"context"
	"time"

	"fitcoach/coaching-app/internal/domain"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("already exists")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	AddClientToTrainer(ctx context.Context, trainerID, clientID string) error
	GetClientsByTrainerID(ctx context.Context, trainerID string) ([]domain.User, error)
}

// ExerciseRepository defines the interface for the exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	GetByTrainerID(ctx context.Context, trainerID string) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id string, trainerID string) error // Ensure trainer owns the exercise
}

// SessionRepository defines the interface for workout sessions. A session
// embeds its exercises and sets, so Update persists the whole tree and
// Delete cascades to everything the session owns.
//
// List methods return sessions in creation order; aggregation relies on
// that for its insertion-order tie-break.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (string, error)
	GetByID(ctx context.Context, id string) (*domain.WorkoutSession, error)
	GetByClientID(ctx context.Context, clientID string) ([]domain.WorkoutSession, error)
	GetByClientAndStatus(ctx context.Context, clientID string, status domain.SessionStatus) ([]domain.WorkoutSession, error)
	GetByTrainerID(ctx context.Context, trainerID string) ([]domain.WorkoutSession, error)
	Update(ctx context.Context, session *domain.WorkoutSession) error
	Delete(ctx context.Context, id string) error
}

// MeasurementRepository is an append-only log: no update method exists,
// corrections are new entries.
type MeasurementRepository interface {
	Create(ctx context.Context, m *domain.Measurement) (string, error)
	GetByClientID(ctx context.Context, clientID string, mType domain.MeasurementType) ([]domain.Measurement, error) // Sorted by date ascending
	Delete(ctx context.Context, id string, clientID string) error
}

// MacroRepository holds the per-client macro target (single row, upsert)
// and the per-meal macro logs.
type MacroRepository interface {
	UpsertTarget(ctx context.Context, target *domain.MacroTarget) error
	GetTarget(ctx context.Context, clientID string) (*domain.MacroTarget, error)
	CreateLog(ctx context.Context, log *domain.MacroLog) (string, error)
	GetLogByID(ctx context.Context, id string) (*domain.MacroLog, error)
	GetLogsByDay(ctx context.Context, clientID string, day time.Time) ([]domain.MacroLog, error)
	UpdateLog(ctx context.Context, log *domain.MacroLog) error
	DeleteLog(ctx context.Context, id string, clientID string) error
}

// CheckInRepository stores one check-in per client per day.
type CheckInRepository interface {
	Upsert(ctx context.Context, checkIn *domain.CheckIn) (string, error)
	GetByClientAndDate(ctx context.Context, clientID string, date time.Time) (*domain.CheckIn, error)
	GetRecent(ctx context.Context, clientID string, limit int) ([]domain.CheckIn, error) // Newest first
}

// PhotoRepository stores progress-photo metadata; the image bytes live in
// object storage.
type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.ProgressPhoto) (string, error)
	GetByID(ctx context.Context, id string) (*domain.ProgressPhoto, error)
	GetByClientID(ctx context.Context, clientID string) ([]domain.ProgressPhoto, error)
	Delete(ctx context.Context, id string, clientID string) error
}
