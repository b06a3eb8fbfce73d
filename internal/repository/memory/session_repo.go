package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"
)

// memorySessionRepository keeps sessions in a map plus an ordered id list,
// so listings come back in creation order (the aggregator's tie-break rule
// depends on that). Sessions are deep-copied on every read and write: a
// session owns its exercises and sets, and handing out the stored slices
// would let callers bypass the domain's mutation rules.
type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]domain.WorkoutSession
	order    []string
}

// NewSessionRepository creates an in-memory workout session repository.
func NewSessionRepository() repository.SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[string]domain.WorkoutSession),
	}
}

func (r *memorySessionRepository) Create(ctx context.Context, session *domain.WorkoutSession) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session.ID = uuid.NewString()
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	r.sessions[session.ID] = cloneSession(*session)
	r.order = append(r.order, session.ID)
	return session.ID, nil
}

func (r *memorySessionRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := cloneSession(session)
	return &copied, nil
}

func (r *memorySessionRepository) GetByClientID(ctx context.Context, clientID string) ([]domain.WorkoutSession, error) {
	return r.list(func(s *domain.WorkoutSession) bool {
		return s.ClientID == clientID
	})
}

func (r *memorySessionRepository) GetByClientAndStatus(ctx context.Context, clientID string, status domain.SessionStatus) ([]domain.WorkoutSession, error) {
	return r.list(func(s *domain.WorkoutSession) bool {
		return s.ClientID == clientID && s.Status == status
	})
}

func (r *memorySessionRepository) GetByTrainerID(ctx context.Context, trainerID string) ([]domain.WorkoutSession, error) {
	return r.list(func(s *domain.WorkoutSession) bool {
		return s.TrainerID == trainerID
	})
}

func (r *memorySessionRepository) list(match func(*domain.WorkoutSession) bool) ([]domain.WorkoutSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.WorkoutSession, 0)
	for _, id := range r.order {
		session, ok := r.sessions[id]
		if !ok {
			continue
		}
		if match(&session) {
			result = append(result, cloneSession(session))
		}
	}
	return result, nil
}

func (r *memorySessionRepository) Update(ctx context.Context, session *domain.WorkoutSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.sessions[session.ID]
	if !ok {
		return repository.ErrNotFound
	}
	session.CreatedAt = existing.CreatedAt
	session.UpdatedAt = time.Now().UTC()
	r.sessions[session.ID] = cloneSession(*session)
	return nil
}

func (r *memorySessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.sessions, id)
	for i, sid := range r.order {
		if sid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func cloneSession(s domain.WorkoutSession) domain.WorkoutSession {
	exercises := make([]domain.WorkoutExercise, len(s.Exercises))
	for i, ex := range s.Exercises {
		ex.Sets = append([]domain.WorkoutSet(nil), ex.Sets...)
		exercises[i] = ex
	}
	s.Exercises = exercises
	if s.EndTime != nil {
		end := *s.EndTime
		s.EndTime = &end
	}
	if s.LastResumedAt != nil {
		resumed := *s.LastResumedAt
		s.LastResumedAt = &resumed
	}
	return s
}
