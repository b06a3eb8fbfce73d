package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"
)

// memoryUserRepository implements repository.UserRepository with a
// mutex-guarded map. All reads return copies so callers can never mutate
// stored state without going through the repository.
type memoryUserRepository struct {
	mu      sync.RWMutex
	users   map[string]domain.User
	byEmail map[string]string // email -> id
}

// NewUserRepository creates an in-memory user repository.
func NewUserRepository() repository.UserRepository {
	return &memoryUserRepository{
		users:   make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return "", repository.ErrDuplicate
	}

	user.ID = uuid.NewString()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.users[user.ID] = cloneUser(*user)
	r.byEmail[user.Email] = user.ID
	return user.ID, nil
}

func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user := cloneUser(r.users[id])
	return &user, nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := cloneUser(user)
	return &copied, nil
}

func (r *memoryUserRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if existing.Email != user.Email {
		if _, taken := r.byEmail[user.Email]; taken {
			return repository.ErrDuplicate
		}
		delete(r.byEmail, existing.Email)
		r.byEmail[user.Email] = user.ID
	}
	user.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = cloneUser(*user)
	return nil
}

func (r *memoryUserRepository) AddClientToTrainer(ctx context.Context, trainerID, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	trainer, ok := r.users[trainerID]
	if !ok {
		return repository.ErrNotFound
	}
	client, ok := r.users[clientID]
	if !ok {
		return repository.ErrNotFound
	}

	for _, id := range trainer.ClientIDs {
		if id == clientID {
			return nil // already linked
		}
	}
	now := time.Now().UTC()
	trainer.ClientIDs = append(append([]string{}, trainer.ClientIDs...), clientID)
	trainer.UpdatedAt = now
	client.TrainerID = trainerID
	client.UpdatedAt = now
	r.users[trainerID] = trainer
	r.users[clientID] = client
	return nil
}

func (r *memoryUserRepository) GetClientsByTrainerID(ctx context.Context, trainerID string) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trainer, ok := r.users[trainerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clients := make([]domain.User, 0, len(trainer.ClientIDs))
	for _, id := range trainer.ClientIDs {
		if client, ok := r.users[id]; ok {
			clients = append(clients, cloneUser(client))
		}
	}
	return clients, nil
}

func cloneUser(u domain.User) domain.User {
	u.ClientIDs = append([]string(nil), u.ClientIDs...)
	u.Goals = append([]string(nil), u.Goals...)
	return u
}
