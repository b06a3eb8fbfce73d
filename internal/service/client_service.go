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
	ErrClientNotFound     = errors.New("client not found")
	ErrUserNotClient      = errors.New("user with this email is not a client")
	ErrClientAccessDenied = errors.New("access denied to this client's data")
)

// ClientProfileUpdate is a partial update of a client's demographic fields.
type ClientProfileUpdate struct {
	Name      *string
	Phone     *string
	BirthDate *string
	Goals     []string
}

// ClientService manages the trainer's roster and the per-client logs that
// feed the analytics roll-ups: measurements and daily check-ins.
type ClientService interface {
	AddClientByEmail(ctx context.Context, trainerID, clientEmail string) (*domain.User, error)
	GetManagedClients(ctx context.Context, trainerID string) ([]domain.User, error)
	GetClient(ctx context.Context, trainerID, clientID string) (*domain.User, error)
	UpdateClientProfile(ctx context.Context, clientID string, upd ClientProfileUpdate) (*domain.User, error)

	AddMeasurement(ctx context.Context, clientID string, mType domain.MeasurementType, value float64, unit string, date time.Time) (*domain.Measurement, error)
	GetMeasurements(ctx context.Context, clientID string, mType domain.MeasurementType) ([]domain.Measurement, error)
	DeleteMeasurement(ctx context.Context, clientID, measurementID string) error

	SubmitCheckIn(ctx context.Context, checkIn *domain.CheckIn) (*domain.CheckIn, error)
	GetCheckIn(ctx context.Context, clientID string, date time.Time) (*domain.CheckIn, error)
	GetRecentCheckIns(ctx context.Context, clientID string, limit int) ([]domain.CheckIn, error)
}

type clientService struct {
	userRepo        repository.UserRepository
	measurementRepo repository.MeasurementRepository
	checkInRepo     repository.CheckInRepository
}

// NewClientService creates a new instance of clientService.
func NewClientService(
	userRepo repository.UserRepository,
	measurementRepo repository.MeasurementRepository,
	checkInRepo repository.CheckInRepository,
) ClientService {
	return &clientService{
		userRepo:        userRepo,
		measurementRepo: measurementRepo,
		checkInRepo:     checkInRepo,
	}
}

// AddClientByEmail links an existing client account to the trainer's roster.
func (s *clientService) AddClientByEmail(ctx context.Context, trainerID, clientEmail string) (*domain.User, error) {
	if trainerID == "" || clientEmail == "" {
		return nil, ErrValidationFailed
	}

	client, err := s.userRepo.GetByEmail(ctx, clientEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if !client.IsClient() {
		return nil, ErrUserNotClient
	}

	if err := s.userRepo.AddClientToTrainer(ctx, trainerID, client.ID); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, client.ID)
}

// GetManagedClients retrieves all clients on the trainer's roster.
func (s *clientService) GetManagedClients(ctx context.Context, trainerID string) ([]domain.User, error) {
	clients, err := s.userRepo.GetClientsByTrainerID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []domain.User{}, nil
		}
		return nil, err
	}
	return clients, nil
}

// GetClient retrieves one client, verifying the trainer manages them.
func (s *clientService) GetClient(ctx context.Context, trainerID, clientID string) (*domain.User, error) {
	client, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if client.TrainerID != trainerID {
		return nil, ErrClientAccessDenied
	}
	return client, nil
}

// UpdateClientProfile applies a partial update to the client's own fields.
func (s *clientService) UpdateClientProfile(ctx context.Context, clientID string, upd ClientProfileUpdate) (*domain.User, error) {
	client, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	if upd.Name != nil {
		client.Name = *upd.Name
	}
	if upd.Phone != nil {
		client.Phone = *upd.Phone
	}
	if upd.BirthDate != nil {
		client.BirthDate = *upd.BirthDate
	}
	if upd.Goals != nil {
		client.Goals = upd.Goals
	}

	if err := s.userRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// AddMeasurement appends an entry to the client's measurement log. The log
// is append-only; a wrong entry is corrected by deleting it and adding a
// new one.
func (s *clientService) AddMeasurement(ctx context.Context, clientID string, mType domain.MeasurementType, value float64, unit string, date time.Time) (*domain.Measurement, error) {
	if clientID == "" || mType == "" || value < 0 {
		return nil, ErrValidationFailed
	}

	m := &domain.Measurement{
		ClientID: clientID,
		Type:     mType,
		Value:    value,
		Unit:     unit,
		Date:     date,
	}
	if _, err := s.measurementRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// GetMeasurements retrieves the client's measurement history, oldest first.
// Pass an empty type for all types.
func (s *clientService) GetMeasurements(ctx context.Context, clientID string, mType domain.MeasurementType) ([]domain.Measurement, error) {
	return s.measurementRepo.GetByClientID(ctx, clientID, mType)
}

// DeleteMeasurement removes a mis-keyed entry.
func (s *clientService) DeleteMeasurement(ctx context.Context, clientID, measurementID string) error {
	if err := s.measurementRepo.Delete(ctx, measurementID, clientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	return nil
}

// SubmitCheckIn records or replaces the client's check-in for the day.
func (s *clientService) SubmitCheckIn(ctx context.Context, checkIn *domain.CheckIn) (*domain.CheckIn, error) {
	if checkIn.ClientID == "" {
		return nil, ErrValidationFailed
	}
	for _, score := range []int{checkIn.Energy, checkIn.Sleep, checkIn.Mood} {
		if score < 0 || score > 5 {
			return nil, ErrValidationFailed
		}
	}
	if checkIn.Date.IsZero() {
		checkIn.Date = time.Now().UTC()
	}

	if _, err := s.checkInRepo.Upsert(ctx, checkIn); err != nil {
		return nil, err
	}
	return checkIn, nil
}

// GetCheckIn retrieves the client's check-in for a specific day.
func (s *clientService) GetCheckIn(ctx context.Context, clientID string, date time.Time) (*domain.CheckIn, error) {
	checkIn, err := s.checkInRepo.GetByClientAndDate(ctx, clientID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return checkIn, nil
}

// GetRecentCheckIns retrieves the latest check-ins, newest first.
func (s *clientService) GetRecentCheckIns(ctx context.Context, clientID string, limit int) ([]domain.CheckIn, error) {
	return s.checkInRepo.GetRecent(ctx, clientID, limit)
}
