package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"
	"fitcoach/coaching-app/internal/repository/memory"
)

type clientFixture struct {
	svc       ClientService
	users     repository.UserRepository
	trainerID string
	clientID  string
}

func newClientFixture(t *testing.T) *clientFixture {
	t.Helper()
	ctx := context.Background()
	users := memory.NewUserRepository()

	trainerID, err := users.Create(ctx, &domain.User{
		Name: "Coach", Email: "coach@example.com", Role: domain.RoleTrainer,
	})
	require.NoError(t, err)
	clientID, err := users.Create(ctx, &domain.User{
		Name: "Client", Email: "client@example.com", Role: domain.RoleClient,
	})
	require.NoError(t, err)

	return &clientFixture{
		svc:       NewClientService(users, memory.NewMeasurementRepository(), memory.NewCheckInRepository()),
		users:     users,
		trainerID: trainerID,
		clientID:  clientID,
	}
}

func TestAddClientByEmail(t *testing.T) {
	f := newClientFixture(t)
	ctx := context.Background()

	client, err := f.svc.AddClientByEmail(ctx, f.trainerID, "client@example.com")
	require.NoError(t, err)
	assert.Equal(t, f.trainerID, client.TrainerID)

	roster, err := f.svc.GetManagedClients(ctx, f.trainerID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, f.clientID, roster[0].ID)

	// Linking twice is a no-op.
	_, err = f.svc.AddClientByEmail(ctx, f.trainerID, "client@example.com")
	require.NoError(t, err)
	roster, err = f.svc.GetManagedClients(ctx, f.trainerID)
	require.NoError(t, err)
	assert.Len(t, roster, 1)

	_, err = f.svc.AddClientByEmail(ctx, f.trainerID, "nobody@example.com")
	assert.ErrorIs(t, err, ErrClientNotFound)

	// A trainer account cannot be added as a client.
	_, err = f.svc.AddClientByEmail(ctx, f.trainerID, "coach@example.com")
	assert.ErrorIs(t, err, ErrUserNotClient)
}

func TestGetClientEnforcesRoster(t *testing.T) {
	f := newClientFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddClientByEmail(ctx, f.trainerID, "client@example.com")
	require.NoError(t, err)

	got, err := f.svc.GetClient(ctx, f.trainerID, f.clientID)
	require.NoError(t, err)
	assert.Equal(t, "Client", got.Name)

	_, err = f.svc.GetClient(ctx, "other-trainer", f.clientID)
	assert.ErrorIs(t, err, ErrClientAccessDenied)

	_, err = f.svc.GetClient(ctx, f.trainerID, "no-such-client")
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestUpdateClientProfilePartial(t *testing.T) {
	f := newClientFixture(t)
	ctx := context.Background()

	phone := "+1 555 0100"
	updated, err := f.svc.UpdateClientProfile(ctx, f.clientID, ClientProfileUpdate{
		Phone: &phone,
		Goals: []string{"strength", "fat loss"},
	})
	require.NoError(t, err)
	assert.Equal(t, "+1 555 0100", updated.Phone)
	assert.Equal(t, []string{"strength", "fat loss"}, updated.Goals)
	assert.Equal(t, "Client", updated.Name) // untouched
}

func TestAddMeasurementValidation(t *testing.T) {
	f := newClientFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()

	m, err := f.svc.AddMeasurement(ctx, f.clientID, domain.MeasurementWeight, 180, "lbs", now)
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)

	_, err = f.svc.AddMeasurement(ctx, f.clientID, domain.MeasurementWeight, -1, "lbs", now)
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = f.svc.AddMeasurement(ctx, f.clientID, "", 180, "lbs", now)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestSubmitCheckInValidatesScores(t *testing.T) {
	f := newClientFixture(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	checkIn, err := f.svc.SubmitCheckIn(ctx, &domain.CheckIn{
		ClientID: f.clientID,
		Date:     day,
		Weight:   180,
		Energy:   4,
		Sleep:    3,
		Mood:     5,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, checkIn.ID)

	_, err = f.svc.SubmitCheckIn(ctx, &domain.CheckIn{
		ClientID: f.clientID,
		Date:     day,
		Energy:   6,
	})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = f.svc.SubmitCheckIn(ctx, &domain.CheckIn{Date: day})
	assert.ErrorIs(t, err, ErrValidationFailed)

	got, err := f.svc.GetCheckIn(ctx, f.clientID, day)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Energy)
}
