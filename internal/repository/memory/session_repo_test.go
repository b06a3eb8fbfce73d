package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"
)

func TestSessionRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()

	session := &domain.WorkoutSession{
		ClientID:  "client-1",
		TrainerID: "trainer-1",
		Name:      "Push Day",
		Status:    domain.SessionScheduled,
	}
	id, err := repo.Create(ctx, session)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.False(t, session.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Push Day", got.Name)

	_, err = repo.GetByID(ctx, "no-such-id")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got.Name = "Pull Day"
	require.NoError(t, repo.Update(ctx, got))
	updated, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Pull Day", updated.Name)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, id), repository.ErrNotFound)
}

func TestSessionRepositoryListsInCreationOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()

	names := []string{"first", "second", "third"}
	for _, name := range names {
		_, err := repo.Create(ctx, &domain.WorkoutSession{
			ClientID:  "client-1",
			TrainerID: "trainer-1",
			Name:      name,
			Status:    domain.SessionCompleted,
		})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &domain.WorkoutSession{
		ClientID:  "client-2",
		TrainerID: "trainer-1",
		Name:      "other client",
		Status:    domain.SessionScheduled,
	})
	require.NoError(t, err)

	byClient, err := repo.GetByClientID(ctx, "client-1")
	require.NoError(t, err)
	require.Len(t, byClient, 3)
	for i, s := range byClient {
		assert.Equal(t, names[i], s.Name)
	}

	completed, err := repo.GetByClientAndStatus(ctx, "client-1", domain.SessionCompleted)
	require.NoError(t, err)
	assert.Len(t, completed, 3)

	scheduled, err := repo.GetByClientAndStatus(ctx, "client-1", domain.SessionScheduled)
	require.NoError(t, err)
	assert.Empty(t, scheduled)

	byTrainer, err := repo.GetByTrainerID(ctx, "trainer-1")
	require.NoError(t, err)
	assert.Len(t, byTrainer, 4)
}

func TestSessionRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()

	session := &domain.WorkoutSession{
		ClientID:  "client-1",
		TrainerID: "trainer-1",
		Name:      "Push Day",
		Status:    domain.SessionScheduled,
		Exercises: []domain.WorkoutExercise{{
			ID:           "we-1",
			ExerciseID:   "ex-bench",
			ExerciseName: "Bench Press",
			Order:        1,
			Sets:         []domain.WorkoutSet{{ID: "s-1", SetNumber: 1, Reps: 10}},
		}},
	}
	id, err := repo.Create(ctx, session)
	require.NoError(t, err)

	// Mutating a returned session must not leak into the store.
	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	got.Exercises[0].Sets[0].Completed = true
	got.Exercises[0].ExerciseName = "tampered"

	fresh, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, fresh.Exercises[0].Sets[0].Completed)
	assert.Equal(t, "Bench Press", fresh.Exercises[0].ExerciseName)
}
