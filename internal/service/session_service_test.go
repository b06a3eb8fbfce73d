package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"
	"fitcoach/coaching-app/internal/repository/memory"
)

type sessionFixture struct {
	svc       SessionService
	sessions  repository.SessionRepository
	exercises repository.ExerciseRepository
	benchID   string
	squatID   string
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	ctx := context.Background()
	sessions := memory.NewSessionRepository()
	exercises := memory.NewExerciseRepository()

	benchID, err := exercises.Create(ctx, &domain.Exercise{
		TrainerID: "trainer-1",
		Name:      "Bench Press",
	})
	require.NoError(t, err)
	squatID, err := exercises.Create(ctx, &domain.Exercise{
		TrainerID: "trainer-1",
		Name:      "Squat",
	})
	require.NoError(t, err)

	return &sessionFixture{
		svc:       NewSessionService(sessions, exercises),
		sessions:  sessions,
		exercises: exercises,
		benchID:   benchID,
		squatID:   squatID,
	}
}

func TestCreateSession(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	t.Run("empty plan", func(t *testing.T) {
		session, err := f.svc.CreateSession(ctx, "trainer-1", "client-1", "Push Day", "chest focus", nil)
		require.NoError(t, err)
		assert.NotEmpty(t, session.ID)
		assert.Equal(t, domain.SessionScheduled, session.Status)
		assert.Empty(t, session.Exercises)
	})

	t.Run("planned exercises and sets", func(t *testing.T) {
		session, err := f.svc.CreateSession(ctx, "trainer-1", "client-1", "Leg Day", "", []PlannedExercise{
			{ExerciseID: f.squatID, Sets: 3, Reps: 5, Weight: 100, RestTime: 180},
		})
		require.NoError(t, err)
		require.Len(t, session.Exercises, 1)

		ex := session.Exercises[0]
		assert.Equal(t, "Squat", ex.ExerciseName)
		assert.Equal(t, f.squatID, ex.ExerciseID)
		require.Len(t, ex.Sets, 3)
		for i, set := range ex.Sets {
			assert.Equal(t, i+1, set.SetNumber)
			assert.Equal(t, 5, set.Reps)
			assert.Equal(t, 100.0, set.Weight)
			assert.Equal(t, 180, set.RestTime)
			assert.False(t, set.Completed)
		}
	})

	t.Run("unknown exercise", func(t *testing.T) {
		_, err := f.svc.CreateSession(ctx, "trainer-1", "client-1", "Leg Day", "", []PlannedExercise{
			{ExerciseID: "no-such-exercise", Sets: 1},
		})
		assert.ErrorIs(t, err, ErrExerciseNotFound)
	})

	t.Run("missing required fields", func(t *testing.T) {
		_, err := f.svc.CreateSession(ctx, "trainer-1", "client-1", "", "", nil)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})
}

func TestSessionLifecycleThroughService(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	session, err := f.svc.CreateSession(ctx, "trainer-1", "client-1", "Push Day", "", nil)
	require.NoError(t, err)

	started, err := f.svc.StartSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionInProgress, started.Status)
	assert.False(t, started.StartTime.IsZero())

	paused, err := f.svc.PauseSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionPaused, paused.Status)

	resumed, err := f.svc.ResumeSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionInProgress, resumed.Status)

	completed, err := f.svc.CompleteSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, completed.Status)
	assert.NotNil(t, completed.EndTime)

	// The terminal state persisted: a reload shows it too.
	reloaded, err := f.svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, reloaded.Status)

	_, err = f.svc.StartSession(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = f.svc.CancelSession(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSessionMutationsThroughService(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	session, err := f.svc.CreateSession(ctx, "trainer-1", "client-1", "Push Day", "", nil)
	require.NoError(t, err)

	withBench, err := f.svc.AddExercise(ctx, session.ID, f.benchID)
	require.NoError(t, err)
	require.Len(t, withBench.Exercises, 1)
	bench := withBench.Exercises[0]
	assert.Equal(t, "Bench Press", bench.ExerciseName)

	_, err = f.svc.AddExercise(ctx, session.ID, "no-such-exercise")
	assert.ErrorIs(t, err, ErrExerciseNotFound)

	withSet, err := f.svc.AddSet(ctx, session.ID, bench.ID)
	require.NoError(t, err)
	set := withSet.Exercises[0].Sets[0]
	assert.Equal(t, domain.DefaultSetReps, set.Reps)

	reps, weight := 8, 62.5
	updated, err := f.svc.UpdateSet(ctx, session.ID, bench.ID, set.ID, domain.SetUpdate{Reps: &reps, Weight: &weight})
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Exercises[0].Sets[0].Reps)
	assert.Equal(t, 62.5, updated.Exercises[0].Sets[0].Weight)

	badWeight := 62.3
	_, err = f.svc.UpdateSet(ctx, session.ID, bench.ID, set.ID, domain.SetUpdate{Weight: &badWeight})
	assert.ErrorIs(t, err, domain.ErrValidation)

	done, err := f.svc.CompleteSet(ctx, session.ID, bench.ID, set.ID)
	require.NoError(t, err)
	assert.True(t, done.Exercises[0].Sets[0].Completed)

	reset, err := f.svc.ResetExercise(ctx, session.ID, bench.ID)
	require.NoError(t, err)
	assert.False(t, reset.Exercises[0].Sets[0].Completed)

	removed, err := f.svc.RemoveSet(ctx, session.ID, bench.ID, set.ID)
	require.NoError(t, err)
	assert.Empty(t, removed.Exercises[0].Sets)

	noBench, err := f.svc.RemoveExercise(ctx, session.ID, bench.ID)
	require.NoError(t, err)
	assert.Empty(t, noBench.Exercises)
}

func TestMutationRejectedAfterCompletion(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	session, err := f.svc.CreateSession(ctx, "trainer-1", "client-1", "Push Day", "", []PlannedExercise{
		{ExerciseID: f.benchID, Sets: 1},
	})
	require.NoError(t, err)
	bench := session.Exercises[0]

	_, err = f.svc.StartSession(ctx, session.ID)
	require.NoError(t, err)
	_, err = f.svc.CompleteSession(ctx, session.ID)
	require.NoError(t, err)

	_, err = f.svc.AddSet(ctx, session.ID, bench.ID)
	assert.ErrorIs(t, err, domain.ErrSessionImmutable)
	_, err = f.svc.CompleteSet(ctx, session.ID, bench.ID, bench.Sets[0].ID)
	assert.ErrorIs(t, err, domain.ErrSessionImmutable)
}

func TestDeleteSessionOwnership(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	session, err := f.svc.CreateSession(ctx, "trainer-1", "client-1", "Push Day", "", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.DeleteSession(ctx, "trainer-2", session.ID), ErrSessionDenied)

	require.NoError(t, f.svc.DeleteSession(ctx, "trainer-1", session.ID))
	_, err = f.svc.GetSession(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, f.svc.DeleteSession(ctx, "trainer-1", "no-such-session"), ErrSessionNotFound)
}

func TestConcurrentSetCompletionsAllPersist(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	session, err := f.svc.CreateSession(ctx, "trainer-1", "client-1", "Push Day", "", []PlannedExercise{
		{ExerciseID: f.benchID, Sets: 10},
	})
	require.NoError(t, err)
	bench := session.Exercises[0]
	require.Len(t, bench.Sets, 10)

	_, err = f.svc.StartSession(ctx, session.ID)
	require.NoError(t, err)

	// Concurrent completions of different sets must all survive: the
	// per-client lock serializes the read-modify-write cycles.
	var wg sync.WaitGroup
	for _, set := range bench.Sets {
		wg.Add(1)
		go func(setID string) {
			defer wg.Done()
			_, err := f.svc.CompleteSet(ctx, session.ID, bench.ID, setID)
			assert.NoError(t, err)
		}(set.ID)
	}
	wg.Wait()

	final, err := f.svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	for _, set := range final.Exercises[0].Sets {
		assert.True(t, set.Completed, "set %d should be completed", set.SetNumber)
	}
	assert.InDelta(t, 1.0, final.Progress(), 1e-9)
}

func TestElapsedTimePersistsAcrossPause(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	// Inject a fake clock so pause intervals are deterministic.
	svc := f.svc.(*sessionService)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	current := base
	svc.now = func() time.Time { return current }

	session, err := f.svc.CreateSession(ctx, "trainer-1", "client-1", "Push Day", "", nil)
	require.NoError(t, err)

	_, err = f.svc.StartSession(ctx, session.ID)
	require.NoError(t, err)

	current = base.Add(10 * time.Minute)
	paused, err := f.svc.PauseSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, paused.ActiveDuration)

	current = base.Add(30 * time.Minute)
	_, err = f.svc.ResumeSession(ctx, session.ID)
	require.NoError(t, err)

	current = base.Add(35 * time.Minute)
	completed, err := f.svc.CompleteSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, completed.ActiveDuration)
	assert.Equal(t, 15*time.Minute, completed.Elapsed(base.Add(2*time.Hour)))
}
