package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() *WorkoutSession {
	return &WorkoutSession{
		ID:        "session-1",
		ClientID:  "client-1",
		TrainerID: "trainer-1",
		Name:      "Push Day",
		Exercises: []WorkoutExercise{},
		Status:    SessionScheduled,
	}
}

func TestSessionLifecycle(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("full happy path", func(t *testing.T) {
		s := newTestSession()
		require.NoError(t, s.Start(now))
		assert.Equal(t, SessionInProgress, s.Status)
		assert.Equal(t, now, s.StartTime)

		require.NoError(t, s.Pause(now.Add(10*time.Minute)))
		assert.Equal(t, SessionPaused, s.Status)

		require.NoError(t, s.Resume(now.Add(15*time.Minute)))
		assert.Equal(t, SessionInProgress, s.Status)

		require.NoError(t, s.Complete(now.Add(45*time.Minute)))
		assert.Equal(t, SessionCompleted, s.Status)
		require.NotNil(t, s.EndTime)
		assert.Equal(t, now.Add(45*time.Minute), *s.EndTime)
	})

	t.Run("start requires scheduled", func(t *testing.T) {
		s := newTestSession()
		require.NoError(t, s.Start(now))
		assert.ErrorIs(t, s.Start(now), ErrInvalidTransition)
	})

	t.Run("pause requires in progress", func(t *testing.T) {
		s := newTestSession()
		assert.ErrorIs(t, s.Pause(now), ErrInvalidTransition)
	})

	t.Run("resume requires paused", func(t *testing.T) {
		s := newTestSession()
		require.NoError(t, s.Start(now))
		assert.ErrorIs(t, s.Resume(now), ErrInvalidTransition)
	})

	t.Run("complete from paused", func(t *testing.T) {
		s := newTestSession()
		require.NoError(t, s.Start(now))
		require.NoError(t, s.Pause(now.Add(time.Minute)))
		require.NoError(t, s.Complete(now.Add(2*time.Minute)))
		assert.Equal(t, SessionCompleted, s.Status)
	})

	t.Run("complete requires active session", func(t *testing.T) {
		s := newTestSession()
		assert.ErrorIs(t, s.Complete(now), ErrInvalidTransition)
	})

	t.Run("cancel allowed from scheduled", func(t *testing.T) {
		s := newTestSession()
		require.NoError(t, s.Cancel(now))
		assert.Equal(t, SessionCancelled, s.Status)
	})

	t.Run("cancel allowed while paused", func(t *testing.T) {
		s := newTestSession()
		require.NoError(t, s.Start(now))
		require.NoError(t, s.Pause(now.Add(time.Minute)))
		require.NoError(t, s.Cancel(now.Add(2*time.Minute)))
		assert.Equal(t, SessionCancelled, s.Status)
	})

	t.Run("cancel rejected after complete", func(t *testing.T) {
		s := newTestSession()
		require.NoError(t, s.Start(now))
		require.NoError(t, s.Complete(now.Add(time.Minute)))
		assert.ErrorIs(t, s.Cancel(now.Add(2*time.Minute)), ErrInvalidTransition)
	})
}

func TestSessionElapsedExcludesPauses(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	s := newTestSession()
	require.NoError(t, s.Start(now))

	// 10 active minutes, then a 20 minute break, then 5 more active minutes.
	require.NoError(t, s.Pause(now.Add(10*time.Minute)))
	assert.Equal(t, 10*time.Minute, s.Elapsed(now.Add(25*time.Minute)))

	require.NoError(t, s.Resume(now.Add(30*time.Minute)))
	assert.Equal(t, 12*time.Minute, s.Elapsed(now.Add(32*time.Minute)))

	require.NoError(t, s.Complete(now.Add(35*time.Minute)))
	assert.Equal(t, 15*time.Minute, s.Elapsed(now.Add(2*time.Hour)))
}

func TestAddExercise(t *testing.T) {
	s := newTestSession()

	bench, err := s.AddExercise("ex-bench", "Bench Press")
	require.NoError(t, err)
	assert.Equal(t, 1, bench.Order)
	assert.Empty(t, bench.Sets)

	squat, err := s.AddExercise("ex-squat", "Squat")
	require.NoError(t, err)
	assert.Equal(t, 2, squat.Order)
	assert.Equal(t, "Squat", squat.ExerciseName)
	assert.NotEqual(t, bench.ID, squat.ID)
}

func TestRemoveExerciseRenumbers(t *testing.T) {
	s := newTestSession()
	a, _ := s.AddExercise("ex-a", "A")
	b, _ := s.AddExercise("ex-b", "B")
	c, _ := s.AddExercise("ex-c", "C")
	_ = a

	require.NoError(t, s.RemoveExercise(b.ID))

	require.Len(t, s.Exercises, 2)
	assert.Equal(t, 1, s.Exercises[0].Order)
	assert.Equal(t, 2, s.Exercises[1].Order)
	assert.Equal(t, c.ExerciseID, s.Exercises[1].ExerciseID)

	assert.ErrorIs(t, s.RemoveExercise("no-such-id"), ErrNotFound)
}

func TestAddSetCarriesForward(t *testing.T) {
	s := newTestSession()
	ex, _ := s.AddExercise("ex-bench", "Bench Press")

	first, err := s.AddSet(ex.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.SetNumber)
	assert.Equal(t, DefaultSetReps, first.Reps)
	assert.Equal(t, float64(DefaultSetWeight), first.Weight)
	assert.Equal(t, DefaultSetRestTime, first.RestTime)

	reps, weight, rest := 8, 62.5, 120
	require.NoError(t, s.UpdateSet(ex.ID, first.ID, SetUpdate{Reps: &reps, Weight: &weight, RestTime: &rest}))

	second, err := s.AddSet(ex.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, second.SetNumber)
	assert.Equal(t, 8, second.Reps)
	assert.Equal(t, 62.5, second.Weight)
	assert.Equal(t, 120, second.RestTime)
	assert.False(t, second.Completed)
}

func TestRemoveSetRenumbers(t *testing.T) {
	s := newTestSession()
	ex, _ := s.AddExercise("ex-bench", "Bench Press")
	s1, _ := s.AddSet(ex.ID)
	s2, _ := s.AddSet(ex.ID)
	s3, _ := s.AddSet(ex.ID)

	require.NoError(t, s.RemoveSet(ex.ID, s2.ID))

	sets := s.Exercise(ex.ID).Sets
	require.Len(t, sets, 2)
	assert.Equal(t, s1.ID, sets[0].ID)
	assert.Equal(t, 1, sets[0].SetNumber)
	assert.Equal(t, s3.ID, sets[1].ID)
	assert.Equal(t, 2, sets[1].SetNumber)

	assert.ErrorIs(t, s.RemoveSet(ex.ID, "no-such-set"), ErrNotFound)
	assert.ErrorIs(t, s.RemoveSet("no-such-exercise", s1.ID), ErrNotFound)
}

func TestUpdateSetValidation(t *testing.T) {
	s := newTestSession()
	ex, _ := s.AddExercise("ex-bench", "Bench Press")
	set, _ := s.AddSet(ex.ID)

	t.Run("rejects zero reps", func(t *testing.T) {
		reps := 0
		assert.ErrorIs(t, s.UpdateSet(ex.ID, set.ID, SetUpdate{Reps: &reps}), ErrValidation)
	})

	t.Run("rejects negative weight", func(t *testing.T) {
		w := -5.0
		assert.ErrorIs(t, s.UpdateSet(ex.ID, set.ID, SetUpdate{Weight: &w}), ErrValidation)
	})

	t.Run("rejects off-grid weight", func(t *testing.T) {
		w := 60.3
		assert.ErrorIs(t, s.UpdateSet(ex.ID, set.ID, SetUpdate{Weight: &w}), ErrValidation)
	})

	t.Run("accepts half unit weight", func(t *testing.T) {
		w := 60.5
		require.NoError(t, s.UpdateSet(ex.ID, set.ID, SetUpdate{Weight: &w}))
		assert.Equal(t, 60.5, s.Exercise(ex.ID).Sets[0].Weight)
	})

	t.Run("rejects negative rest time", func(t *testing.T) {
		rest := -1
		assert.ErrorIs(t, s.UpdateSet(ex.ID, set.ID, SetUpdate{RestTime: &rest}), ErrValidation)
	})

	t.Run("rejected update leaves set untouched", func(t *testing.T) {
		reps := 0
		w := 100.0
		_ = s.UpdateSet(ex.ID, set.ID, SetUpdate{Reps: &reps, Weight: &w})
		got := s.Exercise(ex.ID).Sets[0]
		assert.Equal(t, DefaultSetReps, got.Reps)
		assert.Equal(t, 60.5, got.Weight)
	})

	t.Run("nil fields are untouched", func(t *testing.T) {
		notes := "felt heavy"
		require.NoError(t, s.UpdateSet(ex.ID, set.ID, SetUpdate{Notes: &notes}))
		got := s.Exercise(ex.ID).Sets[0]
		assert.Equal(t, DefaultSetReps, got.Reps)
		assert.Equal(t, 60.5, got.Weight)
		assert.Equal(t, "felt heavy", got.Notes)
	})
}

func TestCompleteSetIdempotent(t *testing.T) {
	s := newTestSession()
	ex, _ := s.AddExercise("ex-bench", "Bench Press")
	set, _ := s.AddSet(ex.ID)

	require.NoError(t, s.CompleteSet(ex.ID, set.ID))
	assert.True(t, s.Exercise(ex.ID).Sets[0].Completed)

	// Completing again is a no-op, not an error.
	require.NoError(t, s.CompleteSet(ex.ID, set.ID))
	assert.True(t, s.Exercise(ex.ID).Sets[0].Completed)

	assert.ErrorIs(t, s.CompleteSet(ex.ID, "no-such-set"), ErrNotFound)
}

func TestResetExercise(t *testing.T) {
	s := newTestSession()
	ex, _ := s.AddExercise("ex-bench", "Bench Press")
	s1, _ := s.AddSet(ex.ID)
	s2, _ := s.AddSet(ex.ID)
	require.NoError(t, s.CompleteSet(ex.ID, s1.ID))
	require.NoError(t, s.CompleteSet(ex.ID, s2.ID))

	require.NoError(t, s.ResetExercise(ex.ID))
	for _, set := range s.Exercise(ex.ID).Sets {
		assert.False(t, set.Completed)
	}
}

func TestProgress(t *testing.T) {
	s := newTestSession()
	assert.Equal(t, 0.0, s.Progress())

	bench, _ := s.AddExercise("ex-bench", "Bench Press")
	squat, _ := s.AddExercise("ex-squat", "Squat")
	b1, _ := s.AddSet(bench.ID)
	_, _ = s.AddSet(bench.ID)
	q1, _ := s.AddSet(squat.ID)
	_, _ = s.AddSet(squat.ID)

	require.NoError(t, s.CompleteSet(bench.ID, b1.ID))
	require.NoError(t, s.CompleteSet(squat.ID, q1.ID))
	assert.InDelta(t, 0.5, s.Progress(), 1e-9)
}

func TestTerminalSessionIsImmutable(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	s := newTestSession()
	ex, _ := s.AddExercise("ex-bench", "Bench Press")
	set, _ := s.AddSet(ex.ID)
	require.NoError(t, s.Start(now))
	require.NoError(t, s.Complete(now.Add(30*time.Minute)))

	_, err := s.AddExercise("ex-squat", "Squat")
	assert.ErrorIs(t, err, ErrSessionImmutable)
	assert.ErrorIs(t, s.RemoveExercise(ex.ID), ErrSessionImmutable)
	_, err = s.AddSet(ex.ID)
	assert.ErrorIs(t, err, ErrSessionImmutable)
	assert.ErrorIs(t, s.RemoveSet(ex.ID, set.ID), ErrSessionImmutable)
	reps := 5
	assert.ErrorIs(t, s.UpdateSet(ex.ID, set.ID, SetUpdate{Reps: &reps}), ErrSessionImmutable)
	assert.ErrorIs(t, s.CompleteSet(ex.ID, set.ID), ErrSessionImmutable)
	assert.ErrorIs(t, s.ResetExercise(ex.ID), ErrSessionImmutable)

	cancelled := newTestSession()
	cex, _ := cancelled.AddExercise("ex-row", "Row")
	require.NoError(t, cancelled.Cancel(now))
	_, err = cancelled.AddSet(cex.ID)
	assert.ErrorIs(t, err, ErrSessionImmutable)
}

func TestValidWeight(t *testing.T) {
	assert.True(t, validWeight(0))
	assert.True(t, validWeight(2.5))
	assert.True(t, validWeight(100))
	assert.False(t, validWeight(-0.5))
	assert.False(t, validWeight(10.25))
	assert.False(t, validWeight(7.1))
}
