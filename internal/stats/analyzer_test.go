package stats

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

type analyzerFixture struct {
	analyzer     *Analyzer
	sessions     repository.SessionRepository
	users        repository.UserRepository
	measurements repository.MeasurementRepository
	macros       repository.MacroRepository
}

func newAnalyzerFixture() *analyzerFixture {
	sessions := memory.NewSessionRepository()
	users := memory.NewUserRepository()
	measurements := memory.NewMeasurementRepository()
	macros := memory.NewMacroRepository()
	return &analyzerFixture{
		analyzer:     NewAnalyzer(sessions, users, measurements, macros),
		sessions:     sessions,
		users:        users,
		measurements: measurements,
		macros:       macros,
	}
}

// storeSession creates a session with the given exercise data already in
// place and the given status.
func (f *analyzerFixture) storeSession(t *testing.T, clientID string, status domain.SessionStatus, start time.Time, exercises []domain.WorkoutExercise) {
	t.Helper()
	session := &domain.WorkoutSession{
		ClientID:  clientID,
		TrainerID: "trainer-1",
		Name:      "Workout",
		Exercises: exercises,
		Status:    status,
		StartTime: start,
	}
	_, err := f.sessions.Create(context.Background(), session)
	require.NoError(t, err)
}

func benchSets(weightReps ...float64) []domain.WorkoutExercise {
	sets := make([]domain.WorkoutSet, 0, len(weightReps)/2)
	for i := 0; i+1 < len(weightReps); i += 2 {
		sets = append(sets, domain.WorkoutSet{
			ID:        uuidLike(i),
			SetNumber: i/2 + 1,
			Weight:    weightReps[i],
			Reps:      int(weightReps[i+1]),
			Completed: true,
		})
	}
	return []domain.WorkoutExercise{{
		ID:           "we-bench",
		ExerciseID:   "ex-bench",
		ExerciseName: "Bench Press",
		Order:        1,
		Sets:         sets,
	}}
}

func uuidLike(i int) string {
	return "set-" + string(rune('a'+i))
}

func TestWorkoutProgressPersonalRecord(t *testing.T) {
	f := newAnalyzerFixture()
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	// Two completed sessions: 60kg then 70kg, and a later lighter one.
	f.storeSession(t, "client-1", domain.SessionCompleted, base, benchSets(60, 10))
	f.storeSession(t, "client-1", domain.SessionCompleted, base.AddDate(0, 0, 7), benchSets(70, 8))
	f.storeSession(t, "client-1", domain.SessionCompleted, base.AddDate(0, 0, 14), benchSets(65, 9))

	progress, err := f.analyzer.WorkoutProgress(ctx, "client-1")
	require.NoError(t, err)
	require.Len(t, progress, 1)

	bench := progress[0]
	assert.Equal(t, "ex-bench", bench.ExerciseID)
	assert.Equal(t, "Bench Press", bench.ExerciseName)
	assert.Equal(t, 70.0, bench.PersonalRecord)
	assert.Equal(t, 65.0, bench.LastWeight)
	assert.Equal(t, 9, bench.LastReps)
	assert.Equal(t, base.AddDate(0, 0, 14), bench.LastDate)
}

func TestWorkoutProgressIgnoresNonCompletedWork(t *testing.T) {
	f := newAnalyzerFixture()
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	// An in-progress session with a huge weight must not count.
	f.storeSession(t, "client-1", domain.SessionInProgress, base.AddDate(0, 0, 1), benchSets(200, 1))
	f.storeSession(t, "client-1", domain.SessionCompleted, base, benchSets(60, 10))

	// A completed session whose sets were never completed contributes nothing.
	uncompleted := benchSets(150, 1)
	uncompleted[0].Sets[0].Completed = false
	f.storeSession(t, "client-1", domain.SessionCompleted, base.AddDate(0, 0, 2), uncompleted)

	progress, err := f.analyzer.WorkoutProgress(ctx, "client-1")
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, 60.0, progress[0].PersonalRecord)
	assert.Equal(t, 60.0, progress[0].LastWeight)
}

func TestWorkoutProgressTieBreakOnStartTime(t *testing.T) {
	f := newAnalyzerFixture()
	ctx := context.Background()
	start := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	// Two completed sessions with identical start times: the later-created
	// session provides the "last" performance.
	f.storeSession(t, "client-1", domain.SessionCompleted, start, benchSets(60, 10))
	f.storeSession(t, "client-1", domain.SessionCompleted, start, benchSets(62.5, 8))

	progress, err := f.analyzer.WorkoutProgress(ctx, "client-1")
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, 62.5, progress[0].LastWeight)
	assert.Equal(t, 8, progress[0].LastReps)
}

func TestWorkoutProgressSortedByName(t *testing.T) {
	f := newAnalyzerFixture()
	ctx := context.Background()
	start := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	exercises := []domain.WorkoutExercise{
		{
			ID: "we-1", ExerciseID: "ex-squat", ExerciseName: "Squat", Order: 1,
			Sets: []domain.WorkoutSet{{ID: "s1", SetNumber: 1, Weight: 100, Reps: 5, Completed: true}},
		},
		{
			ID: "we-2", ExerciseID: "ex-bench", ExerciseName: "Bench Press", Order: 2,
			Sets: []domain.WorkoutSet{{ID: "s2", SetNumber: 1, Weight: 60, Reps: 10, Completed: true}},
		},
	}
	f.storeSession(t, "client-1", domain.SessionCompleted, start, exercises)

	progress, err := f.analyzer.WorkoutProgress(ctx, "client-1")
	require.NoError(t, err)
	require.Len(t, progress, 2)
	assert.Equal(t, "Bench Press", progress[0].ExerciseName)
	assert.Equal(t, "Squat", progress[1].ExerciseName)
}

func TestWorkoutsInWindow(t *testing.T) {
	f := newAnalyzerFixture()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	f.storeSession(t, "client-1", domain.SessionCompleted, now.AddDate(0, 0, -2), nil)
	f.storeSession(t, "client-1", domain.SessionCompleted, now.AddDate(0, 0, -6), nil)
	f.storeSession(t, "client-1", domain.SessionCompleted, now.AddDate(0, 0, -20), nil)
	f.storeSession(t, "client-1", domain.SessionCancelled, now.AddDate(0, 0, -1), nil)

	week, err := f.analyzer.WorkoutsInWindow(ctx, "client-1", 7*24*time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, 2, week)

	month, err := f.analyzer.WorkoutsInWindow(ctx, "client-1", 30*24*time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, 3, month)
}

func TestWeightChangeInWindow(t *testing.T) {
	f := newAnalyzerFixture()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	addWeight := func(daysAgo int, value float64) {
		_, err := f.measurements.Create(ctx, &domain.Measurement{
			ClientID: "client-1",
			Type:     domain.MeasurementWeight,
			Value:    value,
			Unit:     "lbs",
			Date:     now.AddDate(0, 0, -daysAgo),
		})
		require.NoError(t, err)
	}

	t.Run("no measurements", func(t *testing.T) {
		change, err := f.analyzer.WeightChangeInWindow(ctx, "client-1", 30*24*time.Hour, now)
		require.NoError(t, err)
		assert.Equal(t, &WeightChange{}, change)
	})

	addWeight(30, 180)
	addWeight(15, 178)
	addWeight(0, 175)

	t.Run("boundary measurement is the start", func(t *testing.T) {
		change, err := f.analyzer.WeightChangeInWindow(ctx, "client-1", 30*24*time.Hour, now)
		require.NoError(t, err)
		assert.Equal(t, 175.0, change.Current)
		assert.Equal(t, 180.0, change.Start)
		assert.Equal(t, -5.0, change.Change)
		assert.InDelta(t, -2.78, change.ChangePercent, 0.01)
	})

	t.Run("short window uses latest at-or-before boundary", func(t *testing.T) {
		change, err := f.analyzer.WeightChangeInWindow(ctx, "client-1", 7*24*time.Hour, now)
		require.NoError(t, err)
		assert.Equal(t, 178.0, change.Start)
		assert.Equal(t, -3.0, change.Change)
	})

	t.Run("sparse history falls back to earliest", func(t *testing.T) {
		change, err := f.analyzer.WeightChangeInWindow(ctx, "client-1", 365*24*time.Hour, now)
		require.NoError(t, err)
		assert.Equal(t, 180.0, change.Start)
	})
}

func TestWeightChangeZeroStart(t *testing.T) {
	f := newAnalyzerFixture()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := f.measurements.Create(ctx, &domain.Measurement{
		ClientID: "client-1",
		Type:     domain.MeasurementWeight,
		Value:    0,
		Date:     now.AddDate(0, 0, -10),
	})
	require.NoError(t, err)

	change, err := f.analyzer.WeightChangeInWindow(ctx, "client-1", 30*24*time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, 0.0, change.ChangePercent)
}

func TestMacroDataForDay(t *testing.T) {
	f := newAnalyzerFixture()
	ctx := context.Background()
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	logMeal := func(name string, protein, carbs, fat, calories float64) {
		_, err := f.macros.CreateLog(ctx, &domain.MacroLog{
			ClientID: "client-1",
			MealName: name,
			Protein:  protein,
			Carbs:    carbs,
			Fat:      fat,
			Calories: calories,
			Date:     day.Add(9 * time.Hour),
		})
		require.NoError(t, err)
	}

	t.Run("no target yields totals and zero compliance", func(t *testing.T) {
		logMeal("breakfast", 40, 60, 20, 580)

		data, err := f.analyzer.MacroDataForDay(ctx, "client-1", day)
		require.NoError(t, err)
		assert.Nil(t, data.Target)
		assert.Equal(t, 40.0, data.Totals.Protein)
		assert.Equal(t, MacroCompliance{}, data.Compliance)
	})

	t.Run("compliance capped at 100 per macro", func(t *testing.T) {
		require.NoError(t, f.macros.UpsertTarget(ctx, &domain.MacroTarget{
			ClientID: "client-1",
			Protein:  160,
			Carbs:    200,
			Fat:      80,
			Calories: 2400,
		}))
		// Totals now: protein 120 (75%), carbs 240 (>100% capped), fat 40
		// (50%), calories 1740 (72.5%).
		logMeal("lunch", 80, 180, 20, 1160)

		data, err := f.analyzer.MacroDataForDay(ctx, "client-1", day)
		require.NoError(t, err)
		require.NotNil(t, data.Target)
		require.Len(t, data.Logs, 2)

		assert.InDelta(t, 75.0, data.Compliance.Protein, 1e-9)
		assert.InDelta(t, 100.0, data.Compliance.Carbs, 1e-9)
		assert.InDelta(t, 50.0, data.Compliance.Fat, 1e-9)
		assert.InDelta(t, 72.5, data.Compliance.Calories, 1e-9)
		assert.InDelta(t, (75.0+100.0+50.0+72.5)/4, data.Compliance.Overall, 1e-9)
	})

	t.Run("other days excluded", func(t *testing.T) {
		data, err := f.analyzer.MacroDataForDay(ctx, "client-1", day.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Empty(t, data.Logs)
		assert.Equal(t, domain.MacroTotals{}, data.Totals)
	})
}

func TestPercentOfTarget(t *testing.T) {
	assert.Equal(t, 0.0, percentOfTarget(100, 0))
	assert.Equal(t, 0.0, percentOfTarget(100, -5))
	assert.Equal(t, 50.0, percentOfTarget(50, 100))
	assert.Equal(t, 100.0, percentOfTarget(150, 100))
}

func TestDashboardStatsForTrainer(t *testing.T) {
	f := newAnalyzerFixture()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	trainer := &domain.User{Name: "Coach", Email: "coach@example.com", Role: domain.RoleTrainer}
	trainerID, err := f.users.Create(ctx, trainer)
	require.NoError(t, err)

	clientIDs := make([]string, 2)
	for i, email := range []string{"a@example.com", "b@example.com"} {
		id, err := f.users.Create(ctx, &domain.User{Name: "Client", Email: email, Role: domain.RoleClient})
		require.NoError(t, err)
		require.NoError(t, f.users.AddClientToTrainer(ctx, trainerID, id))
		clientIDs[i] = id
	}

	// Client A: one workout this week, one older but within the month, and
	// an active session at 50% progress.
	f.storeSession(t, clientIDs[0], domain.SessionCompleted, now.AddDate(0, 0, -3), nil)
	f.storeSession(t, clientIDs[0], domain.SessionCompleted, now.AddDate(0, 0, -20), nil)
	active := benchSets(60, 10, 60, 10)
	active[0].Sets[1].Completed = false
	f.storeSession(t, clientIDs[0], domain.SessionInProgress, now.Add(-time.Hour), active)

	// Client B: a paused session with no sets and an old completed workout
	// outside both windows.
	f.storeSession(t, clientIDs[1], domain.SessionPaused, now.Add(-2*time.Hour), nil)
	f.storeSession(t, clientIDs[1], domain.SessionCompleted, now.AddDate(0, 0, -45), nil)

	stats, err := f.analyzer.DashboardStatsForTrainer(ctx, trainerID, now)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalClients)
	assert.Equal(t, 1, stats.WorkoutsThisWeek)
	assert.Equal(t, 2, stats.WorkoutsThisMonth)
	assert.Equal(t, 2, stats.ActiveSessions)
	// (0.5 + 0) / 2
	assert.InDelta(t, 0.25, stats.AvgSessionProgress, 1e-9)
}
