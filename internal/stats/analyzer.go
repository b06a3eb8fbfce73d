package stats

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"
)

// Analyzer derives progress and dashboard metrics from the entity store.
// Every method is a pure function of the store's contents at call time:
// nothing is cached or maintained incrementally, which keeps correctness
// trivial at single-coach data volumes.
type Analyzer struct {
	sessions     repository.SessionRepository
	users        repository.UserRepository
	measurements repository.MeasurementRepository
	macros       repository.MacroRepository
}

// NewAnalyzer creates an Analyzer over the given repositories.
func NewAnalyzer(
	sessions repository.SessionRepository,
	users repository.UserRepository,
	measurements repository.MeasurementRepository,
	macros repository.MacroRepository,
) *Analyzer {
	return &Analyzer{
		sessions:     sessions,
		users:        users,
		measurements: measurements,
		macros:       macros,
	}
}

// ExerciseProgress summarizes a client's history with one exercise across
// all completed sessions.
type ExerciseProgress struct {
	ExerciseID     string    `json:"exerciseId"`
	ExerciseName   string    `json:"exerciseName"`
	PersonalRecord float64   `json:"personalRecord"` // max weight over completed sets
	LastWeight     float64   `json:"lastWeight"`
	LastReps       int       `json:"lastReps"`
	LastDate       time.Time `json:"lastDate"`
}

// WorkoutProgress scans the client's completed sessions and returns one
// record per exercise that appears in at least one completed set.
//
// Only sessions with status completed contribute: in-progress or paused
// work must never leak into personal records. Within those, only completed
// sets count. The "last" performance is the one from the session with the
// latest start time; when two sessions share a start time the later-created
// one wins (sessions arrive in creation order and the comparison is
// non-strict).
func (a *Analyzer) WorkoutProgress(ctx context.Context, clientID string) ([]ExerciseProgress, error) {
	sessions, err := a.sessions.GetByClientAndStatus(ctx, clientID, domain.SessionCompleted)
	if err != nil {
		return nil, fmt.Errorf("list completed sessions: %w", err)
	}

	type record struct {
		progress  ExerciseProgress
		lastStart time.Time
	}
	byExercise := make(map[string]*record)

	for i := range sessions {
		session := &sessions[i]
		for _, ex := range session.Exercises {
			for _, set := range ex.Sets {
				if !set.Completed {
					continue
				}
				rec, ok := byExercise[ex.ExerciseID]
				if !ok {
					rec = &record{progress: ExerciseProgress{
						ExerciseID:   ex.ExerciseID,
						ExerciseName: ex.ExerciseName,
					}}
					byExercise[ex.ExerciseID] = rec
				}
				if set.Weight > rec.progress.PersonalRecord {
					rec.progress.PersonalRecord = set.Weight
				}
				if !session.StartTime.Before(rec.lastStart) {
					rec.lastStart = session.StartTime
					rec.progress.LastWeight = set.Weight
					rec.progress.LastReps = set.Reps
					rec.progress.LastDate = session.StartTime
				}
			}
		}
	}

	result := make([]ExerciseProgress, 0, len(byExercise))
	for _, rec := range byExercise {
		result = append(result, rec.progress)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ExerciseName < result[j].ExerciseName
	})
	return result, nil
}

// WorkoutsInWindow counts the client's completed sessions whose start time
// falls within the window ending at now.
func (a *Analyzer) WorkoutsInWindow(ctx context.Context, clientID string, window time.Duration, now time.Time) (int, error) {
	sessions, err := a.sessions.GetByClientAndStatus(ctx, clientID, domain.SessionCompleted)
	if err != nil {
		return 0, fmt.Errorf("list completed sessions: %w", err)
	}
	cutoff := now.Add(-window)
	count := 0
	for i := range sessions {
		if !sessions[i].StartTime.Before(cutoff) {
			count++
		}
	}
	return count, nil
}

// WeightChange describes the movement of a client's body weight over a window.
type WeightChange struct {
	Current       float64 `json:"current"`
	Start         float64 `json:"start"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// WeightChangeInWindow compares the client's most recent weight measurement
// against the value in effect at the start of the window: the latest
// measurement dated at or before the window boundary, or, with no history
// that far back, the earliest measurement available. Sparse data therefore
// degrades to a shorter effective window instead of failing. A start weight
// of zero yields a zero percentage, not a division fault.
func (a *Analyzer) WeightChangeInWindow(ctx context.Context, clientID string, window time.Duration, now time.Time) (*WeightChange, error) {
	weights, err := a.measurements.GetByClientID(ctx, clientID, domain.MeasurementWeight)
	if err != nil {
		return nil, fmt.Errorf("list weight measurements: %w", err)
	}
	if len(weights) == 0 {
		return &WeightChange{}, nil
	}

	current := weights[len(weights)-1].Value

	boundary := now.Add(-window)
	start := weights[0].Value // fallback: earliest available
	for i := range weights {
		if weights[i].Date.After(boundary) {
			break
		}
		start = weights[i].Value
	}

	change := current - start
	changePercent := 0.0
	if start > 0 {
		changePercent = change / start * 100
	}
	return &WeightChange{
		Current:       current,
		Start:         start,
		Change:        change,
		ChangePercent: changePercent,
	}, nil
}

// MacroCompliance holds per-macro percentages of target, each capped at 100,
// and their unweighted mean. The four macros are weighted equally; that is a
// policy choice, not nutritional law.
type MacroCompliance struct {
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Calories float64 `json:"calories"`
	Overall  float64 `json:"overall"`
}

// MacroData is the full nutrition picture for one client-day.
type MacroData struct {
	Target     *domain.MacroTarget `json:"target,omitempty"`
	Logs       []domain.MacroLog   `json:"logs"`
	Totals     domain.MacroTotals  `json:"totals"`
	Compliance MacroCompliance     `json:"compliance"`
}

// MacroDataForDay returns the client's target, that day's log entries, their
// totals, and the compliance percentages. A missing or zero target yields
// zero compliance instead of an error or a divide-by-zero.
func (a *Analyzer) MacroDataForDay(ctx context.Context, clientID string, day time.Time) (*MacroData, error) {
	logs, err := a.macros.GetLogsByDay(ctx, clientID, day)
	if err != nil {
		return nil, fmt.Errorf("list macro logs: %w", err)
	}

	data := &MacroData{Logs: logs}
	for _, log := range logs {
		data.Totals.Add(log)
	}

	target, err := a.macros.GetTarget(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return data, nil // no target set yet: totals only, zero compliance
		}
		return nil, fmt.Errorf("get macro target: %w", err)
	}
	data.Target = target
	data.Compliance = complianceOf(data.Totals, target)
	return data, nil
}

func complianceOf(totals domain.MacroTotals, target *domain.MacroTarget) MacroCompliance {
	c := MacroCompliance{
		Protein:  percentOfTarget(totals.Protein, target.Protein),
		Carbs:    percentOfTarget(totals.Carbs, target.Carbs),
		Fat:      percentOfTarget(totals.Fat, target.Fat),
		Calories: percentOfTarget(totals.Calories, target.Calories),
	}
	c.Overall = (c.Protein + c.Carbs + c.Fat + c.Calories) / 4
	return c
}

// percentOfTarget caps at 100: eating over target is not extra compliance.
func percentOfTarget(actual, target float64) float64 {
	if target <= 0 {
		return 0
	}
	ratio := actual / target
	if ratio > 1 {
		ratio = 1
	}
	return ratio * 100
}

// DashboardStats aggregates counts and averages across a trainer's roster.
type DashboardStats struct {
	TotalClients       int     `json:"totalClients"`
	WorkoutsThisWeek   int     `json:"workoutsThisWeek"`  // completed, last 7 days, whole roster
	WorkoutsThisMonth  int     `json:"workoutsThisMonth"` // completed, last 30 days, whole roster
	ActiveSessions     int     `json:"activeSessions"`    // in_progress or paused right now
	AvgSessionProgress float64 `json:"avgSessionProgress"`
}

// DashboardStatsForTrainer computes the trainer dashboard numbers across all
// managed clients. AvgSessionProgress averages Progress() over the currently
// active (in_progress/paused) sessions; zero when there are none.
func (a *Analyzer) DashboardStatsForTrainer(ctx context.Context, trainerID string, now time.Time) (*DashboardStats, error) {
	clients, err := a.users.GetClientsByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	stats := &DashboardStats{TotalClients: len(clients)}
	weekCutoff := now.Add(-7 * 24 * time.Hour)
	monthCutoff := now.Add(-30 * 24 * time.Hour)

	var progressSum float64
	for _, client := range clients {
		sessions, err := a.sessions.GetByClientID(ctx, client.ID)
		if err != nil {
			return nil, fmt.Errorf("list sessions for client %s: %w", client.ID, err)
		}
		for i := range sessions {
			session := &sessions[i]
			switch session.Status {
			case domain.SessionCompleted:
				if !session.StartTime.Before(weekCutoff) {
					stats.WorkoutsThisWeek++
				}
				if !session.StartTime.Before(monthCutoff) {
					stats.WorkoutsThisMonth++
				}
			case domain.SessionInProgress, domain.SessionPaused:
				stats.ActiveSessions++
				progressSum += session.Progress()
			}
		}
	}
	if stats.ActiveSessions > 0 {
		stats.AvgSessionProgress = progressSum / float64(stats.ActiveSessions)
	}
	return stats, nil
}
