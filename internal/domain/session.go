package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// SessionStatus tracks the lifecycle of a workout session.
type SessionStatus string

const (
	SessionScheduled  SessionStatus = "scheduled"
	SessionInProgress SessionStatus = "in_progress"
	SessionPaused     SessionStatus = "paused"
	SessionCompleted  SessionStatus = "completed"
	SessionCancelled  SessionStatus = "cancelled"
)

// Defaults applied to the first set of an exercise; subsequent sets
// carry forward the values of the previous set.
const (
	DefaultSetReps     = 10
	DefaultSetWeight   = 0
	DefaultSetRestTime = 60 // seconds
)

// WorkoutSet is one performed unit of reps x weight within a workout exercise.
// SetNumber is 1-based and kept contiguous by AddSet/RemoveSet.
type WorkoutSet struct {
	ID        string  `bson:"id" json:"id"`
	SetNumber int     `bson:"setNumber" json:"setNumber"`
	Reps      int     `bson:"reps" json:"reps"`
	Weight    float64 `bson:"weight" json:"weight"` // 0.5 unit resolution
	Completed bool    `bson:"completed" json:"completed"`
	RestTime  int     `bson:"restTime,omitempty" json:"restTime,omitempty"` // seconds
	Notes     string  `bson:"notes,omitempty" json:"notes,omitempty"`
}

// WorkoutExercise is the session-scoped instance of a catalog Exercise,
// holding its sets. Order is 1-based and contiguous within the session.
type WorkoutExercise struct {
	ID           string       `bson:"id" json:"id"`
	ExerciseID   string       `bson:"exerciseId" json:"exerciseId"`
	ExerciseName string       `bson:"exerciseName" json:"exerciseName"` // Denormalized for display and aggregation
	Order        int          `bson:"order" json:"order"`
	Sets         []WorkoutSet `bson:"sets" json:"sets"`
	Notes        string       `bson:"notes,omitempty" json:"notes,omitempty"`
}

// WorkoutSession is one occurrence of a client performing a planned workout.
// It exclusively owns its exercises, which own their sets; deleting the
// session deletes everything under it.
//
// ActiveDuration accumulates the time spent in_progress at every pause and
// completion, so elapsed time excludes paused intervals. A single startTime
// is not enough for that.
type WorkoutSession struct {
	ID             string            `bson:"_id,omitempty" json:"id"`
	ClientID       string            `bson:"clientId" json:"clientId"`
	TrainerID      string            `bson:"trainerId" json:"trainerId"`
	Name           string            `bson:"name" json:"name"`
	Description    string            `bson:"description,omitempty" json:"description,omitempty"`
	Exercises      []WorkoutExercise `bson:"exercises" json:"exercises"`
	Status         SessionStatus     `bson:"status" json:"status"`
	StartTime      time.Time         `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime        *time.Time        `bson:"endTime,omitempty" json:"endTime,omitempty"`
	ActiveDuration time.Duration     `bson:"activeDuration" json:"activeDuration"`
	LastResumedAt  *time.Time        `bson:"lastResumedAt,omitempty" json:"lastResumedAt,omitempty"`
	CreatedAt      time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// IsTerminal reports whether the session reached a final state.
// Terminal sessions reject every mutation with ErrSessionImmutable.
func (s *WorkoutSession) IsTerminal() bool {
	return s.Status == SessionCompleted || s.Status == SessionCancelled
}

// --- lifecycle ---

// Start moves a scheduled session into progress and records the start time.
func (s *WorkoutSession) Start(now time.Time) error {
	if s.Status != SessionScheduled {
		return ErrInvalidTransition
	}
	s.Status = SessionInProgress
	s.StartTime = now
	s.LastResumedAt = &now
	return nil
}

// Pause suspends an in-progress session and banks the active time so far.
func (s *WorkoutSession) Pause(now time.Time) error {
	if s.Status != SessionInProgress {
		return ErrInvalidTransition
	}
	s.accumulateActive(now)
	s.Status = SessionPaused
	return nil
}

// Resume continues a paused session.
func (s *WorkoutSession) Resume(now time.Time) error {
	if s.Status != SessionPaused {
		return ErrInvalidTransition
	}
	s.Status = SessionInProgress
	s.LastResumedAt = &now
	return nil
}

// Complete finishes the session. Allowed from in_progress or paused.
func (s *WorkoutSession) Complete(now time.Time) error {
	if s.Status != SessionInProgress && s.Status != SessionPaused {
		return ErrInvalidTransition
	}
	s.accumulateActive(now)
	s.Status = SessionCompleted
	s.EndTime = &now
	return nil
}

// Cancel abandons the session. Allowed from any state except completed.
func (s *WorkoutSession) Cancel(now time.Time) error {
	if s.Status == SessionCompleted {
		return ErrInvalidTransition
	}
	s.accumulateActive(now)
	s.Status = SessionCancelled
	return nil
}

func (s *WorkoutSession) accumulateActive(now time.Time) {
	if s.LastResumedAt != nil {
		s.ActiveDuration += now.Sub(*s.LastResumedAt)
		s.LastResumedAt = nil
	}
}

// Elapsed returns active training time up to now, excluding paused intervals.
func (s *WorkoutSession) Elapsed(now time.Time) time.Duration {
	d := s.ActiveDuration
	if s.Status == SessionInProgress && s.LastResumedAt != nil {
		d += now.Sub(*s.LastResumedAt)
	}
	return d
}

// Progress returns completed sets over total sets across all exercises,
// in [0, 1]. Recomputed on demand, never stored.
func (s *WorkoutSession) Progress() float64 {
	total, done := 0, 0
	for i := range s.Exercises {
		for j := range s.Exercises[i].Sets {
			total++
			if s.Exercises[i].Sets[j].Completed {
				done++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}

// --- exercise mutations ---

// AddExercise appends a session-scoped instance of a catalog exercise with
// an empty set list and the next contiguous order value.
func (s *WorkoutSession) AddExercise(exerciseID, exerciseName string) (*WorkoutExercise, error) {
	if s.IsTerminal() {
		return nil, ErrSessionImmutable
	}
	s.Exercises = append(s.Exercises, WorkoutExercise{
		ID:           uuid.NewString(),
		ExerciseID:   exerciseID,
		ExerciseName: exerciseName,
		Order:        len(s.Exercises) + 1,
		Sets:         []WorkoutSet{},
	})
	return &s.Exercises[len(s.Exercises)-1], nil
}

// RemoveExercise deletes the workout exercise and renumbers the remaining
// ones so order values stay contiguous 1..M.
func (s *WorkoutSession) RemoveExercise(workoutExerciseID string) error {
	if s.IsTerminal() {
		return ErrSessionImmutable
	}
	idx := s.exerciseIndex(workoutExerciseID)
	if idx < 0 {
		return ErrNotFound
	}
	s.Exercises = append(s.Exercises[:idx], s.Exercises[idx+1:]...)
	for i := range s.Exercises {
		s.Exercises[i].Order = i + 1
	}
	return nil
}

func (s *WorkoutSession) exerciseIndex(workoutExerciseID string) int {
	for i := range s.Exercises {
		if s.Exercises[i].ID == workoutExerciseID {
			return i
		}
	}
	return -1
}

// Exercise returns the workout exercise with the given id, or nil.
func (s *WorkoutSession) Exercise(workoutExerciseID string) *WorkoutExercise {
	idx := s.exerciseIndex(workoutExerciseID)
	if idx < 0 {
		return nil
	}
	return &s.Exercises[idx]
}

// --- set mutations ---

// AddSet appends a set with the next contiguous set number. Reps, weight and
// rest time carry forward from the previous set when one exists; otherwise
// the defaults apply.
func (s *WorkoutSession) AddSet(workoutExerciseID string) (*WorkoutSet, error) {
	if s.IsTerminal() {
		return nil, ErrSessionImmutable
	}
	ex := s.Exercise(workoutExerciseID)
	if ex == nil {
		return nil, ErrNotFound
	}
	set := WorkoutSet{
		ID:        uuid.NewString(),
		SetNumber: len(ex.Sets) + 1,
		Reps:      DefaultSetReps,
		Weight:    DefaultSetWeight,
		RestTime:  DefaultSetRestTime,
	}
	if n := len(ex.Sets); n > 0 {
		prev := ex.Sets[n-1]
		set.Reps = prev.Reps
		set.Weight = prev.Weight
		set.RestTime = prev.RestTime
	}
	ex.Sets = append(ex.Sets, set)
	return &ex.Sets[len(ex.Sets)-1], nil
}

// RemoveSet deletes the set and renumbers the remaining ones to 1..N.
func (s *WorkoutSession) RemoveSet(workoutExerciseID, setID string) error {
	if s.IsTerminal() {
		return ErrSessionImmutable
	}
	ex := s.Exercise(workoutExerciseID)
	if ex == nil {
		return ErrNotFound
	}
	idx := setIndex(ex, setID)
	if idx < 0 {
		return ErrNotFound
	}
	ex.Sets = append(ex.Sets[:idx], ex.Sets[idx+1:]...)
	for i := range ex.Sets {
		ex.Sets[i].SetNumber = i + 1
	}
	return nil
}

// SetUpdate is a partial update of an existing set. Nil fields are left
// untouched.
type SetUpdate struct {
	Reps     *int
	Weight   *float64
	RestTime *int
	Notes    *string
}

// UpdateSet applies a partial update. Out-of-range values are rejected with
// ErrValidation rather than clamped: reps must stay >= 1, weight must stay
// >= 0 and on a 0.5 unit grid, rest time must stay >= 0.
func (s *WorkoutSession) UpdateSet(workoutExerciseID, setID string, upd SetUpdate) error {
	if s.IsTerminal() {
		return ErrSessionImmutable
	}
	ex := s.Exercise(workoutExerciseID)
	if ex == nil {
		return ErrNotFound
	}
	idx := setIndex(ex, setID)
	if idx < 0 {
		return ErrNotFound
	}
	if upd.Reps != nil && *upd.Reps < 1 {
		return ErrValidation
	}
	if upd.Weight != nil && !validWeight(*upd.Weight) {
		return ErrValidation
	}
	if upd.RestTime != nil && *upd.RestTime < 0 {
		return ErrValidation
	}
	set := &ex.Sets[idx]
	if upd.Reps != nil {
		set.Reps = *upd.Reps
	}
	if upd.Weight != nil {
		set.Weight = *upd.Weight
	}
	if upd.RestTime != nil {
		set.RestTime = *upd.RestTime
	}
	if upd.Notes != nil {
		set.Notes = *upd.Notes
	}
	return nil
}

// CompleteSet marks a set as done. Completing an already-completed set is a
// no-op, not an error. An unknown set id fails loudly with ErrNotFound.
func (s *WorkoutSession) CompleteSet(workoutExerciseID, setID string) error {
	if s.IsTerminal() {
		return ErrSessionImmutable
	}
	ex := s.Exercise(workoutExerciseID)
	if ex == nil {
		return ErrNotFound
	}
	idx := setIndex(ex, setID)
	if idx < 0 {
		return ErrNotFound
	}
	ex.Sets[idx].Completed = true
	return nil
}

// ResetExercise clears the completed flag on every set of the exercise so
// the client can redo it.
func (s *WorkoutSession) ResetExercise(workoutExerciseID string) error {
	if s.IsTerminal() {
		return ErrSessionImmutable
	}
	ex := s.Exercise(workoutExerciseID)
	if ex == nil {
		return ErrNotFound
	}
	for i := range ex.Sets {
		ex.Sets[i].Completed = false
	}
	return nil
}

func setIndex(ex *WorkoutExercise, setID string) int {
	for i := range ex.Sets {
		if ex.Sets[i].ID == setID {
			return i
		}
	}
	return -1
}

func validWeight(w float64) bool {
	if w < 0 {
		return false
	}
	// weights are recorded at 0.5 unit resolution
	return math.Mod(w*2, 1) == 0
}
