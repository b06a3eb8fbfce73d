package domain

import (
	"time"
)

// Exercise represents a single exercise definition in the catalog.
// Catalog entries are referenced by workout sessions, never embedded:
// a WorkoutExercise holds the catalog id plus a denormalized name.
type Exercise struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	TrainerID    string    `bson:"trainerId" json:"trainerId"` // Trainer who created/owns this exercise
	Name         string    `bson:"name" json:"name"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
	MuscleGroups []string  `bson:"muscleGroups,omitempty" json:"muscleGroups,omitempty"` // e.g. "chest", "legs"
	Instructions string    `bson:"instructions,omitempty" json:"instructions,omitempty"`
	VideoURL     string    `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
