package domain

import (
	"time"
)

// Role type to distinguish between user roles
type Role string

const (
	RoleTrainer Role = "trainer"
	RoleClient  Role = "client"
)

// User represents a user in the system (either a Trainer or a Client).
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"` // Should be unique
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         Role      `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`

	// --- Trainer-specific ---
	ClientIDs []string `bson:"clientIds,omitempty" json:"clientIds,omitempty"`

	// --- Client-specific ---
	TrainerID string   `bson:"trainerId,omitempty" json:"trainerId,omitempty"`
	Phone     string   `bson:"phone,omitempty" json:"phone,omitempty"`
	BirthDate string   `bson:"birthDate,omitempty" json:"birthDate,omitempty"` // YYYY-MM-DD
	Goals     []string `bson:"goals,omitempty" json:"goals,omitempty"`         // e.g. "fat loss", "strength"
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsClient() bool {
	return u.Role == RoleClient
}
