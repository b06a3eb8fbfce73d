package domain

import (
	"time"
)

// CheckIn is a client's daily check-in: one record per client per day,
// upserted by date.
type CheckIn struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	ClientID  string    `bson:"clientId" json:"clientId"`
	Date      time.Time `bson:"date" json:"date"` // Truncated to the day
	Weight    float64   `bson:"weight,omitempty" json:"weight,omitempty"`
	Energy    int       `bson:"energy,omitempty" json:"energy,omitempty"` // 1-5
	Sleep     int       `bson:"sleep,omitempty" json:"sleep,omitempty"`   // 1-5
	Mood      int       `bson:"mood,omitempty" json:"mood,omitempty"`     // 1-5
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
