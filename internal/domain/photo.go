package domain

import (
	"time"
)

// ProgressPhoto stores metadata about a client's progress photo.
// The actual image resides in object storage under ObjectKey.
type ProgressPhoto struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	ClientID    string    `bson:"clientId" json:"clientId"`
	TrainerID   string    `bson:"trainerId" json:"trainerId"` // Denormalized for access checks
	ObjectKey   string    `bson:"objectKey" json:"-"`         // Key in the storage bucket, internal use
	FileName    string    `bson:"fileName" json:"fileName"`
	ContentType string    `bson:"contentType" json:"contentType"`
	Size        int64     `bson:"size" json:"size"`
	Pose        string    `bson:"pose,omitempty" json:"pose,omitempty"` // e.g. "front", "side", "back"
	TakenAt     time.Time `bson:"takenAt" json:"takenAt"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
