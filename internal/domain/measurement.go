package domain

import (
	"time"
)

// MeasurementType tags what a measurement records.
type MeasurementType string

const (
	MeasurementWeight  MeasurementType = "weight"
	MeasurementBodyFat MeasurementType = "body_fat"
	MeasurementChest   MeasurementType = "chest"
	MeasurementWaist   MeasurementType = "waist"
	MeasurementHips    MeasurementType = "hips"
)

// Measurement is one entry in a client's append-only measurement log.
// Entries are never mutated after creation; corrections are new entries.
type Measurement struct {
	ID        string          `bson:"_id,omitempty" json:"id"`
	ClientID  string          `bson:"clientId" json:"clientId"`
	Type      MeasurementType `bson:"type" json:"type"`
	Value     float64         `bson:"value" json:"value"`
	Unit      string          `bson:"unit" json:"unit"` // e.g. "kg", "lbs", "cm"
	Date      time.Time       `bson:"date" json:"date"`
	CreatedAt time.Time       `bson:"createdAt" json:"createdAt"`
}
