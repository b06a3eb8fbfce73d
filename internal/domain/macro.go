package domain

import (
	"time"
)

// MacroTarget is a client's daily nutrition target. There is a single
// mutable record per client with upsert semantics.
type MacroTarget struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	ClientID  string    `bson:"clientId" json:"clientId"` // Unique per client
	Protein   float64   `bson:"protein" json:"protein"`   // grams
	Carbs     float64   `bson:"carbs" json:"carbs"`       // grams
	Fat       float64   `bson:"fat" json:"fat"`           // grams
	Calories  float64   `bson:"calories" json:"calories"` // kcal
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// MacroLog is one logged meal entry for a client on a given day.
type MacroLog struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	ClientID  string    `bson:"clientId" json:"clientId"`
	MealName  string    `bson:"mealName" json:"mealName"` // e.g. "breakfast", "post-workout"
	Protein   float64   `bson:"protein" json:"protein"`
	Carbs     float64   `bson:"carbs" json:"carbs"`
	Fat       float64   `bson:"fat" json:"fat"`
	Calories  float64   `bson:"calories" json:"calories"`
	Date      time.Time `bson:"date" json:"date"` // Day the meal belongs to
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// MacroTotals sums logged macros over a day.
type MacroTotals struct {
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Calories float64 `json:"calories"`
}

// Add accumulates one log entry into the totals.
func (t *MacroTotals) Add(l MacroLog) {
	t.Protein += l.Protein
	t.Carbs += l.Carbs
	t.Fat += l.Fat
	t.Calories += l.Calories
}
