package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"
)

const (
	macroTargetCollectionName = "macro_targets"
	macroLogCollectionName    = "macro_logs"
)

// mongoMacroRepository implements repository.MacroRepository using two
// collections: a single target document per client and per-meal log entries.
type mongoMacroRepository struct {
	targets *mongo.Collection
	logs    *mongo.Collection
}

// NewMacroRepository creates a new macro repository backed by MongoDB.
func NewMacroRepository(db *mongo.Database) repository.MacroRepository {
	return &mongoMacroRepository{
		targets: db.Collection(macroTargetCollectionName),
		logs:    db.Collection(macroLogCollectionName),
	}
}

// UpsertTarget creates or replaces the client's single macro target.
func (r *mongoMacroRepository) UpsertTarget(ctx context.Context, target *domain.MacroTarget) error {
	if target.ClientID == "" {
		return errors.New("macro target client ID is required")
	}
	if target.ID == "" {
		target.ID = uuid.NewString()
	}
	target.UpdatedAt = time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"protein":   target.Protein,
			"carbs":     target.Carbs,
			"fat":       target.Fat,
			"calories":  target.Calories,
			"updatedAt": target.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":      target.ID,
			"clientId": target.ClientID,
		},
	}
	_, err := r.targets.UpdateOne(ctx, bson.M{"clientId": target.ClientID}, update, options.Update().SetUpsert(true))
	return err
}

// GetTarget retrieves the client's macro target.
func (r *mongoMacroRepository) GetTarget(ctx context.Context, clientID string) (*domain.MacroTarget, error) {
	var target domain.MacroTarget
	err := r.targets.FindOne(ctx, bson.M{"clientId": clientID}).Decode(&target)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &target, nil
}

// CreateLog appends a new meal log entry.
func (r *mongoMacroRepository) CreateLog(ctx context.Context, log *domain.MacroLog) (string, error) {
	if log.ClientID == "" {
		return "", errors.New("macro log client ID is required")
	}

	log.ID = uuid.NewString()
	now := time.Now().UTC()
	log.CreatedAt = now
	log.UpdatedAt = now
	if log.Date.IsZero() {
		log.Date = now
	}

	if _, err := r.logs.InsertOne(ctx, log); err != nil {
		return "", err
	}
	return log.ID, nil
}

// GetLogByID retrieves a single log entry.
func (r *mongoMacroRepository) GetLogByID(ctx context.Context, id string) (*domain.MacroLog, error) {
	var log domain.MacroLog
	err := r.logs.FindOne(ctx, bson.M{"_id": id}).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// GetLogsByDay retrieves all of a client's log entries for one day.
func (r *mongoMacroRepository) GetLogsByDay(ctx context.Context, clientID string, day time.Time) ([]domain.MacroLog, error) {
	dayStart := day.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)
	filter := bson.M{
		"clientId": clientID,
		"date":     bson.M{"$gte": dayStart, "$lt": dayEnd},
	}

	var logs []domain.MacroLog
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.logs.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// UpdateLog modifies an existing log entry, ensuring client ownership.
func (r *mongoMacroRepository) UpdateLog(ctx context.Context, log *domain.MacroLog) error {
	if log.ID == "" {
		return errors.New("macro log ID is required for update")
	}
	update := bson.M{
		"$set": bson.M{
			"mealName":  log.MealName,
			"protein":   log.Protein,
			"carbs":     log.Carbs,
			"fat":       log.Fat,
			"calories":  log.Calories,
			"date":      log.Date,
			"updatedAt": time.Now().UTC(),
		},
	}
	result, err := r.logs.UpdateOne(ctx, bson.M{"_id": log.ID, "clientId": log.ClientID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteLog removes a log entry, ensuring client ownership.
func (r *mongoMacroRepository) DeleteLog(ctx context.Context, id string, clientID string) error {
	result, err := r.logs.DeleteOne(ctx, bson.M{"_id": id, "clientId": clientID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureMacroIndexes creates necessary indexes for both macro collections.
func EnsureMacroIndexes(ctx context.Context, targets, logs *mongo.Collection) error {
	_, err := targets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "clientId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index(),
	})
	return err
}
