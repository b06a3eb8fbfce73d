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

const checkInCollectionName = "check_ins"

// mongoCheckInRepository implements repository.CheckInRepository with one
// document per client per day, upserted on the (clientId, date) pair.
type mongoCheckInRepository struct {
	collection *mongo.Collection
}

// NewCheckInRepository creates a new check-in repository backed by MongoDB.
func NewCheckInRepository(db *mongo.Database) repository.CheckInRepository {
	return &mongoCheckInRepository{
		collection: db.Collection(checkInCollectionName),
	}
}

// Upsert creates or replaces the client's check-in for the given day.
func (r *mongoCheckInRepository) Upsert(ctx context.Context, checkIn *domain.CheckIn) (string, error) {
	if checkIn.ClientID == "" {
		return "", errors.New("check-in client ID is required")
	}
	checkIn.Date = checkIn.Date.UTC().Truncate(24 * time.Hour)
	if checkIn.ID == "" {
		checkIn.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	checkIn.UpdatedAt = now

	filter := bson.M{"clientId": checkIn.ClientID, "date": checkIn.Date}
	update := bson.M{
		"$set": bson.M{
			"weight":    checkIn.Weight,
			"energy":    checkIn.Energy,
			"sleep":     checkIn.Sleep,
			"mood":      checkIn.Mood,
			"notes":     checkIn.Notes,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"_id":       checkIn.ID,
			"clientId":  checkIn.ClientID,
			"date":      checkIn.Date,
			"createdAt": now,
		},
	}
	if _, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return "", err
	}

	// Re-read to return the stable id of the stored document.
	stored, err := r.GetByClientAndDate(ctx, checkIn.ClientID, checkIn.Date)
	if err != nil {
		return "", err
	}
	*checkIn = *stored
	return stored.ID, nil
}

// GetByClientAndDate retrieves the client's check-in for a specific day.
func (r *mongoCheckInRepository) GetByClientAndDate(ctx context.Context, clientID string, date time.Time) (*domain.CheckIn, error) {
	var checkIn domain.CheckIn
	filter := bson.M{"clientId": clientID, "date": date.UTC().Truncate(24 * time.Hour)}
	err := r.collection.FindOne(ctx, filter).Decode(&checkIn)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &checkIn, nil
}

// GetRecent retrieves the client's latest check-ins, newest first.
func (r *mongoCheckInRepository) GetRecent(ctx context.Context, clientID string, limit int) ([]domain.CheckIn, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	var checkIns []domain.CheckIn
	cursor, err := r.collection.Find(ctx, bson.M{"clientId": clientID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &checkIns); err != nil {
		return nil, err
	}
	return checkIns, nil
}

// EnsureCheckInIndexes creates necessary indexes for the check-ins collection.
func EnsureCheckInIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "date", Value: -1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
