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

const measurementCollectionName = "measurements"

// mongoMeasurementRepository implements repository.MeasurementRepository.
// The log is append-only: there is deliberately no update method.
type mongoMeasurementRepository struct {
	collection *mongo.Collection
}

// NewMeasurementRepository creates a new measurement repository backed by MongoDB.
func NewMeasurementRepository(db *mongo.Database) repository.MeasurementRepository {
	return &mongoMeasurementRepository{
		collection: db.Collection(measurementCollectionName),
	}
}

// Create appends a new measurement entry.
func (r *mongoMeasurementRepository) Create(ctx context.Context, m *domain.Measurement) (string, error) {
	if m.ClientID == "" || m.Type == "" {
		return "", errors.New("measurement client ID and type are required")
	}

	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()
	if m.Date.IsZero() {
		m.Date = m.CreatedAt
	}

	if _, err := r.collection.InsertOne(ctx, m); err != nil {
		return "", err
	}
	return m.ID, nil
}

// GetByClientID retrieves a client's measurements sorted by date ascending.
// Pass an empty type to get all measurement types.
func (r *mongoMeasurementRepository) GetByClientID(ctx context.Context, clientID string, mType domain.MeasurementType) ([]domain.Measurement, error) {
	filter := bson.M{"clientId": clientID}
	if mType != "" {
		filter["type"] = mType
	}

	var measurements []domain.Measurement
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &measurements); err != nil {
		return nil, err
	}
	return measurements, nil
}

// Delete removes a measurement, ensuring it belongs to the client.
func (r *mongoMeasurementRepository) Delete(ctx context.Context, id string, clientID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "clientId": clientID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureMeasurementIndexes creates necessary indexes for the measurements collection.
func EnsureMeasurementIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "type", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
