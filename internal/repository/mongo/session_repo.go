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

const sessionCollectionName = "workout_sessions"

// mongoSessionRepository implements repository.SessionRepository. A session
// document embeds its exercises and sets, so replacing the document persists
// the whole tree and deleting it cascades.
type mongoSessionRepository struct {
	collection *mongo.Collection
}

// NewSessionRepository creates a new workout session repository backed by MongoDB.
func NewSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{
		collection: db.Collection(sessionCollectionName),
	}
}

// Create inserts a new session into the database.
func (r *mongoSessionRepository) Create(ctx context.Context, session *domain.WorkoutSession) (string, error) {
	if session.ClientID == "" || session.TrainerID == "" {
		return "", errors.New("session client ID and trainer ID are required")
	}

	session.ID = uuid.NewString()
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, session); err != nil {
		return "", err
	}
	return session.ID, nil
}

// GetByID retrieves a session by its ID.
func (r *mongoSessionRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutSession, error) {
	var session domain.WorkoutSession
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// GetByClientID retrieves all sessions for a client in creation order.
func (r *mongoSessionRepository) GetByClientID(ctx context.Context, clientID string) ([]domain.WorkoutSession, error) {
	return r.find(ctx, bson.M{"clientId": clientID})
}

// GetByClientAndStatus retrieves a client's sessions filtered by status,
// in creation order (the aggregator's tie-break depends on that order).
func (r *mongoSessionRepository) GetByClientAndStatus(ctx context.Context, clientID string, status domain.SessionStatus) ([]domain.WorkoutSession, error) {
	return r.find(ctx, bson.M{"clientId": clientID, "status": status})
}

// GetByTrainerID retrieves all sessions created by a trainer.
func (r *mongoSessionRepository) GetByTrainerID(ctx context.Context, trainerID string) ([]domain.WorkoutSession, error) {
	return r.find(ctx, bson.M{"trainerId": trainerID})
}

func (r *mongoSessionRepository) find(ctx context.Context, filter bson.M) ([]domain.WorkoutSession, error) {
	var sessions []domain.WorkoutSession

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Update replaces the session document, persisting the embedded exercise
// and set tree as a whole.
func (r *mongoSessionRepository) Update(ctx context.Context, session *domain.WorkoutSession) error {
	if session.ID == "" {
		return errors.New("session ID is required for update")
	}
	session.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": session.ID}, session)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the session and everything it owns.
func (r *mongoSessionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureSessionIndexes creates necessary indexes for the sessions collection.
func EnsureSessionIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "startTime", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
