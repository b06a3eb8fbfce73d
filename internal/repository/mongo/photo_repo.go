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

const photoCollectionName = "progress_photos"

// mongoPhotoRepository implements repository.PhotoRepository. Only metadata
// lives here; the image bytes are in object storage.
type mongoPhotoRepository struct {
	collection *mongo.Collection
}

// NewPhotoRepository creates a new progress-photo repository backed by MongoDB.
func NewPhotoRepository(db *mongo.Database) repository.PhotoRepository {
	return &mongoPhotoRepository{
		collection: db.Collection(photoCollectionName),
	}
}

// Create inserts new photo metadata.
func (r *mongoPhotoRepository) Create(ctx context.Context, photo *domain.ProgressPhoto) (string, error) {
	if photo.ClientID == "" || photo.ObjectKey == "" {
		return "", errors.New("photo client ID and object key are required")
	}

	photo.ID = uuid.NewString()
	photo.CreatedAt = time.Now().UTC()
	if photo.TakenAt.IsZero() {
		photo.TakenAt = photo.CreatedAt
	}

	if _, err := r.collection.InsertOne(ctx, photo); err != nil {
		return "", err
	}
	return photo.ID, nil
}

// GetByID retrieves photo metadata by id.
func (r *mongoPhotoRepository) GetByID(ctx context.Context, id string) (*domain.ProgressPhoto, error) {
	var photo domain.ProgressPhoto
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&photo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &photo, nil
}

// GetByClientID retrieves a client's photos, newest first.
func (r *mongoPhotoRepository) GetByClientID(ctx context.Context, clientID string) ([]domain.ProgressPhoto, error) {
	var photos []domain.ProgressPhoto
	findOptions := options.Find().SetSort(bson.D{{Key: "takenAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"clientId": clientID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// Delete removes photo metadata, ensuring client ownership.
func (r *mongoPhotoRepository) Delete(ctx context.Context, id string, clientID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "clientId": clientID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePhotoIndexes creates necessary indexes for the photos collection.
func EnsurePhotoIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "takenAt", Value: -1}},
		Options: options.Index(),
	})
	return err
}
