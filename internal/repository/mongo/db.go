package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB establishes a connection to MongoDB using the provided URI.
// It returns the mongo.Client which can be used to access databases and collections.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Ping the primary node to verify the connection actually works.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureAllIndexes creates the indexes for every collection the
// application uses. Index creation is idempotent.
func EnsureAllIndexes(ctx context.Context, db *mongo.Database) error {
	if err := EnsureUserIndexes(ctx, db.Collection(userCollectionName)); err != nil {
		return err
	}
	if err := EnsureExerciseIndexes(ctx, db.Collection(exerciseCollectionName)); err != nil {
		return err
	}
	if err := EnsureSessionIndexes(ctx, db.Collection(sessionCollectionName)); err != nil {
		return err
	}
	if err := EnsureMeasurementIndexes(ctx, db.Collection(measurementCollectionName)); err != nil {
		return err
	}
	if err := EnsureMacroIndexes(ctx, db.Collection(macroTargetCollectionName), db.Collection(macroLogCollectionName)); err != nil {
		return err
	}
	if err := EnsureCheckInIndexes(ctx, db.Collection(checkInCollectionName)); err != nil {
		return err
	}
	return EnsurePhotoIndexes(ctx, db.Collection(photoCollectionName))
}
