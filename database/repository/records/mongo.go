package recordsRepo

import (
	"context"
	"time"

	"tripforge/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRecord struct {
	Key       string     `bson:"_id"`
	Value     []byte     `bson:"value"`
	UpdatedAt time.Time  `bson:"updated_at"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

type mongoRecordStore struct {
	coll *mongo.Collection
}

// NewMongoRecordStore returns a Store backed by the "records" collection.
func NewMongoRecordStore() Store {
	db := database.MongoClient.Database("tripforge")
	store := &mongoRecordStore{
		coll: db.Collection("records"),
	}
	store.ensureIndexes()
	return store
}

// ensureIndexes creates the TTL index used to expire records written with
// SetWithTTL. Records without expires_at are kept indefinitely.
func (r *mongoRecordStore) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	}
	// Index creation is idempotent; errors here are not fatal to startup.
	r.coll.Indexes().CreateOne(ctx, idx) //nolint:errcheck
}

func (r *mongoRecordStore) Get(ctx context.Context, key string) ([]byte, error) {
	var rec mongoRecord
	err := r.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if rec.ExpiresAt != nil && rec.ExpiresAt.Before(time.Now()) {
		// The TTL monitor only sweeps periodically.
		return nil, ErrNotFound
	}
	return rec.Value, nil
}

func (r *mongoRecordStore) Set(ctx context.Context, key string, value []byte) error {
	return r.set(ctx, key, value, nil)
}

func (r *mongoRecordStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	expires := time.Now().Add(ttl)
	return r.set(ctx, key, value, &expires)
}

func (r *mongoRecordStore) set(ctx context.Context, key string, value []byte, expiresAt *time.Time) error {
	rec := mongoRecord{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": key}, rec, opts)
	return err
}
