package runs

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/treesearch/pkg/errors"
	tsio "github.com/matzehuels/treesearch/pkg/io"
)

const (
	// Collection is the MongoDB collection holding runs.
	Collection = "runs"

	connectTimeout = 5 * time.Second
)

// runDoc is the stored form of a run. The result is kept as its JSON
// encoding so the document matches what the HTTP API returns.
type runDoc struct {
	ID        string    `bson:"_id"`
	Algorithm string    `bson:"algorithm"`
	Kind      string    `bson:"kind"`
	CreatedAt time.Time `bson:"created_at"`
	Result    string    `bson:"result"`
}

// MongoStore archives runs in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// DialMongo connects to uri and uses the runs collection of database. A
// positive retention installs a TTL index on created_at, so MongoDB
// removes runs older than that.
func DialMongo(ctx context.Context, uri, database string, retention time.Duration) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	s := &MongoStore{client: client, coll: client.Database(database).Collection(Collection)}
	if retention > 0 {
		idx := mongo.IndexModel{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(retention / time.Second)),
		}
		if _, err := s.coll.Indexes().CreateOne(ctx, idx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("create ttl index: %w", err)
		}
	}
	return s, nil
}

func (s *MongoStore) Put(ctx context.Context, r tsio.Result) error {
	if r.RunID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "result has no run id")
	}
	r.Cached = false
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	doc := runDoc{
		ID:        r.RunID,
		Algorithm: r.Algorithm,
		Kind:      r.Kind,
		CreatedAt: time.Now().UTC(),
		Result:    string(data),
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": r.RunID}, doc, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) Get(ctx context.Context, runID string) (tsio.Result, error) {
	var doc runDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": runID}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return tsio.Result{}, errors.New(errors.ErrCodeNotFound, "run %s not found", runID)
	}
	if err != nil {
		return tsio.Result{}, err
	}

	var r tsio.Result
	if err := json.Unmarshal([]byte(doc.Result), &r); err != nil {
		return tsio.Result{}, errors.Wrap(errors.ErrCodeInternal, err, "decode run %s", runID)
	}
	return r, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
