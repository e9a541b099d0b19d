package store

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/pedigraph/pedigraph/pkg/errors"
	"github.com/pedigraph/pedigraph/pkg/graph"
	"github.com/pedigraph/pedigraph/pkg/observability"
)

// treesCollection is the collection holding one document per stored tree.
const treesCollection = "trees"

// MongoStore is a MongoDB-backed TreeStore for server deployments.
type MongoStore struct {
	client *mongo.Client
	trees  *mongo.Collection
}

// treeDoc is the stored document shape. PersonCount is denormalized on save
// so listings never load person arrays.
type treeDoc struct {
	ID          string         `bson:"_id"`
	Name        string         `bson:"name,omitempty"`
	Persons     []graph.Person `bson:"persons"`
	PersonCount int            `bson:"person_count"`
	CreatedAt   time.Time      `bson:"created_at"`
	UpdatedAt   time.Time      `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect mongodb")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongodb")
	}

	return &MongoStore{
		client: client,
		trees:  client.Database(database).Collection(treesCollection),
	}, nil
}

// Save upserts a tree document, assigning a fresh uuid when it carries none.
func (s *MongoStore) Save(ctx context.Context, t graph.Tree) (graph.Tree, error) {
	start := time.Now()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if err := errors.ValidateTreeID(t.ID); err != nil {
		observability.Store().OnStoreWrite(ctx, t.ID, time.Since(start), err)
		return graph.Tree{}, err
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":         t.Name,
			"persons":      t.Persons,
			"person_count": len(t.Persons),
			"updated_at":   now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}

	_, err := s.trees.UpdateOne(ctx, bson.M{"_id": t.ID}, update, options.Update().SetUpsert(true))
	if err != nil {
		err = errors.Wrap(errors.ErrCodeStorage, err, "save tree %s", t.ID)
		observability.Store().OnStoreWrite(ctx, t.ID, time.Since(start), err)
		return graph.Tree{}, err
	}

	observability.Store().OnStoreWrite(ctx, t.ID, time.Since(start), nil)
	return t, nil
}

// Get retrieves a tree by id.
func (s *MongoStore) Get(ctx context.Context, id string) (graph.Tree, error) {
	start := time.Now()

	var doc treeDoc
	err := s.trees.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		err = errors.New(errors.ErrCodeTreeNotFound, "tree %q not found", id)
		observability.Store().OnStoreRead(ctx, id, time.Since(start), err)
		return graph.Tree{}, err
	}
	if err != nil {
		err = errors.Wrap(errors.ErrCodeStorage, err, "load tree %s", id)
		observability.Store().OnStoreRead(ctx, id, time.Since(start), err)
		return graph.Tree{}, err
	}

	observability.Store().OnStoreRead(ctx, id, time.Since(start), nil)
	return graph.Tree{ID: doc.ID, Name: doc.Name, Persons: doc.Persons}, nil
}

// List returns summaries of all stored trees, ordered by id. Person arrays
// are projected away; only the denormalized count travels.
func (s *MongoStore) List(ctx context.Context) ([]TreeInfo, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.M{"persons": 0})

	cursor, err := s.trees.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list trees")
	}
	defer cursor.Close(ctx)

	var infos []TreeInfo
	for cursor.Next(ctx) {
		var doc treeDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode tree summary")
		}
		infos = append(infos, TreeInfo{
			ID:          doc.ID,
			Name:        doc.Name,
			PersonCount: doc.PersonCount,
			CreatedAt:   doc.CreatedAt,
			UpdatedAt:   doc.UpdatedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list trees")
	}
	return infos, nil
}

// Delete removes a tree by id.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	start := time.Now()

	res, err := s.trees.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		err = errors.Wrap(errors.ErrCodeStorage, err, "delete tree %s", id)
		observability.Store().OnStoreDelete(ctx, id, time.Since(start), err)
		return err
	}
	if res.DeletedCount == 0 {
		err = errors.New(errors.ErrCodeTreeNotFound, "tree %q not found", id)
		observability.Store().OnStoreDelete(ctx, id, time.Since(start), err)
		return err
	}

	observability.Store().OnStoreDelete(ctx, id, time.Since(start), nil)
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements TreeStore.
var _ TreeStore = (*MongoStore)(nil)
