package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"socialnetwork/app/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	ProfilesCollection = "profiles"
	PostsCollection    = "posts"
)

// MongoStore implements Store on a MongoDB database.
type MongoStore struct {
	db       *mongo.Database
	profiles *MongoProfileRepository
	posts    *MongoPostRepository
}

// ConnectMongo builds a client for uri. The driver connects lazily, so an
// unreachable server only surfaces on Ping or on the first operation.
func ConnectMongo(ctx context.Context, uri, database string, transactional bool) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}
	return NewMongoStore(client.Database(database), transactional), nil
}

// NewMongoStore wraps db. With transactional set, post replacement runs
// inside a multi-document transaction, which needs a replica set.
func NewMongoStore(db *mongo.Database, transactional bool) *MongoStore {
	return &MongoStore{
		db:       db,
		profiles: NewMongoProfileRepository(db.Collection(ProfilesCollection)),
		posts:    NewMongoPostRepository(db.Collection(PostsCollection), transactional),
	}
}

func (s *MongoStore) Profiles() ProfileRepository { return s.profiles }

func (s *MongoStore) Posts() PostRepository { return s.posts }

// Ping checks that the server is reachable
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the unique email index on profiles and the owner
// index on posts.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	if err := s.profiles.ensureIndex(ctx); err != nil {
		return err
	}
	_, err := s.db.Collection(PostsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("owner_email"),
	})
	if err != nil {
		return fmt.Errorf("failed to create posts index: %w", err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

// MongoProfileRepository implements ProfileRepository on a collection.
// Writes are refused until the unique email index exists, so a store that
// started without a reachable server still rejects duplicate emails once
// it comes up.
type MongoProfileRepository struct {
	coll    *mongo.Collection
	mutex   sync.Mutex
	indexed bool
}

// NewMongoProfileRepository creates a new MongoProfileRepository
func NewMongoProfileRepository(coll *mongo.Collection) *MongoProfileRepository {
	return &MongoProfileRepository{coll: coll}
}

// ensureIndex creates the unique email index. A failed attempt is retried
// by the next write.
func (r *MongoProfileRepository) ensureIndex(ctx context.Context) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.indexed {
		return nil
	}
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_email"),
	})
	if err != nil {
		return fmt.Errorf("failed to create profiles index: %w", err)
	}
	r.indexed = true
	return nil
}

// Create inserts a new profile. A taken email yields ErrDuplicateEmail.
func (r *MongoProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := r.ensureIndex(ctx); err != nil {
		return err
	}
	if _, err := r.coll.InsertOne(ctx, profile); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %v", ErrDuplicateEmail, err)
		}
		return err
	}
	return nil
}

// Upsert sets the editable fields of the profile with the given email,
// inserting it when missing. The password is never touched.
func (r *MongoProfileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	if err := r.ensureIndex(ctx); err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{
		"name":        profile.Name,
		"picture":     profile.Picture,
		"description": profile.Description,
		"status":      profile.Status,
		"gallery":     profile.Gallery,
	}}
	_, err := r.coll.UpdateOne(ctx, bson.M{"email": profile.Email}, update, options.Update().SetUpsert(true))
	return err
}

// GetByEmail returns ErrNotFound when no profile has the email
func (r *MongoProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile models.Profile
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// MongoPostRepository implements PostRepository on a collection
type MongoPostRepository struct {
	coll          *mongo.Collection
	transactional bool
}

// NewMongoPostRepository creates a new MongoPostRepository. With
// transactional set, replacements run inside a session transaction.
func NewMongoPostRepository(coll *mongo.Collection, transactional bool) *MongoPostRepository {
	return &MongoPostRepository{coll: coll, transactional: transactional}
}

// ReplaceByOwner deletes then inserts. Without transactions a failure
// between the two steps leaves the owner with no posts.
func (r *MongoPostRepository) ReplaceByOwner(ctx context.Context, email string, posts []*models.Post) error {
	if !r.transactional {
		return r.replace(ctx, email, posts)
	}

	session, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, r.replace(sc, email, posts)
	})
	return err
}

func (r *MongoPostRepository) replace(ctx context.Context, email string, posts []*models.Post) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"email": email}); err != nil {
		return err
	}
	if len(posts) == 0 {
		return nil
	}

	docs := make([]interface{}, len(posts))
	for i, post := range posts {
		docs[i] = post
	}
	result, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		return err
	}
	for i, id := range result.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok && i < len(posts) {
			posts[i].ID = oid.Hex()
		}
	}
	return nil
}

// ListByOwner sorts on _id, whose ObjectID timestamp follows insertion.
func (r *MongoPostRepository) ListByOwner(ctx context.Context, email string) ([]*models.Post, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"email": email}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []*models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	for _, post := range posts {
		post.BeforeSave()
	}
	return posts, nil
}
