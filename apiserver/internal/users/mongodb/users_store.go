package mongodb

import (
	"context"
	"strconv"
	"time"

	"github.com/krancour/usersapi/apiserver/internal/users"
	"github.com/krancour/usersapi/sdk/meta"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	createIndexTimeout = 5 * time.Second
	// maxCreateAttempts bounds how many times Create will recount and retry
	// after losing an ID to a concurrent insert.
	maxCreateAttempts = 5
	duplicateKeyCode  = 11000
)

// usersStore is a MongoDB-based implementation of users.UsersStore.
type usersStore struct {
	collection *mongo.Collection
}

// NewUsersStore returns a MongoDB-based implementation of users.UsersStore.
// A unique index on the id field is created if it does not already exist.
func NewUsersStore(database *mongo.Database) (users.UsersStore, error) {
	ctx, cancel :=
		context.WithTimeout(context.Background(), createIndexTimeout)
	defer cancel()
	unique := true
	collection := database.Collection("users")
	if _, err := collection.Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.M{
				"id": 1,
			},
			Options: &options.IndexOptions{
				Unique: &unique,
			},
		},
	); err != nil {
		return nil, errors.Wrap(err, "error adding indexes to users collection")
	}
	return &usersStore{
		collection: collection,
	}, nil
}

func (u *usersStore) Create(
	ctx context.Context,
	user users.User,
) (users.User, error) {
	return createWithNextID(
		ctx,
		user,
		func(ctx context.Context) (int64, error) {
			return u.collection.CountDocuments(ctx, bson.M{})
		},
		func(ctx context.Context, user users.User) error {
			_, err := u.collection.InsertOne(ctx, user)
			return err
		},
	)
}

// createWithNextID assigns the User the ID count+1 and inserts it. When a
// concurrent insert has already claimed that ID, it recounts and tries again,
// up to maxCreateAttempts times.
func createWithNextID(
	ctx context.Context,
	user users.User,
	count func(context.Context) (int64, error),
	insert func(context.Context, users.User) error,
) (users.User, error) {
	for i := 0; i < maxCreateAttempts; i++ {
		n, err := count(ctx)
		if err != nil {
			return users.User{}, errors.Wrap(err, "error counting users")
		}
		user.ID = n + 1
		err = insert(ctx, user)
		if err == nil {
			return user, nil
		}
		if !isDuplicateKeyError(err) {
			return users.User{},
				errors.Wrapf(err, "error inserting new user %d", user.ID)
		}
	}
	return users.User{}, &meta.ErrConflict{
		Type: "User",
		ID:   strconv.FormatInt(user.ID, 10),
		Reason: "Could not assign an ID to the new user; too many concurrent " +
			"requests. Try again.",
	}
}

func (u *usersStore) List(ctx context.Context) ([]users.User, error) {
	usrs := []users.User{}
	findOptions := options.Find()
	findOptions.SetSort(bson.M{"id": 1})
	cur, err := u.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return usrs, errors.Wrap(err, "error finding users")
	}
	if err := cur.All(ctx, &usrs); err != nil {
		return usrs, errors.Wrap(err, "error decoding users")
	}
	return usrs, nil
}

func (u *usersStore) Get(ctx context.Context, id int64) (users.User, error) {
	user := users.User{}
	res := u.collection.FindOne(ctx, bson.M{"id": id})
	if res.Err() == mongo.ErrNoDocuments {
		return user, &meta.ErrNotFound{
			Type: "User",
			ID:   strconv.FormatInt(id, 10),
		}
	}
	if res.Err() != nil {
		return user, errors.Wrapf(res.Err(), "error finding user %d", id)
	}
	if err := res.Decode(&user); err != nil {
		return user, errors.Wrapf(err, "error decoding user %d", id)
	}
	return user, nil
}

func isDuplicateKeyError(err error) bool {
	writeException, ok := err.(mongo.WriteException)
	if !ok {
		return false
	}
	for _, writeErr := range writeException.WriteErrors {
		if writeErr.Code == duplicateKeyCode {
			return true
		}
	}
	return false
}
