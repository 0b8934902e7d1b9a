package redis

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/go-redis/redis"
	"github.com/krancour/usersapi/apiserver/internal/users"
	"github.com/krancour/usersapi/sdk/meta"
	"github.com/pkg/errors"
)

// createScript assigns the next ID and appends the new user in one atomic
// step. KEYS[1] is the users list. ARGV holds name and email. It returns the
// assigned ID.
var createScript = redis.NewScript(`
local id = redis.call("LLEN", KEYS[1]) + 1
redis.call(
	"RPUSH",
	KEYS[1],
	cjson.encode({ id = id, name = ARGV[1], email = ARGV[2] })
)
return id
`)

// usersStore is a Redis-based implementation of users.UsersStore. All Users
// live in a single list where index i holds the User with ID i+1.
type usersStore struct {
	redisClient *redis.Client
	usersKey    string
}

// NewUsersStore returns a Redis-based implementation of users.UsersStore. The
// script used for creating Users is loaded into the server's script cache
// immediately so that configuration problems surface at startup.
func NewUsersStore(
	redisClient *redis.Client,
	prefix string,
) (users.UsersStore, error) {
	if err := createScript.Load(redisClient).Err(); err != nil {
		return nil, errors.Wrap(err, "error loading user creation script")
	}
	return &usersStore{
		redisClient: redisClient,
		usersKey:    usersKey(prefix),
	}, nil
}

func usersKey(prefix string) string {
	return prefix + "users"
}

func (u *usersStore) Create(
	ctx context.Context,
	user users.User,
) (users.User, error) {
	// Run uses EVALSHA and falls back to EVAL if the server's script cache was
	// flushed since NewUsersStore loaded it.
	id, err := createScript.Run(
		u.redisClient.WithContext(ctx),
		[]string{u.usersKey},
		user.Name,
		user.Email,
	).Int64()
	if err != nil {
		return users.User{}, errors.Wrap(err, "error inserting new user")
	}
	user.ID = id
	return user, nil
}

func (u *usersStore) List(ctx context.Context) ([]users.User, error) {
	userStrs, err := u.redisClient.WithContext(ctx).LRange(
		u.usersKey,
		0,
		-1,
	).Result()
	if err != nil {
		return []users.User{}, errors.Wrap(err, "error listing users")
	}
	usrs := make([]users.User, len(userStrs))
	for i, userStr := range userStrs {
		if usrs[i], err = decodeUser(userStr); err != nil {
			return []users.User{}, err
		}
	}
	return usrs, nil
}

func (u *usersStore) Get(ctx context.Context, id int64) (users.User, error) {
	// LINDEX treats negative indices as offsets from the end of the list
	if id < 1 {
		return users.User{}, notFound(id)
	}
	userStr, err := u.redisClient.WithContext(ctx).LIndex(
		u.usersKey,
		id-1,
	).Result()
	if err == redis.Nil {
		return users.User{}, notFound(id)
	}
	if err != nil {
		return users.User{}, errors.Wrapf(err, "error finding user %d", id)
	}
	return decodeUser(userStr)
}

func decodeUser(userStr string) (users.User, error) {
	user := users.User{}
	if err := json.Unmarshal([]byte(userStr), &user); err != nil {
		return user, errors.Wrap(err, "error decoding user")
	}
	return user, nil
}

func notFound(id int64) error {
	return &meta.ErrNotFound{
		Type: "User",
		ID:   strconv.FormatInt(id, 10),
	}
}
