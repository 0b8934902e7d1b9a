package main

// nolint: lll
import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"
	"github.com/kelseyhightower/envconfig"
	"github.com/krancour/usersapi/apiserver/internal/lib/mongodb"
	"github.com/krancour/usersapi/apiserver/internal/lib/postgres"
	"github.com/krancour/usersapi/apiserver/internal/lib/redis"
	"github.com/krancour/usersapi/apiserver/internal/lib/restmachinery"
	"github.com/krancour/usersapi/apiserver/internal/lib/restmachinery/authn"
	"github.com/krancour/usersapi/apiserver/internal/users"
	usersMemory "github.com/krancour/usersapi/apiserver/internal/users/memory"
	usersMongodb "github.com/krancour/usersapi/apiserver/internal/users/mongodb"
	usersPostgres "github.com/krancour/usersapi/apiserver/internal/users/postgres"
	usersRedis "github.com/krancour/usersapi/apiserver/internal/users/redis"
	usersREST "github.com/krancour/usersapi/apiserver/internal/users/rest"
	"github.com/krancour/usersapi/internal/retries"
	"github.com/pkg/errors"
)

const (
	// Remote stores may still be starting when the API server does
	storeConnectMaxAttempts = 10
	storeConnectMaxBackoff  = 10 * time.Second

	storeMemory   = "memory"
	storeMongoDB  = "mongodb"
	storeRedis    = "redis"
	storePostgres = "postgres"
)

type usersConfig struct {
	Store string `envconfig:"STORE" default:"memory"`
}

func getUsersStoreFromEnvironment(
	ctx context.Context,
) (users.UsersStore, error) {
	c := usersConfig{}
	if err := envconfig.Process("USERS", &c); err != nil {
		return nil, errors.Wrap(
			err,
			"error getting users configuration from environment",
		)
	}
	glog.Infof("using %s users store", c.Store)
	switch c.Store {
	case storeMemory:
		return usersMemory.NewUsersStore(), nil
	case storeMongoDB:
		database, err := mongodb.Database(ctx)
		if err != nil {
			return nil, err
		}
		return connectUsersStore(
			ctx,
			c.Store,
			func() (users.UsersStore, error) {
				return usersMongodb.NewUsersStore(database)
			},
		)
	case storeRedis:
		redisConfig, err := redis.GetConfigFromEnvironment()
		if err != nil {
			return nil, err
		}
		redisClient := redis.Client(redisConfig)
		return connectUsersStore(
			ctx,
			c.Store,
			func() (users.UsersStore, error) {
				return usersRedis.NewUsersStore(redisClient, redisConfig.Prefix())
			},
		)
	case storePostgres:
		postgresConfig, err := postgres.GetConfigFromEnvironment()
		if err != nil {
			return nil, err
		}
		return connectUsersStore(
			ctx,
			c.Store,
			func() (users.UsersStore, error) {
				db, err := postgres.Database(ctx, postgresConfig)
				if err != nil {
					return nil, err
				}
				store, err := usersPostgres.NewUsersStore(db)
				if err != nil {
					db.Close()
				}
				return store, err
			},
		)
	}
	return nil, errors.Errorf(
		"unrecognized USERS_STORE %q; valid values are %q, %q, %q and %q",
		c.Store,
		storeMemory,
		storeMongoDB,
		storeRedis,
		storePostgres,
	)
}

// connectUsersStore retries connecting to a remote store until it succeeds,
// attempts are exhausted or ctx is canceled.
func connectUsersStore(
	ctx context.Context,
	storeName string,
	connect func() (users.UsersStore, error),
) (users.UsersStore, error) {
	var store users.UsersStore
	err := retries.ManageRetries(
		ctx,
		fmt.Sprintf("connect to %s users store", storeName),
		storeConnectMaxAttempts,
		storeConnectMaxBackoff,
		func() (bool, error) {
			var err error
			store, err = connect()
			return err != nil, err
		},
	)
	return store, err
}

func getAPIServerFromEnvironment(
	ctx context.Context,
) (restmachinery.Server, error) {

	// API server config
	apiConfig, err := restmachinery.GetConfigFromEnvironment()
	if err != nil {
		return nil, err
	}

	// Users
	usersStore, err := getUsersStoreFromEnvironment(ctx)
	if err != nil {
		return nil, err
	}
	usersService := users.NewUsersService(usersStore)

	baseEndpoints := &restmachinery.BaseEndpoints{
		TokenAuthFilter: authn.NewTokenAuthFilter(apiConfig.HashedAPIToken()),
	}

	return restmachinery.NewServer(
		apiConfig,
		baseEndpoints,
		[]restmachinery.Endpoints{
			usersREST.NewUsersEndpoints(baseEndpoints, usersService),
		},
	), nil
}
