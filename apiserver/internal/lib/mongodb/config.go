package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const (
	envconfigPrefix = "MONGODB"
	connectTimeout  = 10 * time.Second
)

// config represents common configuration options for a MongoDB connection.
// When ConnectionString is set, only Database is additionally consulted.
type config struct {
	ConnectionString string `envconfig:"CONNECTION_STRING"`
	Host             string `envconfig:"HOST"`
	Port             int    `envconfig:"PORT" default:"27017"`
	Database         string `envconfig:"DATABASE" required:"true"`
	ReplicaSet       string `envconfig:"REPLICA_SET"`
	Username         string `envconfig:"USERNAME"`
	Password         string `envconfig:"PASSWORD"`
}

func getConfigFromEnvironment() (config, error) {
	c := config{}
	if err := envconfig.Process(envconfigPrefix, &c); err != nil {
		return c, errors.Wrap(
			err,
			"error getting mongo configuration from environment",
		)
	}
	if c.ConnectionString != "" {
		return c, nil
	}
	if c.Host == "" {
		return c, errors.New(
			"MONGODB_HOST must be set when MONGODB_CONNECTION_STRING is not",
		)
	}
	c.ConnectionString = fmt.Sprintf("mongodb://%s:%d/%s", c.Host, c.Port, c.Database)
	if c.Username != "" {
		c.ConnectionString = fmt.Sprintf(
			"mongodb://%s:%s@%s:%d/%s",
			c.Username,
			c.Password,
			c.Host,
			c.Port,
			c.Database,
		)
	}
	if c.ReplicaSet != "" {
		c.ConnectionString =
			fmt.Sprintf("%s?replicaSet=%s", c.ConnectionString, c.ReplicaSet)
	}
	return c, nil
}

// Database returns a connection to a MongoDB database specified by environment
// variables.
func Database(ctx context.Context) (*mongo.Database, error) {
	c, err := getConfigFromEnvironment()
	if err != nil {
		return nil, err
	}
	connectCtx, connectCancel := context.WithTimeout(ctx, connectTimeout)
	defer connectCancel()
	// This client's settings favor consistency over speed
	client, err := mongo.Connect(
		connectCtx,
		options.Client().ApplyURI(c.ConnectionString).SetWriteConcern(
			writeconcern.New(writeconcern.WMajority()),
		).SetReadConcern(readconcern.Majority()),
	)
	if err != nil {
		return nil, errors.Wrap(err, "error connecting to mongo")
	}
	return client.Database(c.Database), nil
}
