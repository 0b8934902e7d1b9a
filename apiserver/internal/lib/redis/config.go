package redis

import (
	"crypto/tls"
	"fmt"

	"github.com/go-redis/redis"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const envconfigPrefix = "REDIS"

// Config represents common configuration options for a Redis connection.
type Config interface {
	// Options returns connection options for use with redis.NewClient.
	Options() *redis.Options
	// Prefix returns a string that should be prepended to every key so that
	// several applications can share one database.
	Prefix() string
}

type config struct {
	Host       string `envconfig:"HOST" required:"true"`
	Port       int    `envconfig:"PORT" default:"6379"`
	Password   string `envconfig:"PASSWORD"`
	DB         int    `envconfig:"DB"`
	EnableTLS  bool   `envconfig:"ENABLE_TLS"`
	PrefixAttr string `envconfig:"PREFIX"`
	MaxRetries int    `envconfig:"MAX_RETRIES" default:"5"`
}

// GetConfigFromEnvironment returns Redis configuration specified by
// environment variables.
func GetConfigFromEnvironment() (Config, error) {
	c := &config{}
	if err := envconfig.Process(envconfigPrefix, c); err != nil {
		return c, errors.Wrap(
			err,
			"error getting redis configuration from environment",
		)
	}
	return c, nil
}

func (c *config) Options() *redis.Options {
	redisOpts := &redis.Options{
		Addr:       fmt.Sprintf("%s:%d", c.Host, c.Port),
		Password:   c.Password,
		DB:         c.DB,
		MaxRetries: c.MaxRetries,
	}
	if c.EnableTLS {
		redisOpts.TLSConfig = &tls.Config{
			ServerName: c.Host,
		}
	}
	return redisOpts
}

func (c *config) Prefix() string {
	return c.PrefixAttr
}

// Client returns a connection to the Redis database described by the provided
// Config.
func Client(c Config) *redis.Client {
	return redis.NewClient(c.Options())
}
