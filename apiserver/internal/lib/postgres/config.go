package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Registers the "pgx" driver with database/sql
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const (
	envconfigPrefix = "POSTGRES"
	pingTimeout     = 10 * time.Second
)

// Config represents common configuration options for a PostgreSQL
// connection.
type Config interface {
	// ConnectionString returns a connection string understood by the pgx
	// driver.
	ConnectionString() string
}

// config is the envconfig-backed Config. When ConnectionStringAttr is set,
// all other fields are ignored.
type config struct {
	ConnectionStringAttr string `envconfig:"CONNECTION_STRING"`
	Host                 string `envconfig:"HOST"`
	Port                 int    `envconfig:"PORT" default:"5432"`
	Database             string `envconfig:"DATABASE"`
	Username             string `envconfig:"USERNAME"`
	Password             string `envconfig:"PASSWORD"`
	SSLMode              string `envconfig:"SSL_MODE" default:"require"`
}

// GetConfigFromEnvironment returns PostgreSQL configuration specified by
// environment variables.
func GetConfigFromEnvironment() (Config, error) {
	c := &config{}
	if err := envconfig.Process(envconfigPrefix, c); err != nil {
		return c, errors.Wrap(
			err,
			"error getting postgres configuration from environment",
		)
	}
	if c.ConnectionStringAttr != "" {
		return c, nil
	}
	if c.Host == "" || c.Database == "" {
		return c, errors.New(
			"POSTGRES_HOST and POSTGRES_DATABASE must be set when " +
				"POSTGRES_CONNECTION_STRING is not",
		)
	}
	c.ConnectionStringAttr = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.Username,
		c.Password,
		c.Database,
		c.SSLMode,
	)
	return c, nil
}

func (c *config) ConnectionString() string {
	return c.ConnectionStringAttr
}

// Database returns a connection pool for the PostgreSQL database described by
// the provided Config. The database is pinged before returning.
func Database(ctx context.Context, c Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", c.ConnectionString())
	if err != nil {
		return nil, errors.Wrap(err, "error opening postgres connection")
	}
	pingCtx, pingCancel := context.WithTimeout(ctx, pingTimeout)
	defer pingCancel()
	if err = db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "error connecting to postgres")
	}
	return db, nil
}
