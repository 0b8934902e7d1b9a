package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/krancour/usersapi/apiserver/internal/users"
	"github.com/krancour/usersapi/sdk/meta"
	"github.com/pkg/errors"
)

const createTableTimeout = 5 * time.Second

const createTableQuery = `
CREATE TABLE IF NOT EXISTS users (
	id BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL
)`

// usersStore is a PostgreSQL-based implementation of users.UsersStore.
type usersStore struct {
	db *sql.DB
}

// NewUsersStore returns a PostgreSQL-based implementation of
// users.UsersStore. The users table is created if it does not already exist.
func NewUsersStore(db *sql.DB) (users.UsersStore, error) {
	ctx, cancel :=
		context.WithTimeout(context.Background(), createTableTimeout)
	defer cancel()
	if _, err := db.ExecContext(ctx, createTableQuery); err != nil {
		return nil, errors.Wrap(err, "error creating users table")
	}
	return &usersStore{
		db: db,
	}, nil
}

func (u *usersStore) Create(
	ctx context.Context,
	user users.User,
) (users.User, error) {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return users.User{}, errors.Wrap(err, "error starting transaction")
	}
	// Rollback after a successful Commit is a no-op
	defer tx.Rollback() // nolint: errcheck
	// EXCLUSIVE mode still permits plain SELECTs but serializes concurrent
	// creates so that no two of them observe the same count.
	if _, err = tx.ExecContext(
		ctx,
		"LOCK TABLE users IN EXCLUSIVE MODE",
	); err != nil {
		return users.User{}, errors.Wrap(err, "error locking users table")
	}
	var count int64
	if err = tx.QueryRowContext(
		ctx,
		"SELECT COUNT(*) FROM users",
	).Scan(&count); err != nil {
		return users.User{}, errors.Wrap(err, "error counting users")
	}
	user.ID = count + 1
	if _, err = tx.ExecContext(
		ctx,
		"INSERT INTO users (id, name, email) VALUES ($1, $2, $3)",
		user.ID,
		user.Name,
		user.Email,
	); err != nil {
		return users.User{},
			errors.Wrapf(err, "error inserting new user %d", user.ID)
	}
	if err = tx.Commit(); err != nil {
		return users.User{},
			errors.Wrapf(err, "error committing new user %d", user.ID)
	}
	return user, nil
}

func (u *usersStore) List(ctx context.Context) ([]users.User, error) {
	usrs := []users.User{}
	rows, err := u.db.QueryContext(
		ctx,
		"SELECT id, name, email FROM users ORDER BY id",
	)
	if err != nil {
		return usrs, errors.Wrap(err, "error finding users")
	}
	defer rows.Close()
	for rows.Next() {
		user := users.User{}
		if err = rows.Scan(&user.ID, &user.Name, &user.Email); err != nil {
			return []users.User{}, errors.Wrap(err, "error decoding users")
		}
		usrs = append(usrs, user)
	}
	if err = rows.Err(); err != nil {
		return []users.User{}, errors.Wrap(err, "error iterating users")
	}
	return usrs, nil
}

func (u *usersStore) Get(ctx context.Context, id int64) (users.User, error) {
	user := users.User{}
	err := u.db.QueryRowContext(
		ctx,
		"SELECT id, name, email FROM users WHERE id = $1",
		id,
	).Scan(&user.ID, &user.Name, &user.Email)
	if err == sql.ErrNoRows {
		return users.User{}, &meta.ErrNotFound{
			Type: "User",
			ID:   strconv.FormatInt(id, 10),
		}
	}
	if err != nil {
		return users.User{}, errors.Wrapf(err, "error finding user %d", id)
	}
	return user, nil
}
