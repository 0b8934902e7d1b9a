package postgres

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"

	// Registers the "pgx" driver with database/sql
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/krancour/usersapi/apiserver/internal/users"
	"github.com/krancour/usersapi/sdk/meta"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// These tests need a disposable database. The users table in it is dropped.
const testConnectionStringEnvVar = "POSTGRES_TEST_CONNECTION_STRING"

func setupTestStore(t *testing.T) users.UsersStore {
	connectionString := os.Getenv(testConnectionStringEnvVar)
	if connectionString == "" {
		t.Skipf("%s not set", testConnectionStringEnvVar)
	}
	db, err := sql.Open("pgx", connectionString)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	_, err = db.Exec("DROP TABLE IF EXISTS users")
	require.NoError(t, err)
	store, err := NewUsersStore(db)
	require.NoError(t, err)
	return store
}

func TestUsersStore(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	usrs, err := store.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, usrs)
	require.Empty(t, usrs)

	ann, err := store.Create(
		ctx,
		users.User{ID: 99, Name: "Ann", Email: "ann@x.com"},
	)
	require.NoError(t, err)
	require.Equal(t, users.User{ID: 1, Name: "Ann", Email: "ann@x.com"}, ann)

	bob, err := store.Create(ctx, users.User{Name: "Bob", Email: "bob@x.com"})
	require.NoError(t, err)
	require.Equal(t, int64(2), bob.ID)

	usrs, err = store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []users.User{ann, bob}, usrs)

	user, err := store.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, ann, user)

	_, err = store.Get(ctx, 3)
	require.Error(t, err)
	require.IsType(t, &meta.ErrNotFound{}, errors.Cause(err))
}

func TestUsersStoreConcurrentCreate(t *testing.T) {
	store := setupTestStore(t)
	const count = 20
	errs := make(chan error, count)
	wg := sync.WaitGroup{}
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func() {
			defer wg.Done()
			_, err := store.Create(
				context.Background(),
				users.User{Name: "Ann", Email: "ann@x.com"},
			)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	usrs, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, usrs, count)
	for i, user := range usrs {
		require.Equal(t, int64(i+1), user.ID)
	}
}
