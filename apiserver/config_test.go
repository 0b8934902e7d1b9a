package main

import (
	"context"
	"os"
	"testing"

	"github.com/krancour/usersapi/apiserver/internal/users"
	"github.com/stretchr/testify/require"
)

func TestGetUsersStoreFromEnvironment(t *testing.T) {
	testCases := []struct {
		name       string
		setup      func()
		assertions func(*testing.T, users.UsersStore, error)
	}{
		{
			name:  "default is memory",
			setup: func() {},
			assertions: func(t *testing.T, store users.UsersStore, err error) {
				require.NoError(t, err)
				require.NotNil(t, store)
				usrs, err := store.List(context.Background())
				require.NoError(t, err)
				require.Empty(t, usrs)
			},
		},
		{
			name: "unrecognized store",
			setup: func() {
				os.Setenv("USERS_STORE", "cassandra")
			},
			assertions: func(t *testing.T, store users.UsersStore, err error) {
				require.Error(t, err)
				require.Contains(t, err.Error(), "cassandra")
				require.Nil(t, store)
			},
		},
		{
			name: "redis without configuration",
			setup: func() {
				os.Setenv("USERS_STORE", "redis")
				os.Unsetenv("REDIS_HOST")
			},
			assertions: func(t *testing.T, store users.UsersStore, err error) {
				require.Error(t, err)
				require.Contains(t, err.Error(), "redis configuration")
				require.Nil(t, store)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			os.Unsetenv("USERS_STORE")
			defer os.Unsetenv("USERS_STORE")
			testCase.setup()
			store, err := getUsersStoreFromEnvironment(context.Background())
			testCase.assertions(t, store, err)
		})
	}
}

func TestGetAPIServerFromEnvironment(t *testing.T) {
	os.Unsetenv("USERS_STORE")
	os.Unsetenv("API_SERVER_TLS_ENABLED")
	apiServer, err := getAPIServerFromEnvironment(context.Background())
	require.NoError(t, err)
	require.NotNil(t, apiServer)
}
