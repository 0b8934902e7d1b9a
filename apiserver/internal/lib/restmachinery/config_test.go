package restmachinery

import (
	"os"
	"testing"
	"time"

	"github.com/krancour/usersapi/apiserver/internal/lib/crypto"
	"github.com/stretchr/testify/require"
)

func TestNewConfigWithDefaults(t *testing.T) {
	c := NewConfigWithDefaults()
	require.Equal(t, 8080, c.Port())
	require.Equal(t, 10*time.Second, c.ShutdownTimeout())
	require.False(t, c.TLSEnabled())
	require.Empty(t, c.HashedAPIToken())
}

func TestGetConfigFromEnvironment(t *testing.T) {
	testCases := []struct {
		name       string
		setup      func()
		assertions func(*testing.T, Config, error)
	}{
		{
			name:  "defaults",
			setup: func() {},
			assertions: func(t *testing.T, c Config, err error) {
				require.NoError(t, err)
				require.Equal(t, 8080, c.Port())
				require.Empty(t, c.HashedAPIToken())
			},
		},
		{
			name: "PORT not an int",
			setup: func() {
				os.Setenv("API_SERVER_PORT", "foo")
			},
			assertions: func(t *testing.T, _ Config, err error) {
				require.Error(t, err)
				require.Contains(t, err.Error(), "API_SERVER_PORT")
			},
		},
		{
			name: "TLS enabled without cert path",
			setup: func() {
				os.Setenv("API_SERVER_TLS_ENABLED", "true")
			},
			assertions: func(t *testing.T, _ Config, err error) {
				require.Error(t, err)
				require.Contains(t, err.Error(), "API_SERVER_TLS_CERT_PATH")
			},
		},
		{
			name: "TLS enabled without key path",
			setup: func() {
				os.Setenv("API_SERVER_TLS_ENABLED", "true")
				os.Setenv("API_SERVER_TLS_CERT_PATH", "/app/certs/tls.crt")
			},
			assertions: func(t *testing.T, _ Config, err error) {
				require.Error(t, err)
				require.Contains(t, err.Error(), "API_SERVER_TLS_KEY_PATH")
			},
		},
		{
			name: "success",
			setup: func() {
				os.Setenv("API_SERVER_PORT", "9090")
				os.Setenv("API_SERVER_API_TOKEN", "foobar")
				os.Setenv("API_SERVER_TLS_ENABLED", "true")
				os.Setenv("API_SERVER_TLS_CERT_PATH", "/app/certs/tls.crt")
				os.Setenv("API_SERVER_TLS_KEY_PATH", "/app/certs/tls.key")
				os.Setenv("API_SERVER_SHUTDOWN_TIMEOUT", "30s")
			},
			assertions: func(t *testing.T, c Config, err error) {
				require.NoError(t, err)
				require.Equal(t, 9090, c.Port())
				require.Equal(t, crypto.ShortSHA("", "foobar"), c.HashedAPIToken())
				require.Empty(t, c.(*config).APITokenAttr)
				require.True(t, c.TLSEnabled())
				require.Equal(t, "/app/certs/tls.crt", c.TLSCertPath())
				require.Equal(t, "/app/certs/tls.key", c.TLSKeyPath())
				require.Equal(t, 30*time.Second, c.ShutdownTimeout())
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			unsetAPIServerEnv()
			defer unsetAPIServerEnv()
			testCase.setup()
			c, err := GetConfigFromEnvironment()
			testCase.assertions(t, c, err)
		})
	}
}

func unsetAPIServerEnv() {
	for _, name := range []string{
		"API_SERVER_PORT",
		"API_SERVER_API_TOKEN",
		"API_SERVER_TLS_ENABLED",
		"API_SERVER_TLS_CERT_PATH",
		"API_SERVER_TLS_KEY_PATH",
		"API_SERVER_SHUTDOWN_TIMEOUT",
	} {
		os.Unsetenv(name)
	}
}
