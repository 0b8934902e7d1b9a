package authn

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/krancour/usersapi/apiserver/internal/lib/crypto"
	"github.com/stretchr/testify/require"
)

const testAPIToken = "foooooooooooooooooooo"

func TestTokenAuthFilter(t *testing.T) {
	testCases := []struct {
		name           string
		hashedAPIToken string
		headerValue    string
		assertions     func(t *testing.T, rr *httptest.ResponseRecorder, called bool)
	}{
		{
			name:           "authentication disabled",
			hashedAPIToken: "",
			assertions: func(
				t *testing.T,
				rr *httptest.ResponseRecorder,
				called bool,
			) {
				require.True(t, called)
				require.Equal(t, http.StatusOK, rr.Code)
			},
		},
		{
			name:           "header missing",
			hashedAPIToken: crypto.ShortSHA("", testAPIToken),
			assertions: func(
				t *testing.T,
				rr *httptest.ResponseRecorder,
				called bool,
			) {
				require.False(t, called)
				require.Equal(t, http.StatusUnauthorized, rr.Code)
				require.Contains(t, rr.Body.String(), "missing")
			},
		},
		{
			name:           "header not bearer",
			hashedAPIToken: crypto.ShortSHA("", testAPIToken),
			headerValue:    "Digest foo",
			assertions: func(
				t *testing.T,
				rr *httptest.ResponseRecorder,
				called bool,
			) {
				require.False(t, called)
				require.Equal(t, http.StatusUnauthorized, rr.Code)
				require.Contains(t, rr.Body.String(), "malformed")
			},
		},
		{
			name:           "token invalid",
			hashedAPIToken: crypto.ShortSHA("", testAPIToken),
			headerValue:    "Bearer bar",
			assertions: func(
				t *testing.T,
				rr *httptest.ResponseRecorder,
				called bool,
			) {
				require.False(t, called)
				require.Equal(t, http.StatusUnauthorized, rr.Code)
				require.Contains(t, rr.Body.String(), "AuthenticationError")
			},
		},
		{
			name:           "token valid",
			hashedAPIToken: crypto.ShortSHA("", testAPIToken),
			headerValue:    "Bearer " + testAPIToken,
			assertions: func(
				t *testing.T,
				rr *httptest.ResponseRecorder,
				called bool,
			) {
				require.True(t, called)
				require.Equal(t, http.StatusOK, rr.Code)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			a := NewTokenAuthFilter(testCase.hashedAPIToken)
			req, err := http.NewRequest(http.MethodGet, "/", nil)
			require.NoError(t, err)
			if testCase.headerValue != "" {
				req.Header.Add("Authorization", testCase.headerValue)
			}
			rr := httptest.NewRecorder()
			var called bool
			a.Decorate(func(w http.ResponseWriter, _ *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})(rr, req)
			testCase.assertions(t, rr, called)
		})
	}
}
