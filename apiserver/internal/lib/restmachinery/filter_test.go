package restmachinery

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterFunc(t *testing.T) {
	testCases := []struct {
		name       string
		filter     Filter
		assertions func(*testing.T, *httptest.ResponseRecorder, bool)
	}{
		{
			name:   "noop filter",
			filter: NoopFilter,
			assertions: func(
				t *testing.T,
				rr *httptest.ResponseRecorder,
				handlerCalled bool,
			) {
				require.True(t, handlerCalled)
				require.Equal(t, http.StatusOK, rr.Code)
			},
		},
		{
			name: "filter answers the request itself",
			filter: FilterFunc(
				func(http.HandlerFunc) http.HandlerFunc {
					return func(w http.ResponseWriter, _ *http.Request) {
						w.WriteHeader(http.StatusForbidden)
					}
				},
			),
			assertions: func(
				t *testing.T,
				rr *httptest.ResponseRecorder,
				handlerCalled bool,
			) {
				require.False(t, handlerCalled)
				require.Equal(t, http.StatusForbidden, rr.Code)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var handlerCalled bool
			handler := testCase.filter.Decorate(
				func(w http.ResponseWriter, _ *http.Request) {
					handlerCalled = true
					w.WriteHeader(http.StatusOK)
				},
			)
			req, err := http.NewRequest(http.MethodGet, "/", nil)
			require.NoError(t, err)
			rr := httptest.NewRecorder()
			handler(rr, req)
			testCase.assertions(t, rr, handlerCalled)
		})
	}
}
