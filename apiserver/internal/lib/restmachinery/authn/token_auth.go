package authn

import (
	"net/http"
	"strings"

	"github.com/krancour/usersapi/apiserver/internal/lib/crypto"
	"github.com/krancour/usersapi/apiserver/internal/lib/restmachinery"
	"github.com/krancour/usersapi/sdk/meta"
)

// tokenAuthFilter is a component that implements the restmachinery.Filter
// interface and can conditionally allow or disallow a request based on the
// shared bearer token the request carries.
type tokenAuthFilter struct {
	hashedAPIToken string
	*restmachinery.BaseEndpoints
}

// NewTokenAuthFilter returns a component that implements the
// restmachinery.Filter interface and can conditionally allow or disallow a
// request based on whether it carries a bearer token matching the provided
// hash. If hashedAPIToken is empty, authentication is disabled and every
// request is allowed.
func NewTokenAuthFilter(hashedAPIToken string) restmachinery.Filter {
	if hashedAPIToken == "" {
		return restmachinery.NoopFilter
	}
	return &tokenAuthFilter{
		hashedAPIToken: hashedAPIToken,
		BaseEndpoints:  &restmachinery.BaseEndpoints{},
	}
}

// Decorate decorates one http.HandlerFunc with another that implements bearer
// token authentication.
func (t *tokenAuthFilter) Decorate(handle http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		headerValue := r.Header.Get("Authorization")
		if headerValue == "" {
			t.WriteAPIResponse(
				w,
				http.StatusUnauthorized,
				&meta.ErrAuthentication{
					Reason: `"Authorization" header is missing.`,
				},
			)
			return
		}
		headerValueParts := strings.SplitN(headerValue, " ", 2)
		if len(headerValueParts) != 2 || headerValueParts[0] != "Bearer" {
			t.WriteAPIResponse(
				w,
				http.StatusUnauthorized,
				&meta.ErrAuthentication{
					Reason: `"Authorization" header is malformed.`,
				},
			)
			return
		}
		if crypto.ShortSHA("", headerValueParts[1]) != t.hashedAPIToken {
			t.WriteAPIResponse(
				w,
				http.StatusUnauthorized,
				&meta.ErrAuthentication{
					Reason: "The token supplied is invalid.",
				},
			)
			return
		}
		handle(w, r)
	}
}
