package restmachinery

import "net/http"

// Filter wraps an endpoint's http.HandlerFunc with behavior that runs before
// it, such as authentication. A Filter may answer a request itself instead of
// calling the wrapped handler.
type Filter interface {
	// Decorate returns handle wrapped by the Filter.
	Decorate(handle http.HandlerFunc) http.HandlerFunc
}

// FilterFunc adapts an ordinary function to the Filter interface.
type FilterFunc func(http.HandlerFunc) http.HandlerFunc

// Decorate calls f(handle).
func (f FilterFunc) Decorate(handle http.HandlerFunc) http.HandlerFunc {
	return f(handle)
}

// NoopFilter leaves every handler as it is.
var NoopFilter Filter = FilterFunc(
	func(handle http.HandlerFunc) http.HandlerFunc {
		return handle
	},
)
