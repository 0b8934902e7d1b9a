package restmachinery

import (
	"net/http"
	"time"

	"github.com/golang/glog"
	uuid "github.com/satori/go.uuid"
)

const requestIDHeader = "X-Request-Id"

// statusRecorder remembers the status code written by the wrapped handler so
// it can be logged.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (s *statusRecorder) WriteHeader(statusCode int) {
	s.statusCode = statusCode
	s.ResponseWriter.WriteHeader(statusCode)
}

// withRequestLogging assigns every request an ID (unless the client already
// sent one), echoes it back in the X-Request-Id response header and logs
// method, path, status and duration once the request has been served.
func withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewV4().String()
		}
		w.Header().Set(requestIDHeader, requestID)
		rec := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(rec, r)
		glog.Infof(
			"[%s] %s %s %d %s",
			requestID,
			r.Method,
			r.URL.Path,
			rec.statusCode,
			time.Since(start).Round(time.Millisecond),
		)
	})
}
