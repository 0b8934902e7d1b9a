package restmachinery

import (
	"context"
	"fmt"
	"net/http"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/krancour/usersapi/internal/file"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"
)

// Server is an interface for the component that responds to HTTP API requests
type Server interface {
	// ListenAndServe causes the API server to start serving HTTP requests. It
	// will block until an error occurs or the context is canceled. In the
	// latter case, in-flight requests are given a chance to complete before
	// this function returns.
	ListenAndServe(ctx context.Context) error
}

type server struct {
	*BaseEndpoints // The server itself exposes health check endpoints
	config         Config
	handler        http.Handler
}

// NewServer returns a REST API server
func NewServer(
	config Config,
	baseEndpoints *BaseEndpoints,
	endpoints []Endpoints,
) Server {
	router := mux.NewRouter()
	router.StrictSlash(true)

	for _, eps := range endpoints {
		eps.Register(router)
	}

	s := &server{
		BaseEndpoints: baseEndpoints,
		config:        config,
		handler: withRequestLogging(
			cors.New(
				cors.Options{
					AllowedMethods: []string{http.MethodGet, http.MethodPost},
				},
			).Handler(router),
		),
	}

	// Health check
	router.HandleFunc(
		"/healthz",
		s.checkHealth, // No filters applied to this request
	).Methods(http.MethodGet)

	return s
}

func (s *server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port()),
		Handler: s.handler,
	}
	tlsEnabled := s.config.TLSEnabled() &&
		file.Exists(s.config.TLSCertPath()) &&
		file.Exists(s.config.TLSKeyPath())
	if !tlsEnabled {
		srv.Handler = h2c.NewHandler(s.handler, &http2.Server{})
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if tlsEnabled {
			glog.Infof(
				"API server is listening with TLS enabled on 0.0.0.0:%d",
				s.config.Port(),
			)
			err = srv.ListenAndServeTLS(
				s.config.TLSCertPath(),
				s.config.TLSKeyPath(),
			)
		} else {
			glog.Infof(
				"API server is listening without TLS on 0.0.0.0:%d",
				s.config.Port(),
			)
			err = srv.ListenAndServe()
		}
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-ctx.Done()
		glog.Info("API server is shutting down")
		shutdownCtx, cancel :=
			context.WithTimeout(context.Background(), s.config.ShutdownTimeout())
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *server) checkHealth(
	w http.ResponseWriter,
	r *http.Request,
) {
	s.ServeRequest(
		InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return struct{}{}, nil
			},
			SuccessCode: http.StatusOK,
		},
	)
}
