package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/bandseeking/bandseeking-go/internal/constants"
	"github.com/bandseeking/bandseeking-go/internal/domain"
	"github.com/bandseeking/bandseeking-go/internal/geocoding"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LocationResolver interface {
	ResolveWait(ctx context.Context, code string) string
}

type ProfileReporter interface {
	Report(ctx context.Context, username string) (*domain.CompletionReport, error)
	Build(ctx context.Context, p *domain.Profile) *domain.CompletionReport
}

type Encourager interface {
	Pick() string
}

// CircuitReporter exposes the geocoder circuit for /healthz. Optional.
type CircuitReporter interface {
	CircuitStatus() geocoding.CircuitBreakerStatus
}

// DatabasePinger and CacheChecker report backing store health for /healthz.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

type CacheChecker interface {
	IsConnected(ctx context.Context) bool
}

type Dependencies struct {
	Locations      LocationResolver
	Profiles       ProfileReporter
	Encourager     Encourager
	Geocoder       CircuitReporter
	Database       DatabasePinger // optional
	Cache          CacheChecker   // optional, set only when Redis is enabled
	AllowedOrigins []string
	Mode           string
	Logger         *zap.Logger
}

type Server struct {
	deps   Dependencies
	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

func New(addr string, deps Dependencies) *Server {
	s := &Server{
		deps:   deps,
		logger: deps.Logger,
	}
	s.router = s.newRouter()
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: constants.ServerConfig.ReadHeaderTimeout,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks until the server stops. A graceful Shutdown is not an error.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
