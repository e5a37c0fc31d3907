package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/gin-gonic/gin"

	"github.com/TokeNest/TokeNest-SmartContract/api/health"
	"github.com/TokeNest/TokeNest-SmartContract/api/telemetry"
	"github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
)

// QueryService is the read-only dex surface served over HTTP.
type QueryService interface {
	Factory(context.Context, *types.QueryFactoryRequest) (*types.QueryFactoryResponse, error)
	Pairs(context.Context, *types.QueryPairsRequest) (*types.QueryPairsResponse, error)
	Pair(context.Context, *types.QueryPairRequest) (*types.QueryPairResponse, error)
	Quote(context.Context, *types.QueryQuoteRequest) (*types.QueryQuoteResponse, error)
	AmountsOut(context.Context, *types.QueryAmountsRequest) (*types.QueryAmountsResponse, error)
	AmountsIn(context.Context, *types.QueryAmountsRequest) (*types.QueryAmountsResponse, error)
	LPBalance(context.Context, *types.QueryLPBalanceRequest) (*types.QueryLPBalanceResponse, error)
}

// ContextFunc returns the chain context queries run against.
type ContextFunc func() context.Context

// Server represents the dex API server
type Server struct {
	router    *gin.Engine
	queries   QueryService
	chainCtx  ContextFunc
	health    *health.HealthChecker
	telemetry *telemetry.Provider
	config    *Config
	logger    log.Logger

	mu sync.Mutex
}

// Config holds server configuration
type Config struct {
	Host            string
	Port            string
	ChainID         string
	Version         string
	CORSOrigins     []string
	RateLimitRPS    int
	MaxBodyBytes    int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:            "0.0.0.0",
		Port:            "1317",
		ChainID:         "tokenest-1",
		Version:         "1.0.0",
		CORSOrigins:     []string{"http://localhost:3000"},
		RateLimitRPS:    100,
		MaxBodyBytes:    1 << 20,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Option customizes a Server.
type Option func(*Server)

// WithTelemetry traces and measures every request with p.
func WithTelemetry(p *telemetry.Provider) Option {
	return func(s *Server) { s.telemetry = p }
}

// NewServer creates a new API server over queries. chainCtx is called once
// per request.
func NewServer(config *Config, queries QueryService, chainCtx ContextFunc, logger log.Logger, opts ...Option) (*Server, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if queries == nil || chainCtx == nil {
		return nil, errors.New("query service and chain context are required")
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router:   gin.New(),
		queries:  queries,
		chainCtx: chainCtx,
		health:   health.NewHealthChecker(config.Version),
		config:   config,
		logger:   logger.With("module", "api"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.telemetry == nil {
		p, err := telemetry.NewProvider(telemetry.Config{})
		if err != nil {
			return nil, err
		}
		s.telemetry = p
	}
	s.health.RegisterCheck("telemetry", func(context.Context) health.CheckResult {
		if err := s.telemetry.HealthCheck(); err != nil {
			return health.CheckResult{Status: health.StatusDegraded, Message: err.Error()}
		}
		return health.CheckResult{Status: health.StatusHealthy}
	})
	s.health.RegisterCheck("store", health.StoreCheck(func(context.Context) error {
		_, err := s.queries.Factory(s.chainCtx(), &types.QueryFactoryRequest{})
		return err
	}))

	s.setupRouter()
	return s, nil
}

// setupRouter configures the gin router with middleware and routes
func (s *Server) setupRouter() {
	s.router.Use(RecoveryMiddleware(s.logger))
	s.router.Use(SecurityHeadersMiddleware())
	s.router.Use(RequestSizeLimitMiddleware(s.config.MaxBodyBytes))
	s.router.Use(RequestIDMiddleware())
	s.router.Use(TracingMiddleware(s.telemetry))
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(CORSMiddleware(s.config.CORSOrigins))
	if s.config.RateLimitRPS > 0 {
		s.router.Use(RateLimitMiddleware(s.config.RateLimitRPS))
	}

	s.registerRoutes()
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:           net.JoinHostPort(s.config.Host, s.config.Port),
		Handler:        s.router,
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting dex API server", "addr", srv.Addr, "chain_id", s.config.ChainID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down dex API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
