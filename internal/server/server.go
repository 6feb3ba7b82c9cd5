package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/systemapi/bridge/internal/api/middleware"
	httpapi "github.com/systemapi/bridge/internal/http"
	"github.com/systemapi/bridge/internal/infrastructure/config"
	"github.com/systemapi/bridge/internal/infrastructure/monitoring"
	"github.com/systemapi/bridge/internal/logging"
	"github.com/systemapi/bridge/internal/native"
	"github.com/systemapi/bridge/internal/providers/system"
	"github.com/systemapi/bridge/internal/service"
	"github.com/systemapi/bridge/internal/ws"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	router   *gin.Engine
	config   *config.Config
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	manager  *native.Manager
	registry *service.Registry
}

// NewServer creates a server instance. A missing or unloadable native
// library is a degraded start, not a failed one: the service comes up
// and reports not_loaded until an explicit reload succeeds.
func NewServer(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("initializing systemapi bridge",
		zap.String("port", cfg.Server.Port),
		zap.String("library_dir", cfg.Library.Dir),
	)

	metrics := monitoring.NewMetrics()

	locator, err := native.NewLocator(cfg.Library.Dir, cfg.Library.DevDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable directory: %w", err)
	}

	manager := native.NewManager(native.NewLoader(), logger.Logger)
	bridge := native.NewBridge(manager)

	if cfg.Library.Autoload {
		if path, err := locator.Locate(); err != nil {
			logger.Warn("native library not found; system info features degraded",
				zap.Strings("candidates", locator.Candidates()),
			)
		} else if err := manager.Load(path); err != nil {
			logger.Warn("native library failed to load; system info features degraded",
				zap.Error(err),
			)
		}
		metrics.SetLibraryLoaded(manager.Loaded())
	}

	registry := service.NewRegistry()
	if err := registry.Register(system.NewProvider(bridge).WithMetrics(metrics)); err != nil {
		return nil, fmt.Errorf("failed to register system provider: %w", err)
	}
	logger.Info("service providers registered", zap.Any("stats", registry.Stats()))

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := httpapi.NewHandlers(registry, bridge, locator, metrics)
	wsHandler := ws.NewHandler(bridge, logger)

	RegisterRoutes(router, handlers, wsHandler, metrics)

	logger.Info("server initialized")

	return &Server{
		router:   router,
		config:   cfg,
		logger:   logger,
		metrics:  metrics,
		manager:  manager,
		registry: registry,
	}, nil
}

// RegisterRoutes attaches all endpoints to the router. Split out so
// handler tests can build a router without the full server.
func RegisterRoutes(router *gin.Engine, handlers *httpapi.Handlers, wsHandler *ws.Handler, metrics *monitoring.Metrics) {
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	router.GET("/services", handlers.ListServices)
	router.POST("/services/execute", handlers.ExecuteService)

	router.GET("/library", handlers.GetLibrary)
	router.POST("/library/reload", handlers.ReloadLibrary)
	router.POST("/library/unload", handlers.UnloadLibrary)

	if wsHandler != nil {
		router.GET("/stream", wsHandler.HandleConnection)
	}

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
		metrics.Registry(),
		promhttp.HandlerOpts{},
	)))
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close releases the native library handle and flushes logs.
func (s *Server) Close() error {
	s.logger.Info("shutting down")

	if err := s.manager.Unload(); err != nil {
		s.logger.Error("failed to unload native library", zap.Error(err))
		return err
	}
	s.logger.Sync() //nolint:errcheck // stdout sync failure is uninteresting
	return nil
}
