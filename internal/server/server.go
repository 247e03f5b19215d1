package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"webbridge/internal/api/middleware"
	"webbridge/internal/bridge"
	"webbridge/internal/bridge/workerassets"
	"webbridge/internal/http"
	"webbridge/internal/infrastructure/config"
	"webbridge/internal/infrastructure/monitoring"
	"webbridge/internal/infrastructure/tracing"
	"webbridge/internal/logging"
	"webbridge/internal/providers/web"
	"webbridge/internal/searx"
	"webbridge/internal/service"
	"webbridge/internal/version"
	"webbridge/internal/ws"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	registry *service.Registry
	bridge   *bridge.Bridge
	searx    *searx.Checker
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	// Initialize logger
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing webbridge server",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()
	tracer := tracing.New(version.Name, logger.Logger)

	// Resolve the worker script: an explicit path wins, otherwise the
	// embedded copy is written out on startup.
	scriptPath := cfg.Worker.ScriptPath
	if scriptPath == "" {
		materialized, err := workerassets.Materialize(cfg.Worker.ScriptDir)
		if err != nil {
			return nil, fmt.Errorf("materialize worker script: %w", err)
		}
		scriptPath = materialized
		logger.Info("Materialized embedded worker script",
			zap.String("path", scriptPath),
			zap.String("sha256", workerassets.Hash()),
		)
	} else {
		logger.Info("Using external worker script", zap.String("path", scriptPath))
	}

	b, err := bridge.New(bridge.Config{
		Script:         scriptPath,
		Python:         cfg.Worker.PythonBin,
		UV:             cfg.Worker.UVBin,
		SandboxDeps:    cfg.Worker.SandboxDeps,
		ProbeTimeout:   cfg.Worker.ProbeTimeout,
		DefaultTimeout: cfg.Worker.DefaultTimeout,
		MaxTimeout:     cfg.Worker.MaxTimeout,
		TimeoutGrace:   cfg.Worker.TimeoutGrace,
		SearxURL:       cfg.Search.SearxURL,
	}, logger, metrics)
	if err != nil {
		return nil, fmt.Errorf("initialize bridge: %w", err)
	}

	checker := searx.NewChecker(cfg.Search.SearxURL, cfg.Search.CheckTimeout, logger)

	// Register service providers
	serviceRegistry := service.NewRegistry()
	if err := serviceRegistry.Register(web.NewProvider(b, checker, logger)); err != nil {
		return nil, fmt.Errorf("register web provider: %w", err)
	}
	stats := serviceRegistry.Stats()
	logger.Info("Registered service providers",
		zap.Any("services", stats["total_services"]),
		zap.Any("tools", stats["total_tools"]),
	)

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	// Create handlers
	handlers := http.NewHandlers(serviceRegistry, b, checker, metrics)
	wsHandler := ws.NewHandler(serviceRegistry, metrics, logger)

	// Register routes
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Service management
	router.GET("/services", handlers.ListServices)
	router.POST("/services/discover", handlers.DiscoverServices)
	router.POST("/services/execute", handlers.ExecuteService)

	// WebSocket
	router.GET("/stream", wsHandler.HandleConnection)

	// Metrics endpoints
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/metrics/json", handlers.MetricsJSON)

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		registry: serviceRegistry,
		bridge:   b,
		searx:    checker,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")
	s.logger.Sync()
	return nil
}
