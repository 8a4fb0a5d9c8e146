package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/adanyl0v/service-catalog/internal/config"
	"github.com/adanyl0v/service-catalog/internal/delivery/http/v1"
	"github.com/adanyl0v/service-catalog/internal/metrics"
	"github.com/adanyl0v/service-catalog/internal/services"
	"github.com/adanyl0v/service-catalog/internal/validation"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := newRouter(cfg, globalLogger, globalRepositories, metrics.New())

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func newRouter(
	cfg *config.Config,
	logger zerolog.Logger,
	repos repositories,
	m *metrics.Metrics,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(v1.CORS(cfg.HTTP.AllowedOrigins))
	if cfg.Tracing.Enabled {
		router.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	router.Use(m.Middleware())
	router.Use(v1.RequestLogger(logger))

	handler := v1.New(v1.Params{
		Logger:       logger,
		Validator:    validation.New(),
		Services:     repos.services,
		Tasks:        repos.tasks,
		Stats:        services.NewStatsService(logger, repos.services, m),
		Store:        repos.health,
		ExposeErrors: cfg.Development(),
	})

	router.GET("/healthz", handler.HandleHealth)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	// Resource routes are served both at the root and under /api.
	v1.RegisterRoutes(router, handler)
	v1.RegisterRoutes(router.Group("/api"), handler)

	return router
}
