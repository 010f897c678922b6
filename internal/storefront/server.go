package storefront

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/donaldgifford/sleekshop-go/internal/storefront/middleware"
	"github.com/donaldgifford/sleekshop-go/pkg/logger"
	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop"
)

// Config holds the listener settings.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Version      string
}

// Server is the storefront HTTP server.
type Server struct {
	echo *echo.Echo
	api  huma.API
	cfg  Config
	log  *slog.Logger
}

// NewServer wires the storefront routes for client. menu may be nil.
func NewServer(
	cfg Config,
	client *sleekshop.Client,
	sessions SessionFactory,
	menu MenuReader,
	log *slog.Logger,
) *Server {
	log = logger.Component(log, "storefront")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	e.Use(mw.Recovery(log))
	e.Use(mw.RequestLog(log))
	e.Use(mw.Metrics())

	health := NewHealthHandler(client.Server)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	api := humaecho.New(e, huma.DefaultConfig("Sleekshop Storefront", version))

	catalog := NewCatalogHandler(client.Categories, client.Products, client.Search, menu)
	RegisterCatalogRoutes(api, catalog)
	RegisterCartRoutes(api, NewCartHandler(client.Cart, sessions))

	return &Server{echo: e, api: api, cfg: cfg, log: log}
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// API returns the huma API for inspection.
func (s *Server) API() huma.API {
	return s.api
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("starting server", "addr", s.cfg.Addr)
	if err := s.echo.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down server")
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}
