package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/sleekshop-go/internal/config"
	"github.com/donaldgifford/sleekshop-go/internal/menu"
	"github.com/donaldgifford/sleekshop-go/internal/storefront"
	"github.com/donaldgifford/sleekshop-go/pkg/logger"
	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop"
	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop/session"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the storefront API server",
		Long: "Serve the storefront JSON API in front of the backend, with session\n" +
			"handling, the menu cache and Prometheus metrics.",
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	client := newClient(cfg, log)

	sessions, closeSessions, err := buildSessions(cfg, client, log)
	if err != nil {
		return err
	}
	defer closeSessions()

	var menuReader storefront.MenuReader
	if cfg.Sleekshop.TemplatePath != "" {
		cache, err := menu.NewCache(client.Categories, client.Options(), menu.WithLogger(log))
		if err != nil {
			return fmt.Errorf("creating menu cache: %w", err)
		}
		menuReader = cache

		if cfg.Menu.RefreshInterval > 0 {
			sched, err := menu.NewScheduler(cache, cfg.Menu.RefreshInterval, cfg.Menu.Languages, log)
			if err != nil {
				return fmt.Errorf("creating menu scheduler: %w", err)
			}
			sched.Start()
			defer func() { <-sched.Stop().Done() }()
		}
	}

	srv := storefront.NewServer(storefront.Config{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Version:      Version,
	}, client, sessions, menuReader, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Info("server stopped")
	return nil
}

// buildSessions creates the session factory, connecting to Redis when the
// session backend asks for it. The returned func releases the backend.
func buildSessions(
	cfg *config.Config,
	client *sleekshop.Client,
	log *slog.Logger,
) (*storefront.Sessions, func(), error) {
	method, err := sleekshop.ParseStorageMethod(cfg.Session.StorageMethod)
	if err != nil {
		return nil, nil, err
	}

	opts := []storefront.SessionsOption{
		storefront.WithCookieOptions(
			session.WithCookiePath(cfg.Session.CookiePath),
			session.WithSecureCookie(cfg.Session.CookieSecure),
		),
		storefront.WithSecureVisitorCookie(cfg.Session.CookieSecure),
	}
	closeFn := func() {}

	if method == sleekshop.StorageSession && cfg.Session.Backend == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Session.Redis.Addr,
			Password: cfg.Session.Redis.Password,
			DB:       cfg.Session.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		log.Info("redis session backend connected", "addr", cfg.Session.Redis.Addr)

		opts = append(opts, storefront.WithBackend(session.NewRedisBackend(rdb), cfg.Session.TTL))
		closeFn = func() {
			if err := rdb.Close(); err != nil {
				log.Warn("closing redis", "error", err)
			}
		}
	} else if method == sleekshop.StorageSession {
		opts = append(opts, storefront.WithBackend(session.NewMemoryBackend(), cfg.Session.TTL))
	}

	return storefront.NewSessions(client, method, opts...), closeFn, nil
}
