package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"

	"github.com/paypulse/showcase/adapters/events"
	"github.com/paypulse/showcase/adapters/payroll"
	"github.com/paypulse/showcase/adapters/store"
	"github.com/paypulse/showcase/adapters/tokenizer"
	"github.com/paypulse/showcase/config"
	"github.com/paypulse/showcase/metrics"
	"github.com/paypulse/showcase/ports"
	"github.com/paypulse/showcase/service"
	transporthttp "github.com/paypulse/showcase/transport/http"
)

const shutdownTimeout = 5 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the OmniPay provider",
		Action: func(c *cli.Context) error {
			cfg, logger, err := loadConfig(c)
			if err != nil {
				return err
			}

			handler, closeFn, err := buildServer(c.Context, cfg, logger)
			if err != nil {
				return err
			}
			defer closeFn()

			ln, err := net.Listen("tcp", cfg.Server.Address)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", cfg.Server.Address, err)
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, ln, handler, logger)
		},
	}
}

// buildServer wires the store, event publisher, auth service and router.
// The returned function releases Redis and Watermill resources.
func buildServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (http.Handler, func(), error) {
	var closers []func() error
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("failed to release resource", "error", err)
			}
		}
	}

	var (
		tokens      ports.TokenStore
		redisClient *redis.Client
	)

	switch cfg.Store.Driver {
	case config.StoreRedis:
		opts, err := redis.ParseURL(cfg.Store.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse redis url: %w", err)
		}

		redisClient = redis.NewClient(opts)
		closers = append(closers, redisClient.Close)

		if err := redisClient.Ping(ctx).Err(); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		tokens = store.NewRedisStore(redisClient)
	default:
		tokens = store.NewMemoryStore()
	}

	var eventPub ports.EventPublisher
	if cfg.Events.Enabled {
		wmLogger := watermill.NewStdLogger(false, false)

		var publisher message.Publisher
		if redisClient != nil {
			p, err := redisstream.NewPublisher(redisstream.PublisherConfig{Client: redisClient}, wmLogger)
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("failed to create redis publisher: %w", err)
			}
			publisher = p
		} else {
			publisher = gochannel.NewGoChannel(gochannel.Config{}, wmLogger)
		}
		closers = append(closers, publisher.Close)

		eventPub = events.NewWatermillPublisher(publisher, cfg.Events.Topic)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	authService := service.NewAuthService(
		tokenizer.NewRandomTokenizer(cfg.Challenge.Length),
		tokens,
		eventPub,
		metrics.New(reg),
		logger,
	)

	if logger.Enabled(ctx, slog.LevelDebug) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := transporthttp.SetupRouter(authService, payroll.NewDemoSource(), reg, logger)
	return router, closeAll, nil
}

// serve runs handler on ln until ctx is cancelled
func serve(ctx context.Context, ln net.Listener, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("provider listening", "address", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down provider")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
