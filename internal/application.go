package application

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/config"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/telemetry"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-hotseat/transport/rest"
	"github.com/rocketscienceinc/tictactoe-hotseat/transport/websocket"
)

// Version - reported as the service version of exported telemetry.
var Version = "dev"

// RunApp - runs the application until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return run(ctx, logger, conf)
}

// run - serves until ctx is canceled or a server fails, and returns only after both
// servers finished their graceful shutdown.
func run(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	shutdownOtel, err := telemetry.InitOtel(ctx, conf.Telemetry, Version)
	if err != nil {
		return fmt.Errorf("could not init telemetry: %w", err)
	}

	if conf.Telemetry.Enabled {
		logger = slog.New(telemetry.NewLogHandler(logger.Handler()))
		log = logger.With("component", "app")
	}

	defer func() {
		if otelErr := shutdownOtel(context.Background()); otelErr != nil {
			log.Error("could not shut down telemetry", "error", otelErr)
		}
	}()

	gameRepo, closeStorage, err := newGameRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer closeStorage()

	metrics, err := telemetry.NewGameMetrics(otel.Meter(telemetry.InstrumentationName))
	if err != nil {
		return fmt.Errorf("could not create metrics: %w", err)
	}

	gameUseCase := usecase.NewGameManager(logger, gameRepo, metrics)

	// a failing server cancels groupCtx, which stops the other one
	group, groupCtx := errgroup.WithContext(ctx)

	// run HTTP server
	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, gameUseCase, conf.SessionTTL)
		if httpErr := restServer.Start(groupCtx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			return fmt.Errorf("HTTP server error: %w", httpErr)
		}
		return nil
	})

	// run Websocket server
	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameUseCase, conf.SessionTTL)
		if wsErr := wsServer.Start(groupCtx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			return fmt.Errorf("WebSocket server error: %w", wsErr)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		if ctx.Err() != nil {
			log.Info("Received signal, shutting down")
		}
		return nil
	})

	if err = group.Wait(); err != nil {
		return err
	}

	log.Info("Servers stopped")

	return nil
}

// newGameRepository - picks the game storage named by the config.
func newGameRepository(ctx context.Context, conf *config.Config) (repository.GameRepository, func(), error) {
	switch conf.Storage {
	case config.StorageMemory:
		return repository.NewMemoryGameRepository(conf.SessionTTL), func() {}, nil
	case config.StorageRedis:
		redisStorage, err := storage.New(ctx, storage.RedisOptions{
			Addr:     conf.Redis.GetRedisAddr(),
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		closeStorage := func() {
			_ = redisStorage.Close()
		}

		return repository.NewGameRepository(redisStorage, conf.SessionTTL), closeStorage, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", apperror.ErrUnsupportedStorage, conf.Storage)
	}
}
