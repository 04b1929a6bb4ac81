package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/pkg"
)

type gameUseCase interface {
	GetOrCreateGame(ctx context.Context, sessionID string) (*entity.Game, error)
	MakeMove(ctx context.Context, sessionID string, cell int) (*entity.Game, bool, error)
	Reset(ctx context.Context, sessionID string) (*entity.Game, error)
}

type Server struct {
	logger  *slog.Logger
	handler http.Handler
}

func New(logger *slog.Logger, games gameUseCase, sessionTTL time.Duration) *Server {
	logger = logger.With("component", "rest")

	page := NewPageHandler(logger, games, sessionTTL)
	api := NewGameHandler(logger, games, sessionTTL)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", ping)

	mux.HandleFunc("GET /{$}", page.Index)
	mux.HandleFunc("POST /move", page.Move)
	mux.HandleFunc("POST /reset", page.Reset)

	mux.HandleFunc("GET /api/game", api.GetGame)
	mux.HandleFunc("POST /api/game/move", api.MakeMove)
	mux.HandleFunc("POST /api/game/reset", api.Reset)

	return &Server{
		logger:  logger,
		handler: otelhttp.NewHandler(mux, "rest"),
	}
}

func (that *Server) Handler() http.Handler {
	return that.handler
}

// Start - serves the page and the JSON API until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	return pkg.Serve(ctx, srv)
}

// ping - liveness check, answers without touching storage.
func ping(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	_, _ = io.WriteString(w, "pong")
}
