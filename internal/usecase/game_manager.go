package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/telemetry"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, fn repository.UpdateFunc) (*entity.Game, bool, error)
}

type gameMetrics interface {
	MoveApplied(ctx context.Context, mark entity.Mark)
	MoveIgnored(ctx context.Context)
	GameFinished(ctx context.Context, outcome entity.Outcome)
	GameReset(ctx context.Context)
}

var _ gameMetrics = (*telemetry.GameMetrics)(nil)

// GameManager - drives the board of every browser session.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	metrics  gameMetrics
	tracer   trace.Tracer
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, metrics gameMetrics) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
		metrics:  metrics,
		tracer:   otel.Tracer(telemetry.InstrumentationName),
	}
}

// GetOrCreateGame - returns the board of the session, starting a new one when it has none.
func (that *GameManager) GetOrCreateGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	ctx, span := that.startSpan(ctx, "GameManager.GetOrCreateGame", sessionID)
	defer span.End()

	game, err := that.getOrCreateGame(ctx, sessionID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	return game, nil
}

// MakeMove - places the current mark on cell. Moves the rules reject are not errors,
// they come back with applied set to false and an unchanged game.
func (that *GameManager) MakeMove(ctx context.Context, sessionID string, cell int) (*entity.Game, bool, error) {
	log := that.logger.With("method", "MakeMove", "session", sessionID, "cell", cell)

	ctx, span := that.startSpan(ctx, "GameManager.MakeMove", sessionID)
	defer span.End()

	span.SetAttributes(attribute.Int("tictactoe.cell", cell))

	var mark entity.Mark
	applyMove := func(game *entity.Game) bool {
		mark = game.Turn
		return game.ApplyMove(cell)
	}

	game, applied, err := that.update(ctx, sessionID, applyMove)
	if err != nil {
		recordError(span, err)
		return nil, false, fmt.Errorf("failed make move: %w", err)
	}

	span.SetAttributes(attribute.Bool("tictactoe.applied", applied))

	if !applied {
		log.Debug("move ignored", "outcome", game.Outcome())
		that.metrics.MoveIgnored(ctx)

		return game, false, nil
	}

	that.metrics.MoveApplied(ctx, mark)

	if outcome := game.Outcome(); outcome.IsFinished() {
		log.Info("game finished", "outcome", outcome)
		that.metrics.GameFinished(ctx, outcome)
	}

	return game, true, nil
}

// Reset - clears the board of the session. A stored record that fails validation is overwritten.
func (that *GameManager) Reset(ctx context.Context, sessionID string) (*entity.Game, error) {
	ctx, span := that.startSpan(ctx, "GameManager.Reset", sessionID)
	defer span.End()

	resetGame := func(game *entity.Game) bool {
		game.Reset()
		return true
	}

	game, _, err := that.update(ctx, sessionID, resetGame)
	if errors.Is(err, entity.ErrInvalidGame) {
		that.logger.Warn("stored game is corrupt, replacing it", "session", sessionID, "error", err)

		game = entity.NewGame(sessionID)
		err = that.gameRepo.CreateOrUpdate(ctx, game)
	}

	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("failed reset game: %w", err)
	}

	that.logger.Info("game reset", "session", sessionID)
	that.metrics.GameReset(ctx)

	return game, nil
}

// update - applies fn to the stored game, or to a fresh one when the session has none yet.
func (that *GameManager) update(ctx context.Context, sessionID string, fn repository.UpdateFunc) (*entity.Game, bool, error) {
	if sessionID == "" {
		return nil, false, apperror.ErrSessionRequired
	}

	game, changed, err := that.gameRepo.Update(ctx, sessionID, fn)
	if err == nil {
		return game, changed, nil
	}

	if !errors.Is(err, apperror.ErrGameNotFound) {
		return nil, false, fmt.Errorf("failed to update game: %w", err)
	}

	game = entity.NewGame(sessionID)
	changed = fn(game)

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, false, fmt.Errorf("failed to create game: %w", err)
	}

	return game, changed, nil
}

func (that *GameManager) getOrCreateGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	if sessionID == "" {
		return nil, apperror.ErrSessionRequired
	}

	game, err := that.gameRepo.GetByID(ctx, sessionID)
	if err == nil {
		return game, nil
	}

	if !errors.Is(err, apperror.ErrGameNotFound) {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	game = entity.NewGame(sessionID)
	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "session", sessionID)

	return game, nil
}

func (that *GameManager) startSpan(ctx context.Context, name, sessionID string) (context.Context, trace.Span) {
	return that.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("tictactoe.session", sessionID)))
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
