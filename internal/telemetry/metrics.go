package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// GameMetrics - counters describing how sessions are played.
type GameMetrics struct {
	movesApplied  metric.Int64Counter
	movesIgnored  metric.Int64Counter
	gamesFinished metric.Int64Counter
	gamesReset    metric.Int64Counter
}

func NewGameMetrics(meter metric.Meter) (*GameMetrics, error) {
	movesApplied, err := meter.Int64Counter("tictactoe.moves.applied",
		metric.WithDescription("Moves placed on a board"),
		metric.WithUnit("{move}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create moves.applied counter: %w", err)
	}

	movesIgnored, err := meter.Int64Counter("tictactoe.moves.ignored",
		metric.WithDescription("Clicks on occupied cells, out of range cells or finished games"),
		metric.WithUnit("{move}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create moves.ignored counter: %w", err)
	}

	gamesFinished, err := meter.Int64Counter("tictactoe.games.finished",
		metric.WithDescription("Games that reached a win or a draw"),
		metric.WithUnit("{game}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create games.finished counter: %w", err)
	}

	gamesReset, err := meter.Int64Counter("tictactoe.games.reset",
		metric.WithDescription("Explicit board resets"),
		metric.WithUnit("{game}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create games.reset counter: %w", err)
	}

	return &GameMetrics{
		movesApplied:  movesApplied,
		movesIgnored:  movesIgnored,
		gamesFinished: gamesFinished,
		gamesReset:    gamesReset,
	}, nil
}

func (that *GameMetrics) MoveApplied(ctx context.Context, mark entity.Mark) {
	that.movesApplied.Add(ctx, 1, metric.WithAttributes(attribute.String("mark", string(mark))))
}

func (that *GameMetrics) MoveIgnored(ctx context.Context) {
	that.movesIgnored.Add(ctx, 1)
}

func (that *GameMetrics) GameFinished(ctx context.Context, outcome entity.Outcome) {
	that.gamesFinished.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(outcome))))
}

func (that *GameMetrics) GameReset(ctx context.Context) {
	that.gamesReset.Add(ctx, 1)
}
