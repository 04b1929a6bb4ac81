package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/telemetry"
	mockedUseCase "github.com/rocketscienceinc/tictactoe-hotseat/mocks/usecase"
	"github.com/rocketscienceinc/tictactoe-hotseat/testing/suite"
)

var errRedisDown = errors.New("redis down")

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// applyTo - makes a mocked Update behave like a repository holding stored.
func applyTo(stored *entity.Game) func(context.Context, string, repository.UpdateFunc) (*entity.Game, bool, error) {
	return func(_ context.Context, _ string, fn repository.UpdateFunc) (*entity.Game, bool, error) {
		game := *stored
		changed := fn(&game)
		if changed {
			*stored = game
		}
		return &game, changed, nil
	}
}

func TestGameManager_GetOrCreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the stored game", func(t *testing.T) {
		// Given: a repository holding the session game
		mockGameRepo := mockedUseCase.NewMockgameRepo(t)
		mockMetrics := mockedUseCase.NewMockgameMetrics(t)
		manager := NewGameManager(newTestLogger(), mockGameRepo, mockMetrics)

		existingGame := entity.NewGame("s1")
		existingGame.ApplyMove(4)
		mockGameRepo.EXPECT().
			GetByID(mock.Anything, "s1").
			Return(existingGame, nil).
			Once()

		// When: the game is requested
		game, err := manager.GetOrCreateGame(ctx, "s1")

		// Then: the stored game is returned untouched
		require.NoError(t, err)
		assert.Equal(t, existingGame, game)
	})

	t.Run("Creates a game for a new session", func(t *testing.T) {
		// Given: a repository without a game for the session
		mockGameRepo := mockedUseCase.NewMockgameRepo(t)
		mockMetrics := mockedUseCase.NewMockgameMetrics(t)
		manager := NewGameManager(newTestLogger(), mockGameRepo, mockMetrics)

		mockGameRepo.EXPECT().
			GetByID(mock.Anything, "s1").
			Return(nil, apperror.ErrGameNotFound).
			Once()
		mockGameRepo.EXPECT().
			CreateOrUpdate(mock.Anything, entity.NewGame("s1")).
			Return(nil).
			Once()

		// When: the game is requested
		game, err := manager.GetOrCreateGame(ctx, "s1")

		// Then: a fresh game is stored and returned
		require.NoError(t, err)
		assert.Equal(t, entity.NewGame("s1"), game)
	})

	t.Run("Returns storage errors", func(t *testing.T) {
		mockGameRepo := mockedUseCase.NewMockgameRepo(t)
		mockMetrics := mockedUseCase.NewMockgameMetrics(t)
		manager := NewGameManager(newTestLogger(), mockGameRepo, mockMetrics)

		mockGameRepo.EXPECT().
			GetByID(mock.Anything, "s1").
			Return(nil, errRedisDown).
			Once()

		game, err := manager.GetOrCreateGame(ctx, "s1")

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
	})

	t.Run("Requires a session", func(t *testing.T) {
		manager := NewGameManager(newTestLogger(), mockedUseCase.NewMockgameRepo(t), mockedUseCase.NewMockgameMetrics(t))

		_, err := manager.GetOrCreateGame(ctx, "")

		require.ErrorIs(t, err, apperror.ErrSessionRequired)
	})
}

func TestGameManager_MakeMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies a move to the stored game", func(t *testing.T) {
		// Given: a stored empty game
		mockGameRepo := mockedUseCase.NewMockgameRepo(t)
		mockMetrics := mockedUseCase.NewMockgameMetrics(t)
		manager := NewGameManager(newTestLogger(), mockGameRepo, mockMetrics)

		stored := entity.NewGame("s1")
		mockGameRepo.EXPECT().
			Update(mock.Anything, "s1", mock.Anything).
			RunAndReturn(applyTo(stored)).
			Once()
		mockMetrics.EXPECT().MoveApplied(mock.Anything, entity.PlayerX).Return().Once()

		// When: X plays the centre
		game, applied, err := manager.MakeMove(ctx, "s1", 4)

		// Then: the move is applied and O is next
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, entity.PlayerX, game.Board[4])
		assert.Equal(t, entity.PlayerO, game.Turn)
		assert.Equal(t, *stored, *game)
	})

	t.Run("Ignored moves are not errors", func(t *testing.T) {
		// Given: a stored game where cell 4 is taken
		mockGameRepo := mockedUseCase.NewMockgameRepo(t)
		mockMetrics := mockedUseCase.NewMockgameMetrics(t)
		manager := NewGameManager(newTestLogger(), mockGameRepo, mockMetrics)

		stored := entity.NewGame("s1")
		stored.ApplyMove(4)
		before := *stored

		mockGameRepo.EXPECT().
			Update(mock.Anything, "s1", mock.Anything).
			RunAndReturn(applyTo(stored)).
			Once()
		mockMetrics.EXPECT().MoveIgnored(mock.Anything).Return().Once()

		// When: O clicks the same cell
		game, applied, err := manager.MakeMove(ctx, "s1", 4)

		// Then: nothing changes and no error is reported
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, before, *game)
		assert.Equal(t, before, *stored)
	})

	t.Run("Winning move records the outcome", func(t *testing.T) {
		// Given: X@0, O@4, X@1, O@3
		mockGameRepo := mockedUseCase.NewMockgameRepo(t)
		mockMetrics := mockedUseCase.NewMockgameMetrics(t)
		manager := NewGameManager(newTestLogger(), mockGameRepo, mockMetrics)

		stored := entity.NewGame("s1")
		for _, cell := range []int{0, 4, 1, 3} {
			require.True(t, stored.ApplyMove(cell))
		}

		mockGameRepo.EXPECT().
			Update(mock.Anything, "s1", mock.Anything).
			RunAndReturn(applyTo(stored)).
			Once()
		mockMetrics.EXPECT().MoveApplied(mock.Anything, entity.PlayerX).Return().Once()
		mockMetrics.EXPECT().GameFinished(mock.Anything, entity.OutcomeWonByX).Return().Once()

		// When: X completes the top row
		game, applied, err := manager.MakeMove(ctx, "s1", 2)

		// Then: X wins
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, entity.OutcomeWonByX, game.Outcome())
	})

	t.Run("First move of a session creates the game", func(t *testing.T) {
		// Given: no stored game
		mockGameRepo := mockedUseCase.NewMockgameRepo(t)
		mockMetrics := mockedUseCase.NewMockgameMetrics(t)
		manager := NewGameManager(newTestLogger(), mockGameRepo, mockMetrics)

		expected := entity.NewGame("s1")
		expected.ApplyMove(8)

		mockGameRepo.EXPECT().
			Update(mock.Anything, "s1", mock.Anything).
			Return(nil, false, apperror.ErrGameNotFound).
			Once()
		mockGameRepo.EXPECT().
			CreateOrUpdate(mock.Anything, expected).
			Return(nil).
			Once()
		mockMetrics.EXPECT().MoveApplied(mock.Anything, entity.PlayerX).Return().Once()

		// When: a move is made
		game, applied, err := manager.MakeMove(ctx, "s1", 8)

		// Then: the new game already carries the move
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, expected, game)
	})

	t.Run("Storage failure", func(t *testing.T) {
		mockGameRepo := mockedUseCase.NewMockgameRepo(t)
		mockMetrics := mockedUseCase.NewMockgameMetrics(t)
		manager := NewGameManager(newTestLogger(), mockGameRepo, mockMetrics)

		mockGameRepo.EXPECT().
			Update(mock.Anything, "s1", mock.Anything).
			Return(nil, false, errRedisDown).
			Once()

		game, applied, err := manager.MakeMove(ctx, "s1", 0)

		require.ErrorIs(t, err, errRedisDown)
		assert.False(t, applied)
		assert.Nil(t, game)
	})
}

func TestGameManager_Reset(t *testing.T) {
	ctx := context.Background()

	t.Run("Clears a finished game", func(t *testing.T) {
		// Given: a stored game won by X
		mockGameRepo := mockedUseCase.NewMockgameRepo(t)
		mockMetrics := mockedUseCase.NewMockgameMetrics(t)
		manager := NewGameManager(newTestLogger(), mockGameRepo, mockMetrics)

		stored := entity.NewGame("s1")
		for _, cell := range []int{0, 4, 1, 3, 2} {
			require.True(t, stored.ApplyMove(cell))
		}

		mockGameRepo.EXPECT().
			Update(mock.Anything, "s1", mock.Anything).
			RunAndReturn(applyTo(stored)).
			Once()
		mockMetrics.EXPECT().GameReset(mock.Anything).Return().Once()

		// When: the board is reset
		game, err := manager.Reset(ctx, "s1")

		// Then: the initial state is restored
		require.NoError(t, err)
		assert.Equal(t, entity.NewGame("s1"), game)
		assert.Equal(t, *entity.NewGame("s1"), *stored)
	})

	t.Run("Overwrites a corrupt stored game", func(t *testing.T) {
		// Given: the stored record fails validation on load
		mockGameRepo := mockedUseCase.NewMockgameRepo(t)
		mockMetrics := mockedUseCase.NewMockgameMetrics(t)
		manager := NewGameManager(newTestLogger(), mockGameRepo, mockMetrics)

		corrupt := fmt.Errorf("failed to update game: stored game s1: %w", entity.ErrInvalidGame)
		mockGameRepo.EXPECT().
			Update(mock.Anything, "s1", mock.Anything).
			Return(nil, false, corrupt).
			Once()
		mockGameRepo.EXPECT().
			CreateOrUpdate(mock.Anything, entity.NewGame("s1")).
			Return(nil).
			Once()
		mockMetrics.EXPECT().GameReset(mock.Anything).Return().Once()

		// When: the board is reset
		game, err := manager.Reset(ctx, "s1")

		// Then: a fresh game replaces the record
		require.NoError(t, err)
		assert.Equal(t, entity.NewGame("s1"), game)
	})

	t.Run("Corrupt game that cannot be overwritten", func(t *testing.T) {
		mockGameRepo := mockedUseCase.NewMockgameRepo(t)
		mockMetrics := mockedUseCase.NewMockgameMetrics(t)
		manager := NewGameManager(newTestLogger(), mockGameRepo, mockMetrics)

		mockGameRepo.EXPECT().
			Update(mock.Anything, "s1", mock.Anything).
			Return(nil, false, entity.ErrInvalidGame).
			Once()
		mockGameRepo.EXPECT().
			CreateOrUpdate(mock.Anything, mock.AnythingOfType("*entity.Game")).
			Return(errRedisDown).
			Once()

		_, err := manager.Reset(ctx, "s1")

		require.ErrorIs(t, err, errRedisDown)
	})

	t.Run("Create failure", func(t *testing.T) {
		mockGameRepo := mockedUseCase.NewMockgameRepo(t)
		mockMetrics := mockedUseCase.NewMockgameMetrics(t)
		manager := NewGameManager(newTestLogger(), mockGameRepo, mockMetrics)

		mockGameRepo.EXPECT().
			Update(mock.Anything, "s1", mock.Anything).
			Return(nil, false, apperror.ErrGameNotFound).
			Once()
		mockGameRepo.EXPECT().
			CreateOrUpdate(mock.Anything, mock.AnythingOfType("*entity.Game")).
			Return(errRedisDown).
			Once()

		_, err := manager.Reset(ctx, "s1")

		require.ErrorIs(t, err, errRedisDown)
	})
}

func TestGameManager_WithMemoryRepository(t *testing.T) {
	ctx := context.Background()

	// Given: a manager backed by the in-process repository
	metrics, err := telemetry.NewGameMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	manager := NewGameManager(newTestLogger(), repository.NewMemoryGameRepository(time.Hour), metrics)

	// When: two sessions play independently
	for _, cell := range []int{0, 4, 1, 3, 2} {
		_, applied, err := manager.MakeMove(ctx, "alice", cell)
		require.NoError(t, err)
		require.True(t, applied)
	}

	_, applied, err := manager.MakeMove(ctx, "bob", 0)
	require.NoError(t, err)
	require.True(t, applied)

	// Then: each session keeps its own board
	alice, err := manager.GetOrCreateGame(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeWonByX, alice.Outcome())

	bob, err := manager.GetOrCreateGame(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeInProgress, bob.Outcome())
	assert.Equal(t, entity.PlayerO, bob.Turn)

	// When: alice keeps clicking after the win
	game, applied, err := manager.MakeMove(ctx, "alice", 8)

	// Then: the click is ignored
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, alice, game)

	// When: alice resets
	game, err = manager.Reset(ctx, "alice")

	// Then: her board is fresh while bob's is untouched
	require.NoError(t, err)
	assert.Equal(t, entity.NewGame("alice"), game)

	bob, err = manager.GetOrCreateGame(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, entity.PlayerX, bob.Board[0])
}

func TestGameManager_ResetWithRedisRepository(t *testing.T) {
	ctx, st := suite.New(t)

	metrics, err := telemetry.NewGameMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	manager := NewGameManager(newTestLogger(), repository.NewGameRepository(st.Storage, time.Hour), metrics)

	// Given: a stored record where O moved first
	st.StoreRaw(ctx, "s1", `{"id":"s1","board":["O","","","","","","","",""],"player_turn":"X"}`)

	_, _, err = manager.MakeMove(ctx, "s1", 4)
	require.ErrorIs(t, err, entity.ErrInvalidGame)

	// When: the session resets its board
	game, err := manager.Reset(ctx, "s1")

	// Then: play continues on a fresh board
	require.NoError(t, err)
	assert.Equal(t, entity.NewGame("s1"), game)

	game, applied, err := manager.MakeMove(ctx, "s1", 4)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, entity.PlayerX, game.Board[4])
}
