package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type repoFactory func(t *testing.T) (context.Context, GameRepository)

// testGameRepository - behaviour every GameRepository implementation shares.
func testGameRepository(t *testing.T, newRepo repoFactory) {
	t.Run("CreateOrUpdate then GetByID", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		// Given: a game with a couple of moves
		game := entity.NewGame("session-1")
		require.True(t, game.ApplyMove(4))
		require.True(t, game.ApplyMove(0))

		// When: it is saved and read back
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the stored game matches
		require.NoError(t, err)
		assert.Equal(t, game, retrievedGame)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		// When: GetByID is called with a non-existent ID
		retrievedGame, err := gameRepo.GetByID(ctx, "9999999")

		// Then: ErrGameNotFound is returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, retrievedGame)
	})

	t.Run("Returned games are copies", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		game := entity.NewGame("session-1")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: the caller mutates its copy without saving
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		retrievedGame.ApplyMove(0)

		// Then: the stored game is unaffected
		storedGame, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.EmptyCell, storedGame.Board[0])
	})

	t.Run("Update writes changed games", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		require.NoError(t, gameRepo.CreateOrUpdate(ctx, entity.NewGame("session-1")))

		// When: a move is applied through Update
		updatedGame, changed, err := gameRepo.Update(ctx, "session-1", func(game *entity.Game) bool {
			return game.ApplyMove(8)
		})

		// Then: the change is returned and persisted
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, entity.PlayerX, updatedGame.Board[8])

		storedGame, err := gameRepo.GetByID(ctx, "session-1")
		require.NoError(t, err)
		assert.Equal(t, updatedGame, storedGame)
	})

	t.Run("Update skips unchanged games", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		game := entity.NewGame("session-1")
		require.True(t, game.ApplyMove(0))
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: the update function mutates the copy but reports no change
		updatedGame, changed, err := gameRepo.Update(ctx, "session-1", func(game *entity.Game) bool {
			game.Reset()
			return false
		})

		// Then: the stored game keeps its move
		require.NoError(t, err)
		assert.False(t, changed)
		assert.NotNil(t, updatedGame)

		storedGame, err := gameRepo.GetByID(ctx, "session-1")
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, storedGame.Board[0])
	})

	t.Run("Update not found", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		_, _, err := gameRepo.Update(ctx, "missing", func(*entity.Game) bool {
			t.Fatal("update function must not run for a missing game")
			return false
		})

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Concurrent updates are serialised", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		require.NoError(t, gameRepo.CreateOrUpdate(ctx, entity.NewGame("session-1")))

		// When: several writers try to take distinct cells at once
		var wg sync.WaitGroup
		for cell := range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()

				_, _, err := gameRepo.Update(ctx, "session-1", func(game *entity.Game) bool {
					return game.ApplyMove(cell)
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		// Then: no write was lost and the result is a legal game
		storedGame, err := gameRepo.GetByID(ctx, "session-1")
		require.NoError(t, err)
		require.NoError(t, storedGame.Validate())
		assert.Equal(t, 2, storedGame.Board.Count(entity.PlayerX))
		assert.Equal(t, 2, storedGame.Board.Count(entity.PlayerO))
	})

	t.Run("DeleteByID", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		require.NoError(t, gameRepo.CreateOrUpdate(ctx, entity.NewGame("session-1")))

		// When: the game is deleted
		require.NoError(t, gameRepo.DeleteByID(ctx, "session-1"))

		// Then: it can no longer be found, and deleting again reports not found
		_, err := gameRepo.GetByID(ctx, "session-1")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		require.ErrorIs(t, gameRepo.DeleteByID(ctx, "session-1"), apperror.ErrGameNotFound)
	})
}
