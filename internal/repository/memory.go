package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type memoryRecord struct {
	game      entity.Game
	expiresAt time.Time
}

type memoryGame struct {
	mu    sync.Mutex
	games map[string]memoryRecord
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryGameRepository - keeps games inside the process, values are copied on every access.
func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return &memoryGame{
		games: make(map[string]memoryRecord),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sweep()
	that.store(*game)

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.load(id)
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	return &game, nil
}

func (that *memoryGame) Update(_ context.Context, id string, fn UpdateFunc) (*entity.Game, bool, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.load(id)
	if !ok {
		return nil, false, apperror.ErrGameNotFound
	}

	if !fn(&game) {
		return &game, false, nil
	}

	that.store(game)

	return &game, true, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.load(id); !ok {
		return apperror.ErrGameNotFound
	}

	delete(that.games, id)

	return nil
}

// load - caller holds mu. Expired records are dropped on access.
func (that *memoryGame) load(id string) (entity.Game, bool) {
	record, ok := that.games[id]
	if !ok {
		return entity.Game{}, false
	}

	if !that.now().Before(record.expiresAt) {
		delete(that.games, id)
		return entity.Game{}, false
	}

	return record.game, true
}

// sweep - caller holds mu.
func (that *memoryGame) sweep() {
	now := that.now()
	for id, record := range that.games {
		if !now.Before(record.expiresAt) {
			delete(that.games, id)
		}
	}
}

func (that *memoryGame) store(game entity.Game) {
	that.games[game.ID] = memoryRecord{
		game:      game,
		expiresAt: that.now().Add(that.ttl),
	}
}
