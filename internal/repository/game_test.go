package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/session"
	"github.com/rocketscienceinc/tictactoe-minimax/testing/suite"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func finishedGame(id string) *entity.Game {
	s := session.New(true, nil)
	for _, move := range []int{0, 3, 1, 4, 2} {
		s = session.ApplyMoveAt(s, move, now)
	}
	return entity.NewGame(id, s, now)
}

func TestGameRepository_Redis(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Redis, time.Hour)

	t.Run("CreateOrUpdate and GetByID round trip", func(t *testing.T) {
		// Given: a finished game with history
		game := finishedGame("123")

		// When: it is stored and read back
		err := gameRepo.CreateOrUpdate(ctx, game)
		require.NoError(t, err)

		retrieved, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the session survives the trip through redis
		require.NoError(t, err)
		assert.Equal(t, game.ID, retrieved.ID)
		assert.Equal(t, game.Session.Board, retrieved.Session.Board)
		assert.Equal(t, game.Session.Result, retrieved.Session.Result)
		assert.Equal(t, game.Session.Winner, retrieved.Session.Winner)
		require.Len(t, retrieved.Session.History, 1)
		assert.True(t, now.Equal(retrieved.Session.History[0].Timestamp))
	})

	t.Run("Stored key carries the TTL", func(t *testing.T) {
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, finishedGame("ttl")))

		ttl, err := st.Redis.TTL(ctx, gameKeyPrefix+"ttl").Result()

		require.NoError(t, err)
		assert.Positive(t, ttl)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		retrieved, err := gameRepo.GetByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, retrieved)
	})

	t.Run("DeleteByID", func(t *testing.T) {
		// Given: a stored game
		game := finishedGame("to-delete")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: it is deleted
		err := gameRepo.DeleteByID(ctx, game.ID)

		// Then: it is gone
		require.NoError(t, err)
		_, err = gameRepo.GetByID(ctx, game.ID)
		require.ErrorIs(t, err, apperror.ErrGameNotFound)

		// And: a second delete reports not found
		require.ErrorIs(t, gameRepo.DeleteByID(ctx, game.ID), apperror.ErrGameNotFound)
	})
}
