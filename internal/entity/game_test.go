package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/session"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestNewGame(t *testing.T) {
	// When: a new game is created
	s := session.New(true, nil)
	game := NewGame("123", s, now)

	// Then: it wraps the session at generation zero
	expected := &Game{
		ID:        "123",
		Session:   s,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.Equal(t, expected, game)
	assert.False(t, game.IsFinished())
}

func TestGame_Reset(t *testing.T) {
	// Given: a game the human has just won
	s := session.New(true, nil)
	for _, move := range []int{0, 3, 1, 4, 2} {
		s = session.ApplyMoveAt(s, move, now)
	}
	game := NewGame("123", s, now)
	require.True(t, game.IsFinished())

	// When: resetting with the computer leading
	later := now.Add(time.Minute)
	game.Reset(false, later)

	// Then: a fresh board, roles swapped, history kept, generation bumped
	assert.False(t, game.IsFinished())
	assert.Equal(t, tictactoe.NewBoard(), game.Session.Board)
	assert.Equal(t, tictactoe.PlayerO, game.Session.HumanPlayer)
	assert.Len(t, game.Session.History, 1)
	assert.Equal(t, 1, game.Generation)
	assert.Equal(t, later, game.UpdatedAt)
	assert.Equal(t, now, game.CreatedAt)
}

func TestGame_Advance(t *testing.T) {
	game := NewGame("123", session.New(true, nil), now)
	next := session.ApplyMove(game.Session, 4)

	later := now.Add(time.Second)
	game.Advance(next, later)

	assert.Same(t, next, game.Session)
	assert.Equal(t, later, game.UpdatedAt)
}

func TestGame_Stats(t *testing.T) {
	// Given: a history with every kind of result
	history := []session.HistoryEntry{
		{Timestamp: now, Result: session.ResultLose, Winner: tictactoe.PlayerX},
		{Timestamp: now, Result: session.ResultTie},
		{Timestamp: now, Result: session.ResultTie},
		{Timestamp: now, Result: session.ResultWin, Winner: tictactoe.PlayerO},
	}
	game := NewGame("123", session.New(true, history), now)

	// When: computing the totals
	stats := game.Stats()

	// Then: each result is counted
	assert.Equal(t, Stats{Played: 4, Wins: 1, Losses: 1, Ties: 2}, stats)
}
