package tictactoe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = PlayerX
	o = PlayerO
	e = Empty
)

func TestNewBoard(t *testing.T) {
	// When: create a new board
	board := NewBoard()

	// Then: all nine cells are empty
	assert.Len(t, board, BoardSize)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, EmptyCells(board))
	assert.False(t, IsBoardFull(board))
}

func TestIsValidMove(t *testing.T) {
	board := Board{x, e, e, e, o, e, e, e, e}

	t.Run("Empty cell in range", func(t *testing.T) {
		assert.True(t, IsValidMove(board, 1))
		assert.True(t, IsValidMove(board, 8))
	})

	t.Run("Occupied cell", func(t *testing.T) {
		assert.False(t, IsValidMove(board, 0))
		assert.False(t, IsValidMove(board, 4))
	})

	t.Run("Out of range is rejected, not clamped", func(t *testing.T) {
		assert.False(t, IsValidMove(board, -1))
		assert.False(t, IsValidMove(board, 9))
		assert.False(t, IsValidMove(board, 20))
	})
}

func TestApplyMove(t *testing.T) {
	t.Run("Places the mark and leaves the input untouched", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: X moves to the center
		next := ApplyMove(board, 4, x)

		// Then: the new board has X at 4, the old one is still empty
		assert.Equal(t, Board{e, e, e, e, x, e, e, e, e}, next)
		assert.Equal(t, NewBoard(), board)
	})

	t.Run("Occupied cell returns the board unchanged", func(t *testing.T) {
		// Given: a board with X in the corner
		board := Board{x, e, e, e, e, e, e, e, e}

		// When: O tries the same cell
		next := ApplyMove(board, 0, o)

		// Then: nothing changes
		assert.Equal(t, board, next)
	})

	t.Run("Out of range returns the board unchanged", func(t *testing.T) {
		board := Board{x, e, e, e, e, e, e, e, e}

		assert.Equal(t, board, ApplyMove(board, -1, o))
		assert.Equal(t, board, ApplyMove(board, 9, o))
	})
}

func TestDetectWinner(t *testing.T) {
	t.Run("Every winning line is detected for both marks", func(t *testing.T) {
		for _, mark := range []Mark{x, o} {
			for _, combo := range WinCombos {
				// Given: a board with one line filled by mark
				var board Board
				for _, idx := range combo {
					board[idx] = mark
				}

				// Then: that mark is the winner
				assert.Equal(t, mark, DetectWinner(board), "combo %v", combo)
			}
		}
	})

	t.Run("No winner on an ongoing board", func(t *testing.T) {
		board := Board{x, o, x, e, o, e, o, x, e}

		assert.Equal(t, Empty, DetectWinner(board))
	})

	t.Run("No winner on a drawn board", func(t *testing.T) {
		board := Board{o, x, o, o, x, x, x, o, x}

		assert.Equal(t, Empty, DetectWinner(board))
		assert.True(t, IsBoardFull(board))
	})

	t.Run("Column win with the rest of the board filled", func(t *testing.T) {
		board := Board{x, o, o, x, o, x, x, x, o}

		assert.Equal(t, x, DetectWinner(board))
	})
}

func TestIsBoardFullMatchesEmptyCells(t *testing.T) {
	boards := []Board{
		NewBoard(),
		{x, e, e, e, e, e, e, e, e},
		{x, o, x, o, x, o, o, x, e},
		{o, x, o, o, x, x, x, o, x},
	}

	for _, board := range boards {
		assert.Equal(t, len(EmptyCells(board)) == 0, IsBoardFull(board), board.String())
	}
}

func TestEmptyCells(t *testing.T) {
	// Given: a partially filled board
	board := Board{x, e, o, e, x, e, e, o, e}

	// Then: the empty indices come back in ascending order
	assert.Equal(t, []int{1, 3, 5, 6, 8}, EmptyCells(board))

	// And: a full board yields an empty sequence
	assert.Empty(t, EmptyCells(Board{o, x, o, o, x, x, x, o, x}))
}

func TestOpponent(t *testing.T) {
	assert.Equal(t, o, Opponent(x))
	assert.Equal(t, x, Opponent(o))
}

func TestMarkJSON(t *testing.T) {
	t.Run("Empty cells encode as null", func(t *testing.T) {
		data, err := json.Marshal(Board{x, e, o, e, e, e, e, e, e})
		require.NoError(t, err)

		assert.JSONEq(t, `["X",null,"O",null,null,null,null,null,null]`, string(data))
	})

	t.Run("Decoding restores the board", func(t *testing.T) {
		var board Board
		err := json.Unmarshal([]byte(`["X",null,"O",null,null,null,null,null,"X"]`), &board)
		require.NoError(t, err)

		assert.Equal(t, Board{x, e, o, e, e, e, e, e, x}, board)
	})

	t.Run("Unknown mark is rejected", func(t *testing.T) {
		var board Board
		err := json.Unmarshal([]byte(`["Z",null,null,null,null,null,null,null,null]`), &board)

		require.ErrorIs(t, err, ErrUnknownMark)
	})
}

func TestBoardString(t *testing.T) {
	assert.Equal(t, "XO./.X./..O", Board{x, o, e, e, x, e, e, e, o}.String())
}
