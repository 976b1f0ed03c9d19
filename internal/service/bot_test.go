package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/session"
)

func TestBotService_ChooseMove(t *testing.T) {
	bot := NewBotService()

	t.Run("Computer opens in the first corner", func(t *testing.T) {
		// Given: a session where the computer plays X
		s := session.New(false, nil)

		// When: the bot picks a move
		move, err := bot.ChooseMove(s)

		// Then: it is cell 0
		require.NoError(t, err)
		assert.Equal(t, 0, move)
	})

	t.Run("Takes the win", func(t *testing.T) {
		// Given: computer O can finish the middle row
		s := session.New(true, nil)
		for _, move := range []int{0, 3, 1, 4, 8} {
			s = session.ApplyMove(s, move)
		}

		// When: the bot picks a move
		move, err := bot.ChooseMove(s)

		// Then: it wins at 5
		require.NoError(t, err)
		assert.Equal(t, 5, move)
	})

	t.Run("Refuses on the human's turn", func(t *testing.T) {
		_, err := bot.ChooseMove(session.New(true, nil))

		require.ErrorIs(t, err, apperror.ErrNotComputerTurn)
	})

	t.Run("Refuses on a finished game", func(t *testing.T) {
		s := session.New(true, nil)
		for _, move := range []int{0, 3, 1, 4, 2} {
			s = session.ApplyMove(s, move)
		}

		_, err := bot.ChooseMove(s)

		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestBotService_SuggestMove(t *testing.T) {
	bot := NewBotService()

	t.Run("Suggests blocking the computer", func(t *testing.T) {
		// Given: computer X threatens the top row, human O to move
		s := session.New(false, nil)
		for _, move := range []int{0, 4, 1} {
			s = session.ApplyMove(s, move)
		}

		// When: asking for a hint
		move, score, err := bot.SuggestMove(s)

		// Then: the hint blocks at 2
		require.NoError(t, err)
		assert.Equal(t, 2, move)
		assert.LessOrEqual(t, score, 0)
	})

	t.Run("Refuses on the computer's turn", func(t *testing.T) {
		_, _, err := bot.SuggestMove(session.New(false, nil))

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})
}
