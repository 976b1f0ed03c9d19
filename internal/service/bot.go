package service

import (
	"errors"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/session"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	// ChooseMove - the computer's move for a session waiting on the computer.
	ChooseMove(s *session.Session) (int, error)
	// SuggestMove - the move the engine would play for the human, with its score.
	SuggestMove(s *session.Session) (int, int, error)
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

func (that *botService) ChooseMove(s *session.Session) (int, error) {
	if s.IsGameOver {
		return 0, apperror.ErrGameFinished
	}

	if !s.IsComputerTurn() {
		return 0, apperror.ErrNotComputerTurn
	}

	if err := ensureMovesLeft(s.Board); err != nil {
		return 0, err
	}

	return minimax.BestMove(s.Board, s.ComputerPlayer, s.HumanPlayer), nil
}

func (that *botService) SuggestMove(s *session.Session) (int, int, error) {
	if s.IsGameOver {
		return 0, 0, apperror.ErrGameFinished
	}

	if !s.IsHumanTurn() {
		return 0, 0, apperror.ErrNotYourTurn
	}

	if err := ensureMovesLeft(s.Board); err != nil {
		return 0, 0, err
	}

	index, score := minimax.Evaluate(s.Board, s.HumanPlayer, s.ComputerPlayer)

	return index, score, nil
}

// ensureMovesLeft - the engine panics on a decided board, callers get an error instead.
func ensureMovesLeft(board tictactoe.Board) error {
	if tictactoe.DetectWinner(board) != tictactoe.Empty || tictactoe.IsBoardFull(board) {
		return ErrNoAvailableMoves
	}

	return nil
}
